package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/parcelhub/shipping-api/internal/core/ports"
)

const cityCacheKey = "all_cities"

// CityService lists cities with a read-through cache in front of the
// repository. Cache failures degrade to repository reads.
type CityService struct {
	repo   ports.CityRepository
	cache  ports.Cache
	ttl    time.Duration
	logger zerolog.Logger
}

func NewCityService(repo ports.CityRepository, cache ports.Cache, ttl time.Duration, logger zerolog.Logger) *CityService {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &CityService{repo: repo, cache: cache, ttl: ttl, logger: logger}
}

func (s *CityService) List(ctx context.Context) ([]ports.CityItem, error) {
	if cached, err := s.cache.Get(ctx, cityCacheKey); err == nil {
		var items []ports.CityItem
		if err := json.Unmarshal(cached, &items); err == nil {
			return items, nil
		}
		s.logger.Warn().Msg("discarding malformed city cache entry")
	} else if !errors.Is(err, ports.ErrCacheMiss) {
		s.logger.Warn().Err(err).Msg("city cache read failed")
	}

	cities, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]ports.CityItem, 0, len(cities))
	for _, c := range cities {
		items = append(items, ports.CityItem{ID: c.ID, Name: c.Name})
	}

	if encoded, err := json.Marshal(items); err == nil {
		if err := s.cache.Set(ctx, cityCacheKey, encoded, s.ttl); err != nil {
			s.logger.Warn().Err(err).Msg("city cache write failed")
		}
	}

	return items, nil
}
