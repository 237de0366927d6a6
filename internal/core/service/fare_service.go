package service

import (
	"context"
	"fmt"

	"github.com/parcelhub/shipping-api/internal/core/domain"
	"github.com/parcelhub/shipping-api/internal/core/ports"
)

// FareService resolves prices from the configured fare tiers.
type FareService struct {
	repo ports.FareRepository
}

func NewFareService(repo ports.FareRepository) *FareService {
	return &FareService{repo: repo}
}

// PriceFor returns the price of the tier covering value for the given type.
// A missing tier is a configuration-data gap, not a transient failure: the
// error is returned as-is for the caller to surface, never retried.
func (s *FareService) PriceFor(ctx context.Context, fareType domain.FareType, value float64) (float64, error) {
	fare, err := s.repo.FindByTypeAndValue(ctx, fareType, value)
	if err != nil {
		return 0, fmt.Errorf("fare lookup %s=%v: %w", fareType, value, err)
	}
	return fare.Price, nil
}
