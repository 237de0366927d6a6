package service

import (
	"context"
	"errors"
	"math"

	"github.com/rs/zerolog"

	"github.com/parcelhub/shipping-api/internal/core/domain"
	"github.com/parcelhub/shipping-api/internal/core/ports"
)

// ParcelService prices a parcel for a route: distance fare plus weight fare.
type ParcelService struct {
	cities ports.CityRepository
	fares  *FareService
	logger zerolog.Logger
}

func NewParcelService(cities ports.CityRepository, fares *FareService, logger zerolog.Logger) *ParcelService {
	return &ParcelService{cities: cities, fares: fares, logger: logger}
}

// Quote resolves both cities, computes the great-circle distance rounded up
// to the next whole kilometer, looks up the distance and weight tiers and
// returns a parcel carrying the chargeable weight and total price. Any
// lookup failure aborts the whole attempt; no partial price is ever set.
func (s *ParcelService) Quote(ctx context.Context, input ports.QuoteInput) (*domain.Parcel, error) {
	origin, err := s.cities.GetByID(ctx, input.OriginID)
	if err != nil {
		return nil, routeError(err)
	}
	destination, err := s.cities.GetByID(ctx, input.DestinationID)
	if err != nil {
		return nil, routeError(err)
	}

	distanceKm := math.Ceil(domain.Distance(
		origin.Latitude, origin.Longitude,
		destination.Latitude, destination.Longitude,
	))
	distancePrice, err := s.fares.PriceFor(ctx, domain.FareTypeDistance, distanceKm)
	if err != nil {
		return nil, err
	}

	parcel := domain.NewParcel(input.Weight, input.Length, input.Width, input.Height)
	chargeableWeight := parcel.CalculateChargeableWeight()

	weightPrice, err := s.fares.PriceFor(ctx, domain.FareTypeWeight, chargeableWeight)
	if err != nil {
		return nil, err
	}

	parcel.ChargeableWeight = chargeableWeight
	parcel.Price = distancePrice + weightPrice

	s.logger.Debug().
		Str("origin", input.OriginID).
		Str("destination", input.DestinationID).
		Float64("distance_km", distanceKm).
		Float64("chargeable_weight", chargeableWeight).
		Float64("price", parcel.Price).
		Msg("parcel priced")

	return parcel, nil
}

// routeError maps an unresolvable city to the user-facing route error,
// leaving storage failures opaque.
func routeError(err error) error {
	if errors.Is(err, domain.ErrCityNotFound) {
		return domain.ErrInvalidRoute
	}
	return err
}
