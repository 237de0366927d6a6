package ports

import (
	"context"

	"github.com/parcelhub/shipping-api/internal/core/domain"
)

// FareRepository provides read access to fare tiers. Fares are reference
// data: the application never writes them.
type FareRepository interface {
	// FindByTypeAndValue returns the unique tier whose range contains value
	// for the given type, or domain.ErrFareNotFound when no tier covers it.
	FindByTypeAndValue(ctx context.Context, fareType domain.FareType, value float64) (*domain.Fare, error)
	// FindAllByType returns every tier for a type ordered by lower bound.
	FindAllByType(ctx context.Context, fareType domain.FareType) ([]*domain.Fare, error)
}
