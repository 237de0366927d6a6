package ports

import (
	"context"

	"github.com/parcelhub/shipping-api/internal/core/domain"
)

// CityRepository provides read access to city reference data.
type CityRepository interface {
	// GetByID returns the city or domain.ErrCityNotFound.
	GetByID(ctx context.Context, id string) (*domain.City, error)
	GetAll(ctx context.Context) ([]*domain.City, error)
}
