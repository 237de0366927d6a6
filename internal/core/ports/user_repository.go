package ports

import (
	"context"

	"github.com/parcelhub/shipping-api/internal/core/domain"
)

// UserRepository defines persistence for authentication.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}
