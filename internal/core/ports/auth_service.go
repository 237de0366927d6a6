package ports

import (
	"context"

	"github.com/parcelhub/shipping-api/internal/core/domain"
)

// AuthService implements user registration and login.
type AuthService interface {
	Register(ctx context.Context, email, password, name string) (*domain.User, error)
	// Login returns a signed token and the authenticated user, or
	// domain.ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
