package domain

import (
	"errors"
	"time"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User models an authenticated actor. Ownership checks on shipments compare
// the authenticated user's ID against Shipment.UserID at the transport
// boundary. Admins are provisioned out of band; registration always yields
// the user role.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name,omitempty"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
