// Package user provides user domain models and behaviors.
package user

import (
	"context"
	"errors"
	"time"
)

// User models an application user created on first federated login.
type User struct {
	ID         uint
	Email      string
	Provider   *string
	ProviderID *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Identity encapsulates the externally provided identity attributes after a
// successful federated login. ProviderID is explicitly optional: some providers
// do not expose a stable subject.
type Identity struct {
	Email      string
	Provider   string
	ProviderID *string
}

// Repository defines storage operations for users.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	// GetOrCreate resolves the user for the given email, creating the row when
	// absent. Concurrent calls for the same email must resolve to one row.
	GetOrCreate(ctx context.Context, usr *User) (*User, error)
}

// ErrInvalidIdentity indicates a missing email on the identity payload.
var ErrInvalidIdentity = errors.New("invalid identity: email is required")

// Service persists and resolves users from external identities.
type Service struct {
	repo Repository
}

// NewService constructs a Service with required dependencies.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// EnsureUser maps a trusted federated identity to the internal user record,
// creating it on first login.
func (s *Service) EnsureUser(ctx context.Context, identity Identity) (*User, error) {
	if identity.Email == "" {
		return nil, ErrInvalidIdentity
	}

	usr := &User{
		Email:      identity.Email,
		ProviderID: identity.ProviderID,
	}
	if identity.Provider != "" {
		provider := identity.Provider
		usr.Provider = &provider
	}

	return s.repo.GetOrCreate(ctx, usr)
}

// GetByID returns the user for an internal identifier.
func (s *Service) GetByID(ctx context.Context, id uint) (*User, error) {
	return s.repo.FindByID(ctx, id)
}
