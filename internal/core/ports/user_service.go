package ports

import (
	"context"

	"github.com/recipebox/recipe-api/internal/core/domain"
)

// UpdateUserInput carries a partial profile update. Nil fields are left
// untouched; a non-nil Password is re-hashed before storage.
type UpdateUserInput struct {
	Name     *string
	Password *string
}

// UserService defines the account use-cases: registration, profile
// management, and credential authentication with bearer tokens.
type UserService interface {
	Register(ctx context.Context, email, password, name string) (*domain.User, error)
	// CreateSuperuser registers an account with staff and superuser flags set.
	CreateSuperuser(ctx context.Context, email, password string) (*domain.User, error)
	Update(ctx context.Context, userID string, input UpdateUserInput) (*domain.User, error)
	// Login verifies the credentials and returns a bearer token on success.
	// Unknown email, wrong password, and blank password all fail with
	// domain.ErrInvalidCredentials so callers cannot tell the cases apart.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Resolve maps a bearer token back to the account it was issued for.
	Resolve(ctx context.Context, token string) (*domain.User, error)
}
