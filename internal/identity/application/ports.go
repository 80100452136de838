package application

import (
	"context"

	"github.com/google/uuid"

	"github.com/alerquim/commerce-platform/internal/identity/domain"
)

type UserRepository interface {
	Add(ctx context.Context, u *domain.User) error
	Get(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email domain.Email) (*domain.User, error)
}

// PasswordHasher isolates the hashing scheme from the services.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}
