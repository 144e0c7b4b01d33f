package port

import (
	"context"
	"errors"

	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/accounts/domain"
)

var (
	// ErrMissingCredentials covers absent, unknown and mismatching credentials alike.
	ErrMissingCredentials = errors.New("missing credentials")
	ErrEmailTaken         = errors.New("email already registered")
)

// UserRepository persists accounts. Lookups return resource.ErrNotFound when nothing matches.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	Update(ctx context.Context, u *domain.User) error
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByAPIToken(ctx context.Context, token string) (*domain.User, error)
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password []byte) ([]byte, error)
	Compare(hash, password []byte) error
}
