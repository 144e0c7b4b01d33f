package infrastructure

import (
	"context"
	"errors"
	"fmt"

	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/accounts/domain"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/shared/resource"
	"gorm.io/gorm"
)

// UserStore implements port.UserRepository using GORM.
type UserStore struct {
	*resource.GormStore[domain.User]
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{GormStore: resource.NewGormStore[domain.User](db)}
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.findBy(ctx, "email = ?", email)
}

func (s *UserStore) FindByAPIToken(ctx context.Context, token string) (*domain.User, error) {
	return s.findBy(ctx, "api_token = ?", token)
}

func (s *UserStore) findBy(ctx context.Context, cond string, arg any) (*domain.User, error) {
	var u domain.User
	if err := s.Conn(ctx).Where(cond, arg).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, resource.ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}
