package mocks

import (
	"context"

	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/accounts/domain"
	"github.com/stretchr/testify/mock"
)

type UserRepository struct{ mock.Mock }

func (m *UserRepository) Create(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *UserRepository) Update(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *UserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	return userResult(m.Called(ctx, id))
}

func (m *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return userResult(m.Called(ctx, email))
}

func (m *UserRepository) FindByAPIToken(ctx context.Context, token string) (*domain.User, error) {
	return userResult(m.Called(ctx, token))
}

func userResult(args mock.Arguments) (*domain.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
