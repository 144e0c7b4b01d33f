package resource

import (
	"context"
	"errors"
	"fmt"

	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/platform/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository persists one entity type. Implementations resolve their connection from ctx
// so that calls made inside Transactor.Within join the transaction.
type Repository[T any] interface {
	Create(ctx context.Context, entity *T) error
	FindByID(ctx context.Context, id uint) (*T, error)
	Update(ctx context.Context, entity *T) error
	Delete(ctx context.Context, entity *T) error
}

// GormStore is the default Repository. Associations are never written implicitly;
// modules embedding it override the methods that need to.
type GormStore[T any] struct {
	DB       *gorm.DB
	Preloads []string
}

// NewGormStore builds a store that preloads the named associations on FindByID.
func NewGormStore[T any](db *gorm.DB, preloads ...string) *GormStore[T] {
	return &GormStore[T]{DB: db, Preloads: preloads}
}

// Conn returns the connection bound to ctx.
func (s *GormStore[T]) Conn(ctx context.Context) *gorm.DB {
	return database.Conn(ctx, s.DB)
}

func (s *GormStore[T]) Create(ctx context.Context, entity *T) error {
	if err := s.Conn(ctx).Omit(clause.Associations).Create(entity).Error; err != nil {
		return fmt.Errorf("insert: %w", err)
	}
	return nil
}

func (s *GormStore[T]) FindByID(ctx context.Context, id uint) (*T, error) {
	q := s.Conn(ctx)
	for _, p := range s.Preloads {
		q = q.Preload(p)
	}
	var entity T
	if err := q.First(&entity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find %d: %w", id, err)
	}
	return &entity, nil
}

func (s *GormStore[T]) Update(ctx context.Context, entity *T) error {
	if err := s.Conn(ctx).Omit(clause.Associations).Save(entity).Error; err != nil {
		return fmt.Errorf("update: %w", err)
	}
	return nil
}

func (s *GormStore[T]) Delete(ctx context.Context, entity *T) error {
	if err := s.Conn(ctx).Delete(entity).Error; err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	return nil
}
