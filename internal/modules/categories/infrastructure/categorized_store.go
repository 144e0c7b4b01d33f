package infrastructure

import (
	"context"
	"fmt"

	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/categories/domain"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/shared/resource"
	"gorm.io/gorm"
)

// Categorized is implemented by entities owning a many-to-many Categories association.
type Categorized[T any] interface {
	*T
	CategorySet() []uint
	SetCategories([]domain.Category)
}

// CategorizedStore persists an entity and keeps its category set equal to CategorySet.
type CategorizedStore[T any, PT Categorized[T]] struct {
	*resource.GormStore[T]
	entity string
}

// NewCategorizedStore builds a store for entity, preloading its categories on reads.
func NewCategorizedStore[T any, PT Categorized[T]](db *gorm.DB, entity string) *CategorizedStore[T, PT] {
	return &CategorizedStore[T, PT]{GormStore: resource.NewGormStore[T](db, "Categories"), entity: entity}
}

func (s *CategorizedStore[T, PT]) Create(ctx context.Context, entity *T) error {
	if err := s.GormStore.Create(ctx, entity); err != nil {
		return err
	}
	return s.sync(ctx, entity)
}

func (s *CategorizedStore[T, PT]) Update(ctx context.Context, entity *T) error {
	if err := s.GormStore.Update(ctx, entity); err != nil {
		return err
	}
	return s.sync(ctx, entity)
}

// Delete removes the entity and its join rows.
func (s *CategorizedStore[T, PT]) Delete(ctx context.Context, entity *T) error {
	if err := s.Conn(ctx).Select("Categories").Delete(entity).Error; err != nil {
		return fmt.Errorf("delete %s: %w", s.entity, err)
	}
	return nil
}

func (s *CategorizedStore[T, PT]) sync(ctx context.Context, entity *T) error {
	linked, err := ReplaceCategories(ctx, s.Conn(ctx), entity, PT(entity).CategorySet())
	if err != nil {
		return fmt.Errorf("%s categories: %w", s.entity, err)
	}
	PT(entity).SetCategories(linked)
	return nil
}
