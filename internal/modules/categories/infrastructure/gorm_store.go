package infrastructure

import (
	"context"
	"fmt"
	"slices"

	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/categories/domain"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/shared/resource"
	"gorm.io/gorm"
)

// Store persists categories and detaches them from foods and menus before removal.
type Store struct {
	*resource.GormStore[domain.Category]
	joinTables []string
}

// NewStore builds a category store. joinTables lists the association tables holding a category_id column.
func NewStore(db *gorm.DB, joinTables ...string) *Store {
	return &Store{GormStore: resource.NewGormStore[domain.Category](db), joinTables: joinTables}
}

func (s *Store) Delete(ctx context.Context, c *domain.Category) error {
	conn := s.Conn(ctx)
	for _, table := range s.joinTables {
		if err := conn.Exec("DELETE FROM "+table+" WHERE category_id = ?", c.ID).Error; err != nil {
			return fmt.Errorf("detach category %d from %s: %w", c.ID, table, err)
		}
	}
	return s.GormStore.Delete(ctx, c)
}

// FindByIDs loads every category of ids, failing with resource.ErrInvalid when one is unknown.
func FindByIDs(ctx context.Context, conn *gorm.DB, ids []uint) ([]domain.Category, error) {
	unique := slices.Compact(slices.Sorted(slices.Values(ids)))
	if len(unique) == 0 {
		return []domain.Category{}, nil
	}

	var found []domain.Category
	if err := conn.WithContext(ctx).Where("id IN ?", unique).Order("id").Find(&found).Error; err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	if len(found) != len(unique) {
		known := domain.IDs(found)
		for _, id := range unique {
			if _, ok := slices.BinarySearch(known, id); !ok {
				return nil, fmt.Errorf("%w: categoryIds references unknown category %d", resource.ErrInvalid, id)
			}
		}
	}
	return found, nil
}

// ReplaceCategories makes ids the complete category set of owner through its Categories association.
func ReplaceCategories(ctx context.Context, conn *gorm.DB, owner any, ids []uint) ([]domain.Category, error) {
	categories, err := FindByIDs(ctx, conn, ids)
	if err != nil {
		return nil, err
	}
	assoc := conn.Model(owner).Association("Categories")
	if len(categories) == 0 {
		err = assoc.Clear()
	} else {
		err = assoc.Replace(categories)
	}
	if err != nil {
		return nil, fmt.Errorf("replace categories: %w", err)
	}
	return categories, nil
}
