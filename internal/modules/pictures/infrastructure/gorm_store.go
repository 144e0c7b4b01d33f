package infrastructure

import (
	"context"
	"fmt"

	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/pictures/domain"
	restaurants "github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/restaurants/domain"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/shared/resource"
	"gorm.io/gorm"
)

// Store persists pictures and lists them per restaurant for the public restaurant view.
type Store struct {
	*resource.GormStore[domain.Picture]
}

func NewStore(db *gorm.DB) *Store {
	return &Store{GormStore: resource.NewGormStore[domain.Picture](db)}
}

func (s *Store) ListByRestaurant(ctx context.Context, restaurantID uint) ([]restaurants.PictureSummary, error) {
	var out []restaurants.PictureSummary
	err := s.Conn(ctx).
		Model(&domain.Picture{}).
		Select("id", "title", "slug").
		Where("restaurant_id = ?", restaurantID).
		Order("id").
		Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list pictures: %w", err)
	}
	return out, nil
}
