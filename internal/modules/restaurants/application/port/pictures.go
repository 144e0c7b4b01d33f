package port

import (
	"context"

	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/restaurants/domain"
)

// PictureLister returns the pictures attached to a restaurant, ordered by id.
type PictureLister interface {
	ListByRestaurant(ctx context.Context, restaurantID uint) ([]domain.PictureSummary, error)
}
