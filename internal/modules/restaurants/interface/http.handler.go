package transport

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/restaurants/application/port"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/restaurants/domain"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/platform/routing"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/shared/resource"
)

type (
	Service = resource.Service[domain.Restaurant, *domain.Restaurant]
	Handler = resource.Handler[domain.Restaurant, *domain.Restaurant, domain.RestaurantPatch]
)

// NewHandler serves restaurants; GET renders the public projection with its pictures.
func NewHandler(svc *Service, pictures port.PictureLister, baseURL string) *Handler {
	h := resource.NewHandler[domain.Restaurant, *domain.Restaurant, domain.RestaurantPatch](svc, resource.ShowRouteName(domain.EntityName), baseURL)
	return h.WithView(PublicView(pictures))
}

// PublicView attaches the restaurant's pictures to the entity.
func PublicView(pictures port.PictureLister) resource.View[domain.Restaurant] {
	return func(ctx context.Context, r *domain.Restaurant) (any, error) {
		view := domain.PublicRestaurant{Restaurant: r, Pictures: []domain.PictureSummary{}}
		if pictures == nil {
			return view, nil
		}
		list, err := pictures.ListByRestaurant(ctx, r.ID)
		if err != nil {
			return nil, fmt.Errorf("list pictures of restaurant %d: %w", r.ID, err)
		}
		if list != nil {
			view.Pictures = list
		}
		return view, nil
	}
}

// Routes returns the restaurant CRUD routes. guard protects writes when not nil.
func Routes(h *Handler, guard echo.MiddlewareFunc) []routing.Route {
	return resource.Routes(h, resource.RouteSpec{
		Name:       domain.EntityName,
		Tag:        "Restaurant",
		Model:      domain.Restaurant{},
		ShowModel:  domain.PublicRestaurant{},
		PatchModel: domain.RestaurantPatch{},
		Guard:      guard,
	})
}
