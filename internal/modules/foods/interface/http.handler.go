package transport

import (
	"github.com/labstack/echo/v4"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/foods/domain"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/platform/routing"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/shared/resource"
)

type (
	Service = resource.Service[domain.Food, *domain.Food]
	Handler = resource.Handler[domain.Food, *domain.Food, domain.FoodPatch]
)

func NewHandler(svc *Service, baseURL string) *Handler {
	return resource.NewHandler[domain.Food, *domain.Food, domain.FoodPatch](svc, resource.ShowRouteName(domain.EntityName), baseURL)
}

func Routes(h *Handler, guard echo.MiddlewareFunc) []routing.Route {
	return resource.Routes(h, resource.RouteSpec{
		Name:       domain.EntityName,
		Tag:        "Food",
		Model:      domain.Food{},
		PatchModel: domain.FoodPatch{},
		Guard:      guard,
	})
}
