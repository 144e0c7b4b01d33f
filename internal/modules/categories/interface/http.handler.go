package transport

import (
	"github.com/labstack/echo/v4"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/categories/domain"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/platform/routing"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/shared/resource"
)

type (
	Service = resource.Service[domain.Category, *domain.Category]
	Handler = resource.Handler[domain.Category, *domain.Category, domain.CategoryPatch]
)

func NewHandler(svc *Service, baseURL string) *Handler {
	return resource.NewHandler[domain.Category, *domain.Category, domain.CategoryPatch](svc, resource.ShowRouteName(domain.EntityName), baseURL)
}

func Routes(h *Handler, guard echo.MiddlewareFunc) []routing.Route {
	return resource.Routes(h, resource.RouteSpec{
		Name:       domain.EntityName,
		Tag:        "Category",
		Model:      domain.Category{},
		PatchModel: domain.CategoryPatch{},
		Guard:      guard,
	})
}
