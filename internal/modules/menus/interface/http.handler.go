package transport

import (
	"github.com/labstack/echo/v4"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/menus/domain"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/platform/routing"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/shared/resource"
)

type (
	Service = resource.Service[domain.Menu, *domain.Menu]
	Handler = resource.Handler[domain.Menu, *domain.Menu, domain.MenuPatch]
)

func NewHandler(svc *Service, baseURL string) *Handler {
	return resource.NewHandler[domain.Menu, *domain.Menu, domain.MenuPatch](svc, resource.ShowRouteName(domain.EntityName), baseURL)
}

func Routes(h *Handler, guard echo.MiddlewareFunc) []routing.Route {
	return resource.Routes(h, resource.RouteSpec{
		Name:       domain.EntityName,
		Tag:        "Menu",
		Model:      domain.Menu{},
		PatchModel: domain.MenuPatch{},
		Guard:      guard,
	})
}
