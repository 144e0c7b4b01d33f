package transport

import (
	"github.com/labstack/echo/v4"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/pictures/domain"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/platform/routing"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/shared/resource"
)

type (
	Service = resource.Service[domain.Picture, *domain.Picture]
	Handler = resource.Handler[domain.Picture, *domain.Picture, domain.PicturePatch]
)

func NewHandler(svc *Service, baseURL string) *Handler {
	return resource.NewHandler[domain.Picture, *domain.Picture, domain.PicturePatch](svc, resource.ShowRouteName(domain.EntityName), baseURL)
}

func Routes(h *Handler, guard echo.MiddlewareFunc) []routing.Route {
	return resource.Routes(h, resource.RouteSpec{
		Name:       domain.EntityName,
		Tag:        "Picture",
		Model:      domain.Picture{},
		PatchModel: domain.PicturePatch{},
		Guard:      guard,
	})
}
