package transport

import (
	"github.com/labstack/echo/v4"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/bookings/domain"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/platform/routing"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/shared/resource"
)

type (
	Service = resource.Service[domain.Booking, *domain.Booking]
	Handler = resource.Handler[domain.Booking, *domain.Booking, domain.BookingPatch]
)

func NewHandler(svc *Service, baseURL string) *Handler {
	return resource.NewHandler[domain.Booking, *domain.Booking, domain.BookingPatch](svc, resource.ShowRouteName(domain.EntityName), baseURL)
}

func Routes(h *Handler, guard echo.MiddlewareFunc) []routing.Route {
	return resource.Routes(h, resource.RouteSpec{
		Name:       domain.EntityName,
		Tag:        "Booking",
		Model:      domain.Booking{},
		PatchModel: domain.BookingPatch{},
		Guard:      guard,
	})
}
