package resource

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/platform/routing"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/shared/httputil"
)

// RouteSpec describes the documentation and protection of a resource's routes.
type RouteSpec struct {
	// Name is the singular path segment, e.g. "restaurant".
	Name string
	Tag  string
	// Model and PatchModel are sample values documenting the bodies.
	Model      any
	ShowModel  any
	PatchModel any
	// Guard, when set, protects the write routes.
	Guard echo.MiddlewareFunc
}

// ShowRouteName is the route name of GET /api/{name}/:id.
func ShowRouteName(name string) string { return name + ".show" }

// Routes returns the four CRUD routes of a resource.
func Routes[T any, PT Record[T], P Patch[T]](h *Handler[T, PT, P], rs RouteSpec) []routing.Route {
	base := "/api/" + rs.Name
	item := base + "/:id"
	tags := []string{rs.Tag}

	var guard []echo.MiddlewareFunc
	if rs.Guard != nil {
		guard = []echo.MiddlewareFunc{rs.Guard}
	}
	showModel := rs.ShowModel
	if showModel == nil {
		showModel = rs.Model
	}
	notFound := routing.Pass("Not Found")

	return []routing.Route{
		{
			Method:     http.MethodPost,
			Path:       base,
			Name:       rs.Name + ".new",
			Summary:    "Create a " + rs.Name,
			Tags:       tags,
			Handler:    h.Create,
			Middleware: guard,
			Secured:    rs.Guard != nil,
			Body:       rs.PatchModel,
			Responses: map[int]routing.Response{
				http.StatusCreated:    routing.StatusText(http.StatusCreated, rs.Model),
				http.StatusBadRequest: routing.StatusText(http.StatusBadRequest, httputil.MessageBody{}),
			},
		},
		{
			Method:  http.MethodGet,
			Path:    item,
			Name:    ShowRouteName(rs.Name),
			Summary: "Show a " + rs.Name,
			Tags:    tags,
			Handler: h.Show,
			Responses: map[int]routing.Response{
				http.StatusOK:       routing.StatusText(http.StatusOK, showModel),
				http.StatusNotFound: notFound,
			},
		},
		{
			Method:     http.MethodPut,
			Path:       item,
			Name:       rs.Name + ".edit",
			Summary:    "Edit a " + rs.Name,
			Tags:       tags,
			Handler:    h.Edit,
			Middleware: guard,
			Secured:    rs.Guard != nil,
			Body:       rs.PatchModel,
			Responses: map[int]routing.Response{
				http.StatusCreated:    routing.StatusText(http.StatusCreated, rs.Model),
				http.StatusBadRequest: routing.StatusText(http.StatusBadRequest, httputil.MessageBody{}),
				http.StatusNotFound:   notFound,
			},
		},
		{
			Method:     http.MethodDelete,
			Path:       item,
			Name:       rs.Name + ".delete",
			Summary:    "Delete a " + rs.Name,
			Tags:       tags,
			Handler:    h.Delete,
			Middleware: guard,
			Secured:    rs.Guard != nil,
			Responses: map[int]routing.Response{
				http.StatusNoContent: routing.Pass("No Content"),
				http.StatusNotFound:  notFound,
			},
		},
	}
}
