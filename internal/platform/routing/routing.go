// Package routing holds the explicit route table the HTTP server and the API documentation are built from.
package routing

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Response documents one status code of a route. Model is a sample value whose type describes the body.
type Response struct {
	Description string
	Model       any
}

// Route is one entry of the table.
type Route struct {
	Method  string
	Path    string
	Name    string
	Summary string
	Tags    []string
	Handler echo.HandlerFunc
	// Middleware runs only for this route.
	Middleware []echo.MiddlewareFunc
	// Secured marks routes that need an API token.
	Secured bool
	// Body is a sample value describing the JSON request body, nil when none.
	Body      any
	Responses map[int]Response
}

// Table is an ordered list of routes.
type Table struct {
	routes []Route
}

// Add appends routes to the table.
func (t *Table) Add(routes ...Route) {
	t.routes = append(t.routes, routes...)
}

// Routes returns a copy of the registered routes in insertion order.
func (t *Table) Routes() []Route {
	out := make([]Route, len(t.routes))
	copy(out, t.routes)
	return out
}

// Mount registers every route on e.
func (t *Table) Mount(e *echo.Echo) {
	for _, r := range t.routes {
		route := e.Add(r.Method, r.Path, r.Handler, r.Middleware...)
		if r.Name != "" {
			route.Name = r.Name
		}
	}
}

// Pass is a shorthand for a documented response without body.
func Pass(description string) Response {
	return Response{Description: description}
}

// StatusText documents a response with the standard reason phrase and model.
func StatusText(status int, model any) Response {
	return Response{Description: http.StatusText(status), Model: model}
}
