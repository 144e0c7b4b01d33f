package routing

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestMountRegistersNamedRoutes(t *testing.T) {
	var table Table
	var order []string
	guard := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			order = append(order, "guard")
			return next(c)
		}
	}
	table.Add(
		Route{Method: http.MethodGet, Path: "/api/menu/:id", Name: "menu.show", Handler: func(c echo.Context) error {
			return c.String(http.StatusOK, c.Param("id"))
		}},
		Route{Method: http.MethodDelete, Path: "/api/menu/:id", Name: "menu.delete", Middleware: []echo.MiddlewareFunc{guard}, Handler: func(c echo.Context) error {
			order = append(order, "handler")
			return c.NoContent(http.StatusNoContent)
		}},
	)

	e := echo.New()
	table.Mount(e)

	assert.Equal(t, "/api/menu/7", e.Reverse("menu.show", 7))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/menu/7", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []string{"guard", "handler"}, order)
	assert.Len(t, table.Routes(), 2)
}
