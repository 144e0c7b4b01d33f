package httputil

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// AbsoluteURL prefixes path with baseURL, or with the scheme and host of the current request when baseURL is empty.
func AbsoluteURL(c echo.Context, baseURL, path string) string {
	if baseURL != "" {
		return strings.TrimRight(baseURL, "/") + path
	}
	return c.Scheme() + "://" + c.Request().Host + path
}

// SetLocation writes the Location header for the named route.
func SetLocation(c echo.Context, baseURL, routeName string, params ...any) {
	c.Response().Header().Set(echo.HeaderLocation, AbsoluteURL(c, baseURL, c.Echo().Reverse(routeName, params...)))
}
