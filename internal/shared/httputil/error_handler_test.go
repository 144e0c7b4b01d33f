package httputil

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

var (
	errMissing = errors.New("missing")
	errInvalid = errors.New("invalid")
)

func serveError(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()

	mapper := NewErrorMapper().WithMappings(
		ErrorMapping{Error: errMissing, Status: http.StatusNotFound},
		ErrorMapping{Error: errInvalid, Status: http.StatusBadRequest, Detailed: true},
	)
	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler(mapper)
	e.GET("/boom", func(echo.Context) error { return err })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	return rec
}

func TestErrorHandlerNotFoundHasNoBody(t *testing.T) {
	rec := serveError(t, fmt.Errorf("load: %w", errMissing))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestErrorHandlerDetailedMessage(t *testing.T) {
	rec := serveError(t, fmt.Errorf("%w: name is required", errInvalid))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"invalid: name is required"}`, rec.Body.String())
}

func TestErrorHandlerDetailedMessageDropsOuterContext(t *testing.T) {
	inner := fmt.Errorf("%w: orderDate must match the layout 2006-01-02", errInvalid)
	rec := serveError(t, fmt.Errorf("create booking: %w", inner))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"invalid: orderDate must match the layout 2006-01-02"}`, rec.Body.String())
}

func TestErrorHandlerDefault(t *testing.T) {
	rec := serveError(t, errors.New("db exploded"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"internal server error"}`, rec.Body.String())
}

func TestErrorHandlerPassesEchoErrors(t *testing.T) {
	rec := serveError(t, echo.NewHTTPError(http.StatusUnauthorized, "missing credentials"))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"missing credentials"}`, rec.Body.String())
}

func TestErrorHandlerUnknownRoute(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler(nil)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Not Found"}`, rec.Body.String())
}
