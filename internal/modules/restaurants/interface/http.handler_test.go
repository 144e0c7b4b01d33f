package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/restaurants/domain"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/platform/database"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/platform/database/databasetest"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/platform/routing"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/shared/httputil"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/shared/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPictures struct {
	byRestaurant map[uint][]domain.PictureSummary
	err          error
}

func (s stubPictures) ListByRestaurant(_ context.Context, id uint) ([]domain.PictureSummary, error) {
	return s.byRestaurant[id], s.err
}

func newServer(t *testing.T, pictures stubPictures) *echo.Echo {
	t.Helper()
	db := databasetest.Open(t, &domain.Restaurant{})
	svc := resource.NewService[domain.Restaurant, *domain.Restaurant](domain.EntityName, resource.NewGormStore[domain.Restaurant](db), database.NewTransactor(db))

	var table routing.Table
	table.Add(Routes(NewHandler(svc, pictures, ""), nil)...)

	e := echo.New()
	e.HTTPErrorHandler = httputil.ErrorHandler(httputil.NewErrorMapper().WithMappings(resource.ErrorMappings()...))
	table.Mount(e)
	return e
}

func request(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Host = "localhost:8000"
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRestaurantLifecycle(t *testing.T) {
	e := newServer(t, stubPictures{byRestaurant: map[uint][]domain.PictureSummary{
		1: {{ID: 3, Title: "Image n°3", Slug: "image-n-3"}},
	}})

	rec := request(e, http.MethodPost, "/api/restaurant", `{"name":"Quai Antique","description":"Chambéry","maxGuest":40}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "http://localhost:8000/api/restaurant/1", rec.Header().Get(echo.HeaderLocation))

	rec = request(e, http.MethodGet, "/api/restaurant/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var shown map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &shown))
	assert.Equal(t, "Quai Antique", shown["name"])
	assert.Equal(t, []any{}, shown["amOpeningTime"])
	require.Len(t, shown["pictures"], 1)
	assert.Equal(t, "image-n-3", shown["pictures"].([]any)[0].(map[string]any)["slug"])

	rec = request(e, http.MethodPut, "/api/restaurant/1", `{"maxGuest":45}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var edited domain.Restaurant
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &edited))
	assert.Equal(t, 45, edited.MaxGuest)
	assert.Equal(t, "Quai Antique", edited.Name)
	assert.NotNil(t, edited.UpdatedAt)

	assert.Equal(t, http.StatusNoContent, request(e, http.MethodDelete, "/api/restaurant/1", "").Code)
	assert.Equal(t, http.StatusNotFound, request(e, http.MethodGet, "/api/restaurant/1", "").Code)
}

func TestRestaurantNameIsValidated(t *testing.T) {
	e := newServer(t, stubPictures{})

	rec := request(e, http.MethodPost, "/api/restaurant", `{"name":"`+strings.Repeat("x", 33)+`"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "name must be at most 32 characters")
}

func TestRestaurantShowFailsWhenPicturesFail(t *testing.T) {
	e := newServer(t, stubPictures{err: errors.New("store down")})

	require.Equal(t, http.StatusCreated, request(e, http.MethodPost, "/api/restaurant", `{"name":"Quai Antique"}`).Code)
	assert.Equal(t, http.StatusInternalServerError, request(e, http.MethodGet, "/api/restaurant/1", "").Code)
}
