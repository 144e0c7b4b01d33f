package transport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	categories "github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/categories/domain"
	categorystore "github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/categories/infrastructure"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/foods/domain"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/platform/database"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/platform/database/databasetest"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/platform/routing"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/shared/httputil"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/shared/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newServer(t *testing.T) (*echo.Echo, *gorm.DB) {
	t.Helper()
	db := databasetest.Open(t, &categories.Category{}, &domain.Food{})
	tx := database.NewTransactor(db)
	svc := resource.NewService[domain.Food, *domain.Food](domain.EntityName, categorystore.NewCategorizedStore[domain.Food](db, domain.EntityName), tx)

	var table routing.Table
	table.Add(Routes(NewHandler(svc, ""), nil)...)

	e := echo.New()
	e.HTTPErrorHandler = httputil.ErrorHandler(httputil.NewErrorMapper().WithMappings(resource.ErrorMappings()...))
	table.Mount(e)

	for _, title := range []string{"Entrée", "Plat", "Dessert"} {
		require.NoError(t, db.Create(&categories.Category{Title: title}).Error)
	}
	return e, db
}

func request(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeFood(t *testing.T, rec *httptest.ResponseRecorder) domain.Food {
	t.Helper()
	var f domain.Food
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &f), rec.Body.String())
	return f
}

func TestFoodWithCategories(t *testing.T) {
	e, _ := newServer(t)

	rec := request(e, http.MethodPost, "/api/food", `{"title":"Tartiflette","description":"Reblochon","price":1850,"categoryIds":[2]}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeFood(t, rec)
	assert.Equal(t, 1850, created.Price)
	assert.Equal(t, []uint{2}, created.CategoryIDs)

	rec = request(e, http.MethodPut, "/api/food/1", `{"price":1900}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, []uint{2}, decodeFood(t, rec).CategoryIDs)

	rec = request(e, http.MethodPut, "/api/food/1", `{"categoryIds":[3,1]}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = request(e, http.MethodGet, "/api/food/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	shown := decodeFood(t, rec)
	assert.Equal(t, "Tartiflette", shown.Title)
	assert.Equal(t, 1900, shown.Price)
	assert.Equal(t, []uint{1, 3}, shown.CategoryIDs)
}

func TestFoodWithoutCategoriesListsNone(t *testing.T) {
	e, _ := newServer(t)

	rec := request(e, http.MethodPost, "/api/food", `{"title":"Pain"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"categoryIds":[]`)
}

func TestFoodUnknownCategoryIsRejected(t *testing.T) {
	e, db := newServer(t)

	rec := request(e, http.MethodPost, "/api/food", `{"title":"Fondue","categoryIds":[42]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var count int64
	require.NoError(t, db.Model(&domain.Food{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDeleteUnknownFood(t *testing.T) {
	e, _ := newServer(t)

	rec := request(e, http.MethodDelete, "/api/food/999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestDeletingLinkedRowsClearsJoinTable(t *testing.T) {
	e, db := newServer(t)
	require.Equal(t, http.StatusCreated, request(e, http.MethodPost, "/api/food", `{"title":"Gratin","categoryIds":[1,2]}`).Code)
	require.Equal(t, http.StatusCreated, request(e, http.MethodPost, "/api/food", `{"title":"Tarte","categoryIds":[3]}`).Code)

	catStore := categorystore.NewStore(db, categories.FoodJoinTable)
	category, err := catStore.FindByID(t.Context(), 1)
	require.NoError(t, err)
	require.NoError(t, catStore.Delete(t.Context(), category))

	rec := request(e, http.MethodGet, "/api/food/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []uint{2}, decodeFood(t, rec).CategoryIDs)

	assert.Equal(t, http.StatusNoContent, request(e, http.MethodDelete, "/api/food/1", "").Code)
	var links int64
	require.NoError(t, db.Table(categories.FoodJoinTable).Count(&links).Error)
	assert.EqualValues(t, 1, links)
}
