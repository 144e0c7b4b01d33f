// Package server assembles the modules into one echo instance.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/config"
	accountsusecase "github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/accounts/application/usecase"
	accountsinfra "github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/accounts/infrastructure"
	accountshttp "github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/accounts/interface"
	bookings "github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/bookings/domain"
	bookingshttp "github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/bookings/interface"
	categories "github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/categories/domain"
	categoriesinfra "github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/categories/infrastructure"
	categorieshttp "github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/categories/interface"
	foods "github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/foods/domain"
	foodshttp "github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/foods/interface"
	menus "github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/menus/domain"
	menushttp "github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/menus/interface"
	pictures "github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/pictures/domain"
	picturesinfra "github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/pictures/infrastructure"
	pictureshttp "github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/pictures/interface"
	realtimeinfra "github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/realtime/infrastructure"
	realtimehttp "github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/realtime/interface"
	restaurants "github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/restaurants/domain"
	restaurantshttp "github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/restaurants/interface"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/platform/apidoc"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/platform/database"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/platform/routing"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/shared/auth"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/shared/httputil"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/shared/logging"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/shared/resource"
	"gorm.io/gorm"
)

const (
	Title   = "Quai Antique API"
	Version = "1.0.0"
)

// Deps are the collaborators built by main.
type Deps struct {
	Config *config.Config
	DB     *gorm.DB
	Hub    *realtimeinfra.Hub
	// Publisher receives every committed change; nil disables notifications.
	Publisher resource.ChangePublisher
	Logger    *slog.Logger
}

// New returns the echo instance serving every route, with the route table it was built from.
func New(deps Deps) (*echo.Echo, *routing.Table, error) {
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	baseURL := cfg.Server.PublicBaseURL
	db := deps.DB
	tx := database.NewTransactor(db)

	opts := []resource.Option{resource.WithLogger(logger)}
	if deps.Publisher != nil {
		opts = append(opts, resource.WithPublisher(deps.Publisher))
	}

	accountsUC := accountsusecase.NewAccountUseCase(
		accountsinfra.NewUserStore(db),
		accountsinfra.BcryptHasher{Cost: cfg.Security.BcryptCost},
		tx,
		deps.Publisher,
	)
	authenticator := accountshttp.NewAuthenticator(accountsUC, "")
	var guard echo.MiddlewareFunc
	if cfg.Security.ProtectWrites {
		guard = authenticator.Require
	}

	pictureStore := picturesinfra.NewStore(db)
	restaurantSvc := resource.NewService[restaurants.Restaurant, *restaurants.Restaurant](restaurants.EntityName, resource.NewGormStore[restaurants.Restaurant](db), tx, opts...)
	pictureSvc := resource.NewService[pictures.Picture, *pictures.Picture](pictures.EntityName, pictureStore, tx, opts...)
	categorySvc := resource.NewService[categories.Category, *categories.Category](categories.EntityName, categoriesinfra.NewStore(db, categories.FoodJoinTable, categories.MenuJoinTable), tx, opts...)
	foodSvc := resource.NewService[foods.Food, *foods.Food](foods.EntityName, categoriesinfra.NewCategorizedStore[foods.Food](db, foods.EntityName), tx, opts...)
	menuSvc := resource.NewService[menus.Menu, *menus.Menu](menus.EntityName, categoriesinfra.NewCategorizedStore[menus.Menu](db, menus.EntityName), tx, opts...)
	bookingSvc := resource.NewService[bookings.Booking, *bookings.Booking](bookings.EntityName, resource.NewGormStore[bookings.Booking](db), tx, opts...)

	var table routing.Table
	table.Add(restaurantshttp.Routes(restaurantshttp.NewHandler(restaurantSvc, pictureStore, baseURL), guard)...)
	table.Add(foodshttp.Routes(foodshttp.NewHandler(foodSvc, baseURL), guard)...)
	table.Add(categorieshttp.Routes(categorieshttp.NewHandler(categorySvc, baseURL), guard)...)
	table.Add(menushttp.Routes(menushttp.NewHandler(menuSvc, baseURL), guard)...)
	table.Add(bookingshttp.Routes(bookingshttp.NewHandler(bookingSvc, baseURL), guard)...)
	table.Add(pictureshttp.Routes(pictureshttp.NewHandler(pictureSvc, baseURL), guard)...)
	table.Add(accountshttp.Routes(accountshttp.NewHandler(accountsUC), authenticator)...)
	if deps.Hub != nil {
		wsAuth := accountshttp.NewAuthenticator(accountsUC, "token")
		table.Add(realtimehttp.Routes(realtimehttp.NewEventsWebsocketHandler(deps.Hub, wsAuth, cfg.Websocket.SendBuffer))...)
	}
	table.Add(healthRoute(db))

	doc, err := apidoc.NewDocument(apidoc.Build(apidoc.Info{
		Title:       Title,
		Description: "Restaurant booking API: restaurants, menus, food, categories, bookings, pictures and accounts.",
		Version:     Version,
	}, table.Routes()))
	if err != nil {
		return nil, nil, err
	}
	table.Add(apidoc.Routes(doc, Title)...)

	mapper := httputil.NewErrorMapper().
		WithMappings(accountshttp.ErrorMappings()...).
		WithMappings(resource.ErrorMappings()...)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = httputil.ErrorHandler(mapper)
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(logging.RequestLogger(logger))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  cfg.CORS.AllowedOrigins,
		AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, auth.HeaderAuthToken},
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		ExposeHeaders: []string{echo.HeaderLocation},
	}))
	table.Mount(e)
	return e, &table, nil
}

// HealthBody is the body of GET /healthz.
type HealthBody struct {
	Status string `json:"status"`
}

func healthRoute(db *gorm.DB) routing.Route {
	return routing.Route{
		Method:  http.MethodGet,
		Path:    "/healthz",
		Name:    "health",
		Summary: "Report whether the store answers",
		Tags:    []string{"Health"},
		Handler: func(c echo.Context) error {
			ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
			defer cancel()
			if err := database.Ping(ctx, db); err != nil {
				slog.Warn("health check failed", slog.Any("error", err))
				return c.JSON(http.StatusServiceUnavailable, HealthBody{Status: "unavailable"})
			}
			return c.JSON(http.StatusOK, HealthBody{Status: "ok"})
		},
		Responses: map[int]routing.Response{
			http.StatusOK:                 routing.StatusText(http.StatusOK, HealthBody{}),
			http.StatusServiceUnavailable: routing.StatusText(http.StatusServiceUnavailable, HealthBody{}),
		},
	}
}
