package transport

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/accounts/application/port"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/accounts/application/usecase"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/accounts/domain"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/platform/routing"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/shared/httputil"
)

const tag = "User"

// LoginRequest is the body of POST /api/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type Handler struct {
	accounts *usecase.AccountUseCase
}

func NewHandler(accounts *usecase.AccountUseCase) *Handler {
	return &Handler{accounts: accounts}
}

// Register handles POST /api/registration.
func (h *Handler) Register(c echo.Context) error {
	var patch domain.UserPatch
	if err := decode(c, &patch); err != nil {
		return err
	}
	user, err := h.accounts.Register(c.Request().Context(), patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user.Credentials())
}

// Login handles POST /api/login.
func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := decode(c, &req); err != nil {
		return port.ErrMissingCredentials
	}
	user, err := h.accounts.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user.Credentials())
}

// Me handles GET /api/me.
func (h *Handler) Me(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return port.ErrMissingCredentials
	}
	return c.JSON(http.StatusOK, user.View())
}

// Edit handles PUT /api/edit.
func (h *Handler) Edit(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return port.ErrMissingCredentials
	}
	var patch domain.UserPatch
	if err := decode(c, &patch); err != nil {
		return err
	}
	updated, err := h.accounts.Edit(c.Request().Context(), user.ID, patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, updated.View())
}

func decode(c echo.Context, dst any) error {
	err := c.Echo().JSONSerializer.Deserialize(c, dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he
	}
	return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
}

// ErrorMappings maps the account errors to HTTP responses.
func ErrorMappings() []httputil.ErrorMapping {
	return []httputil.ErrorMapping{
		{Error: port.ErrMissingCredentials, Status: http.StatusUnauthorized, Message: port.ErrMissingCredentials.Error()},
		{Error: port.ErrEmailTaken, Status: http.StatusConflict, Message: port.ErrEmailTaken.Error()},
	}
}

// Routes returns the account routes. auth resolves the current user from the API token.
func Routes(h *Handler, auth *Authenticator) []routing.Route {
	unauthorized := routing.StatusText(http.StatusUnauthorized, httputil.MessageBody{})
	required := []echo.MiddlewareFunc{auth.Require}

	routes := []routing.Route{
		{
			Method:  http.MethodPost,
			Path:    "/api/registration",
			Name:    "registration",
			Summary: "Register a user account",
			Tags:    []string{tag},
			Handler: h.Register,
			Body:    domain.UserPatch{},
			Responses: map[int]routing.Response{
				http.StatusCreated:    routing.StatusText(http.StatusCreated, domain.Credentials{}),
				http.StatusBadRequest: routing.StatusText(http.StatusBadRequest, httputil.MessageBody{}),
				http.StatusConflict:   routing.StatusText(http.StatusConflict, httputil.MessageBody{}),
			},
		},
		{
			Method:  http.MethodPost,
			Path:    "/api/login",
			Name:    "login",
			Summary: "Log in with email and password",
			Tags:    []string{tag},
			Handler: h.Login,
			Body:    LoginRequest{},
			Responses: map[int]routing.Response{
				http.StatusOK:           routing.StatusText(http.StatusOK, domain.Credentials{}),
				http.StatusUnauthorized: unauthorized,
			},
		},
	}
	for _, prefix := range []string{"/api", "/api/account"} {
		name := "account"
		if prefix == "/api/account" {
			name = "account.alias"
		}
		routes = append(routes,
			routing.Route{
				Method:     http.MethodGet,
				Path:       prefix + "/me",
				Name:       name + ".me",
				Summary:    "Show the current user",
				Tags:       []string{tag},
				Handler:    h.Me,
				Middleware: required,
				Secured:    true,
				Responses: map[int]routing.Response{
					http.StatusOK:           routing.StatusText(http.StatusOK, domain.UserView{}),
					http.StatusUnauthorized: unauthorized,
				},
			},
			routing.Route{
				Method:     http.MethodPut,
				Path:       prefix + "/edit",
				Name:       name + ".edit",
				Summary:    "Edit the current user",
				Tags:       []string{tag},
				Handler:    h.Edit,
				Middleware: required,
				Secured:    true,
				Body:       domain.UserPatch{},
				Responses: map[int]routing.Response{
					http.StatusCreated:      routing.StatusText(http.StatusCreated, domain.UserView{}),
					http.StatusBadRequest:   routing.StatusText(http.StatusBadRequest, httputil.MessageBody{}),
					http.StatusUnauthorized: unauthorized,
				},
			},
		)
	}
	return routes
}
