package transport

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/accounts/application/port"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/accounts/domain"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/shared/auth"
)

const currentUserKey = "accounts.currentUser"

// TokenResolver resolves an API token to its account.
type TokenResolver interface {
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

// Authenticator reads the API token of each request.
type Authenticator struct {
	resolver   TokenResolver
	queryParam string
}

// NewAuthenticator accepts the bearer and X-AUTH-TOKEN headers, plus the queryParam query parameter when not empty.
func NewAuthenticator(resolver TokenResolver, queryParam string) *Authenticator {
	return &Authenticator{resolver: resolver, queryParam: queryParam}
}

// Resolve returns the account owning the request token, or port.ErrMissingCredentials.
func (a *Authenticator) Resolve(c echo.Context) (*domain.User, error) {
	token := auth.ExtractToken(c.Request(), a.queryParam)
	if token == "" {
		return nil, port.ErrMissingCredentials
	}
	return a.resolver.Authenticate(c.Request().Context(), token)
}

// Identify returns the id of the request's user, for the websocket stream.
func (a *Authenticator) Identify(c echo.Context) (string, error) {
	user, err := a.Resolve(c)
	if err != nil {
		return "", err
	}
	return strconv.FormatUint(uint64(user.ID), 10), nil
}

// Require rejects requests without a valid API token and stores the user for CurrentUser.
func (a *Authenticator) Require(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := a.Resolve(c)
		if err != nil {
			slog.Debug("request rejected", slog.String("path", c.Path()), slog.Any("error", err))
			return err
		}
		c.Set(currentUserKey, user)
		return next(c)
	}
}

// CurrentUser returns the user stored by Require.
func CurrentUser(c echo.Context) (*domain.User, bool) {
	user, ok := c.Get(currentUserKey).(*domain.User)
	return user, ok && user != nil
}
