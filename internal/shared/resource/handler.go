package resource

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/shared/httputil"
)

// View renders an entity for the show endpoint.
type View[T any] func(ctx context.Context, entity *T) (any, error)

// Handler exposes a Service over HTTP. P is the concrete patch type decoded from request bodies.
type Handler[T any, PT Record[T], P Patch[T]] struct {
	service   *Service[T, PT]
	showRoute string
	baseURL   string
	view      View[T]
}

// NewHandler builds the HTTP handlers of a resource. showRoute names the GET route used in Location headers.
func NewHandler[T any, PT Record[T], P Patch[T]](service *Service[T, PT], showRoute, baseURL string) *Handler[T, PT, P] {
	return &Handler[T, PT, P]{service: service, showRoute: showRoute, baseURL: baseURL}
}

// WithView replaces the default rendering of Show.
func (h *Handler[T, PT, P]) WithView(view View[T]) *Handler[T, PT, P] {
	h.view = view
	return h
}

// Create handles POST /api/{r}.
func (h *Handler[T, PT, P]) Create(c echo.Context) error {
	patch, err := h.decode(c)
	if err != nil {
		return err
	}
	entity, err := h.service.Create(c.Request().Context(), patch)
	if err != nil {
		return err
	}
	httputil.SetLocation(c, h.baseURL, h.showRoute, PT(entity).PrimaryKey())
	return c.JSON(http.StatusCreated, entity)
}

// Show handles GET /api/{r}/:id.
func (h *Handler[T, PT, P]) Show(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return ErrNotFound
	}
	ctx := c.Request().Context()
	entity, err := h.service.Get(ctx, id)
	if err != nil {
		return err
	}
	if h.view == nil {
		return c.JSON(http.StatusOK, entity)
	}
	out, err := h.view(ctx, entity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// Edit handles PUT /api/{r}/:id and answers 201 with the updated entity.
// An unknown id answers 404 whatever the body holds.
func (h *Handler[T, PT, P]) Edit(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return ErrNotFound
	}
	ctx := c.Request().Context()
	if _, err := h.service.Get(ctx, id); err != nil {
		return err
	}
	patch, err := h.decode(c)
	if err != nil {
		return err
	}
	entity, err := h.service.Update(ctx, id, patch)
	if err != nil {
		return err
	}
	httputil.SetLocation(c, h.baseURL, h.showRoute, id)
	return c.JSON(http.StatusCreated, entity)
}

// Delete handles DELETE /api/{r}/:id.
func (h *Handler[T, PT, P]) Delete(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return ErrNotFound
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler[T, PT, P]) decode(c echo.Context) (P, error) {
	var patch P
	err := c.Echo().JSONSerializer.Deserialize(c, &patch)
	switch {
	case err == nil, errors.Is(err, io.EOF):
		return patch, nil
	default:
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return patch, he
		}
		return patch, echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	}
}

func parseID(c echo.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
