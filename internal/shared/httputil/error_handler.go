package httputil

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

// MessageBody is the JSON shape of every error response that carries a body.
type MessageBody struct {
	Message string `json:"message"`
}

// JSONMessage writes {"message": message} with the given status.
func JSONMessage(c echo.Context, status int, message string) error {
	return c.JSON(status, MessageBody{Message: message})
}

// ErrorHandler returns an echo.HTTPErrorHandler that renders domain errors through the mapper.
// Errors raised by echo itself (malformed bodies, unknown routes) keep echo's status and message.
// A mapping with an empty message produces a response without body.
func ErrorHandler(mapper *ErrorMapper) echo.HTTPErrorHandler {
	if mapper == nil {
		mapper = NewErrorMapper()
	}
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			if he.Internal != nil {
				slog.Debug("http error", slog.Int("status", he.Code), slog.Any("error", he.Internal))
			}
			writeBody(c, he.Code, he.Message)
			return
		}

		info := mapper.Map(err)
		if info.Status >= http.StatusInternalServerError {
			slog.Error("request failed",
				slog.String("method", c.Request().Method),
				slog.String("path", c.Path()),
				slog.Any("error", err),
			)
		}
		if info.Message == "" {
			writeBody(c, info.Status, nil)
			return
		}
		writeBody(c, info.Status, info.Message)
	}
}

func writeBody(c echo.Context, status int, message any) {
	var err error
	switch m := message.(type) {
	case nil:
		err = c.NoContent(status)
	case string:
		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = JSONMessage(c, status, m)
		}
	default:
		err = c.JSON(status, m)
	}
	if err != nil {
		slog.Warn("error response write failed", slog.Any("error", err))
	}
}
