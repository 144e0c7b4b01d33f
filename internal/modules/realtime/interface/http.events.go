package transport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/realtime/domain"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/realtime/infrastructure"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/platform/routing"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/shared/httputil"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Identifier resolves the user id behind the credential of a request.
type Identifier interface {
	Identify(c echo.Context) (string, error)
}

// NewEventsWebsocketHandler exposes /ws/events; the client must present a valid API token
// and then receives entity-change events.
func NewEventsWebsocketHandler(hub *infrastructure.Hub, ident Identifier, sendBuffer int) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := c.Response().Header().Get(echo.HeaderXRequestID)
		peerIP := c.RealIP()

		userID, err := ident.Identify(c)
		if err != nil {
			slog.Warn("events ws auth failed", slog.String("ip", peerIP), slog.Any("error", err))
			return err
		}

		conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			slog.Error("events ws upgrade failed", slog.String("ip", peerIP), slog.String("reqID", requestID), slog.Any("error", err))
			return nil
		}

		sessionID := uuid.NewString()
		client := infrastructure.NewClient(hub, conn, userID, sessionID, sendBuffer)
		hub.AttachClient(client, nil)

		go client.WritePump()
		go client.ReadPump()

		client.SendDomainMessage(&domain.Message{
			Topic:  domain.TopicSystemConnected,
			Entity: domain.SystemEntity,
			Action: domain.ActionConnected,
			Metadata: map[string]string{
				"sessionId":           sessionID,
				domain.MetadataUserID: userID,
			},
			Data: map[string]any{
				"topics": []string{"*"},
			},
			Timestamp: time.Now().UTC(),
		})

		slog.Info("events ws connected", slog.String("userId", userID), slog.String("sessionId", sessionID), slog.String("ip", peerIP), slog.String("reqID", requestID))
		return nil
	}
}

// Routes returns the websocket route.
func Routes(handler echo.HandlerFunc) []routing.Route {
	return []routing.Route{
		{
			Method:  http.MethodGet,
			Path:    "/ws/events",
			Name:    "events.stream",
			Summary: "Stream entity change events over a websocket",
			Tags:    []string{"Realtime"},
			Handler: handler,
			Secured: true,
			Responses: map[int]routing.Response{
				http.StatusSwitchingProtocols: routing.Pass("Switching Protocols"),
				http.StatusUnauthorized:       routing.StatusText(http.StatusUnauthorized, httputil.MessageBody{}),
			},
		},
	}
}
