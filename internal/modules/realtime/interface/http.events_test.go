package transport

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/realtime/domain"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/realtime/infrastructure"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/platform/routing"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/shared/httputil"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/shared/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errNoToken = errors.New("missing credentials")

type tokenIdentifier map[string]string

func (ti tokenIdentifier) Identify(c echo.Context) (string, error) {
	if id, ok := ti[c.QueryParam("token")]; ok {
		return id, nil
	}
	return "", errNoToken
}

func newEventsServer(t *testing.T) (*httptest.Server, *infrastructure.Hub) {
	t.Helper()
	hub := infrastructure.NewHub()

	var table routing.Table
	table.Add(Routes(NewEventsWebsocketHandler(hub, tokenIdentifier{"good": "7", "other": "8"}, 8))...)

	e := echo.New()
	e.HTTPErrorHandler = httputil.ErrorHandler(httputil.NewErrorMapper().WithMapping(errNoToken, http.StatusUnauthorized, "missing credentials"))
	table.Mount(e)

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv, hub
}

func dial(t *testing.T, srv *httptest.Server, token string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/events?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) domain.Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg domain.Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestEventsRejectsMissingToken(t *testing.T) {
	srv, _ := newEventsServer(t)

	resp, err := http.Get(srv.URL + "/ws/events")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestEventsStreamsChanges(t *testing.T) {
	srv, hub := newEventsServer(t)
	conn := dial(t, srv, "good")

	connected := readMessage(t, conn)
	assert.Equal(t, domain.TopicSystemConnected, connected.Topic)
	assert.Equal(t, "7", connected.Metadata["userId"])
	assert.NotEmpty(t, connected.Metadata["sessionId"])

	hub.Broadcast(context.Background(), &domain.Message{Topic: "restaurant.created", Entity: "restaurant", Action: "created", ResourceID: "1"})
	got := readMessage(t, conn)
	assert.Equal(t, "restaurant.created", got.Topic)
	assert.Equal(t, "1", got.ResourceID)

	require.NoError(t, conn.WriteJSON(map[string]string{"action": "ping"}))
	assert.Equal(t, domain.TopicSystemPong, readMessage(t, conn).Topic)
}

func TestEventsSubscriptionFiltersTopics(t *testing.T) {
	srv, hub := newEventsServer(t)
	conn := dial(t, srv, "good")
	readMessage(t, conn)

	require.NoError(t, conn.WriteJSON(map[string]string{"action": "subscribe", "topic": "booking.created"}))
	require.NoError(t, conn.WriteJSON(map[string]string{"action": "ping"}))
	// the pong proves the subscribe command was processed
	assert.Equal(t, domain.TopicSystemPong, readMessage(t, conn).Topic)

	hub.Broadcast(context.Background(), &domain.Message{Topic: "restaurant.created"})
	hub.Broadcast(context.Background(), &domain.Message{Topic: "booking.created"})

	assert.Equal(t, "booking.created", readMessage(t, conn).Topic)
}

func TestEventsKeepAccountChangesPrivate(t *testing.T) {
	srv, hub := newEventsServer(t)
	alice := dial(t, srv, "good")
	bob := dial(t, srv, "other")
	readMessage(t, alice)
	readMessage(t, bob)

	hub.Broadcast(context.Background(), domain.MessageFromChange(resource.Change{
		Entity:     "user",
		Action:     resource.ActionCreated,
		ResourceID: 8,
		Data:       map[string]string{"email": "bob.secret@example.com"},
		Audience:   8,
	}))
	hub.Broadcast(context.Background(), &domain.Message{Topic: "restaurant.created", Entity: "restaurant", Action: "created", ResourceID: "1"})

	own := readMessage(t, bob)
	assert.Equal(t, "user.created", own.Topic)
	assert.Equal(t, "8", own.ResourceID)
	assert.Equal(t, "restaurant.created", readMessage(t, bob).Topic)

	// alice skips straight to the public event
	assert.Equal(t, "restaurant.created", readMessage(t, alice).Topic)
}
