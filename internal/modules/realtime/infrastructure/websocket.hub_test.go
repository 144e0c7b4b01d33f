package infrastructure

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"testing"
	"time"

	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/realtime/domain"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/shared/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	closed atomic.Bool
	closes atomic.Int32
}

func (f *fakeConn) WriteMessage(int, []byte) error            { return nil }
func (f *fakeConn) WriteControl(int, []byte, time.Time) error { return nil }
func (f *fakeConn) ReadJSON(any) error                        { return nil }
func (f *fakeConn) SetReadLimit(int64)                        {}
func (f *fakeConn) SetReadDeadline(time.Time) error           { return nil }
func (f *fakeConn) SetPongHandler(func(string) error)         {}
func (f *fakeConn) Close() error {
	f.closed.Store(true)
	f.closes.Add(1)
	return nil
}

func newTestClient(hub *Hub, user, session string, buf int) (*Client, *fakeConn) {
	conn := &fakeConn{}
	return NewClient(hub, conn, user, session, buf), conn
}

func drain(t *testing.T, c *Client) []domain.Message {
	t.Helper()
	var out []domain.Message
	for {
		select {
		case data := <-c.send:
			var msg domain.Message
			require.NoError(t, json.Unmarshal(data, &msg))
			out = append(out, msg)
		default:
			return out
		}
	}
}

func topics(msgs []domain.Message) []string {
	out := make([]string, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, m.Topic)
	}
	return out
}

func TestHubClientWithoutSubscriptionsReceivesEverything(t *testing.T) {
	hub := NewHub()
	all, _ := newTestClient(hub, "1", "a", 8)
	hub.AttachClient(all, nil)

	hub.Broadcast(context.Background(), &domain.Message{Topic: "restaurant.created"})
	hub.Broadcast(context.Background(), &domain.Message{Topic: "booking.deleted"})

	assert.Equal(t, []string{"restaurant.created", "booking.deleted"}, topics(drain(t, all)))
}

func TestHubSubscribedClientOnlyReceivesItsTopics(t *testing.T) {
	hub := NewHub()
	sub, _ := newTestClient(hub, "1", "a", 8)
	hub.AttachClient(sub, []string{"booking.created", " "})

	hub.Broadcast(context.Background(), &domain.Message{Topic: "restaurant.created"})
	hub.Broadcast(context.Background(), &domain.Message{Topic: "booking.created"})
	assert.Equal(t, []string{"booking.created"}, topics(drain(t, sub)))

	sub.commands.Process(sub, Command{Action: "unsubscribe", Topic: "booking.created"})
	hub.Broadcast(context.Background(), &domain.Message{Topic: "restaurant.created"})
	assert.Equal(t, []string{"restaurant.created"}, topics(drain(t, sub)))
}

func TestHubTargetsMetadataUser(t *testing.T) {
	hub := NewHub()
	jane, _ := newTestClient(hub, "1", "a", 8)
	john, _ := newTestClient(hub, "2", "b", 8)
	hub.AttachClient(jane, nil)
	hub.AttachClient(john, nil)

	hub.Broadcast(context.Background(), &domain.Message{Topic: "user.updated", Metadata: map[string]string{domain.MetadataUserID: "2"}})

	assert.Empty(t, drain(t, jane))
	assert.Len(t, drain(t, john), 1)
}

func TestHubDetachesClientWithFullBuffer(t *testing.T) {
	hub := NewHub()
	slow, conn := newTestClient(hub, "1", "a", 1)
	hub.AttachClient(slow, nil)

	hub.Broadcast(context.Background(), &domain.Message{Topic: "food.created"})
	hub.Broadcast(context.Background(), &domain.Message{Topic: "food.updated"})

	require.Eventually(t, func() bool { return hub.Clients() == 0 }, time.Second, 5*time.Millisecond)
	assert.True(t, conn.closed.Load())
}

func TestHubReplacesClientWithSameKey(t *testing.T) {
	hub := NewHub()
	first, firstConn := newTestClient(hub, "1", "a", 8)
	second, _ := newTestClient(hub, "1", "a", 8)
	hub.AttachClient(first, nil)
	hub.AttachClient(second, nil)

	assert.Equal(t, 1, hub.Clients())
	assert.True(t, firstConn.closed.Load())
}

func TestCommandProcessor(t *testing.T) {
	hub := NewHub()
	c, _ := newTestClient(hub, "1", "a", 8)
	hub.AttachClient(c, nil)

	c.commands.Process(c, Command{Action: " PING "})
	c.commands.Process(c, Command{Action: "dance"})
	c.commands.Process(c, Command{Action: ""})

	msgs := drain(t, c)
	require.Len(t, msgs, 2)
	assert.Equal(t, domain.TopicSystemPong, msgs[0].Topic)
	assert.Equal(t, domain.TopicSystemError, msgs[1].Topic)

	c.commands.Process(c, Command{Action: "subscribe", Topic: "menu.created"})
	_, ok := c.subscribed["menu.created"]
	assert.True(t, ok)
}

func TestDetachClosesOnce(t *testing.T) {
	hub := NewHub()
	c, conn := newTestClient(hub, "1", "a", 8)
	hub.AttachClient(c, nil)

	hub.detachClient(c)
	hub.detachClient(c)

	assert.Equal(t, int32(1), conn.closes.Load())
	assert.Equal(t, 0, hub.Clients())
	assert.True(t, c.enqueue([]byte("ignored")))
}

func TestHubDeliversAccountChangesToTheirOwnerOnly(t *testing.T) {
	hub := NewHub()
	alice, _ := newTestClient(hub, "1", "a", 8)
	bob, _ := newTestClient(hub, "2", "b", 8)
	bobOtherTab, _ := newTestClient(hub, "2", "c", 8)
	hub.AttachClient(alice, nil)
	hub.AttachClient(bob, nil)
	hub.AttachClient(bobOtherTab, nil)

	hub.Broadcast(context.Background(), domain.MessageFromChange(resource.Change{
		Entity:     "user",
		Action:     resource.ActionCreated,
		ResourceID: 2,
		Data:       map[string]string{"email": "bob@example.com"},
		Audience:   2,
	}))
	hub.Broadcast(context.Background(), domain.MessageFromChange(resource.Change{Entity: "menu", Action: resource.ActionCreated, ResourceID: 3}))

	assert.Equal(t, []string{"menu.created"}, topics(drain(t, alice)))
	assert.Equal(t, []string{"user.created", "menu.created"}, topics(drain(t, bob)))
	assert.Equal(t, []string{"user.created", "menu.created"}, topics(drain(t, bobOtherTab)))
}
