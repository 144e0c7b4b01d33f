package port

import (
	"context"

	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/realtime/domain"
)

// Broadcaster sends messages to the connected websocket clients.
type Broadcaster interface {
	Broadcast(ctx context.Context, msg *domain.Message)
}

// Publisher hands a message to its transport (broker or local hub).
type Publisher interface {
	Publish(ctx context.Context, msg *domain.Message) error
}

// TopicHandler is registered per consumed broker topic.
type TopicHandler interface {
	Topic() string
	Handle(ctx context.Context, msg *domain.Message) error
}
