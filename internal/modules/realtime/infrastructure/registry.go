package infrastructure

import (
	"context"

	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/realtime/application/port"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/realtime/domain"
)

type HandlerRegistry struct {
	handlers map[string]port.TopicHandler
}

func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{handlers: make(map[string]port.TopicHandler)}
}

func (r *HandlerRegistry) Register(h port.TopicHandler) {
	r.handlers[h.Topic()] = h
}

// Topics lists the registered broker topics.
func (r *HandlerRegistry) Topics() []string {
	topics := make([]string, 0, len(r.handlers))
	for topic := range r.handlers {
		topics = append(topics, topic)
	}
	return topics
}

// Dispatch routes msg to the handler of brokerTopic; unknown topics are ignored.
func (r *HandlerRegistry) Dispatch(ctx context.Context, brokerTopic string, msg *domain.Message) error {
	if handler, ok := r.handlers[brokerTopic]; ok {
		return handler.Handle(ctx, msg)
	}
	return nil
}
