package handler

import (
	"context"
	"strings"

	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/realtime/application/port"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/realtime/application/usecase"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/realtime/domain"
)

// EntityStreamHandler forwards the events of one broker topic to the websocket clients.
// When allowedActions is not empty, other actions are dropped.
type EntityStreamHandler struct {
	entity         string
	brokerTopic    string
	allowedActions map[string]struct{}
	broadcastUC    *usecase.BroadcastUseCase
}

func NewEntityStreamHandler(entity, brokerTopic string, allowedActions []string, broadcastUC *usecase.BroadcastUseCase) *EntityStreamHandler {
	actionSet := make(map[string]struct{}, len(allowedActions))
	for _, a := range allowedActions {
		if v := strings.TrimSpace(strings.ToLower(a)); v != "" {
			actionSet[v] = struct{}{}
		}
	}
	return &EntityStreamHandler{
		entity:         strings.TrimSpace(entity),
		brokerTopic:    brokerTopic,
		allowedActions: actionSet,
		broadcastUC:    broadcastUC,
	}
}

func (h *EntityStreamHandler) Topic() string { return h.brokerTopic }

func (h *EntityStreamHandler) Handle(ctx context.Context, msg *domain.Message) error {
	if len(h.allowedActions) > 0 {
		if _, ok := h.allowedActions[strings.ToLower(msg.Action)]; !ok {
			return nil
		}
	}
	if msg.Entity == "" {
		msg.Entity = h.entity
	}
	if msg.Topic == "" {
		msg.Topic = domain.EntityTopic(msg.Entity, msg.Action)
	}
	h.broadcastUC.Execute(ctx, msg)
	return nil
}

var _ port.TopicHandler = (*EntityStreamHandler)(nil)
