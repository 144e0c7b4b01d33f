package infrastructure

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/realtime/domain"
)

type Command struct {
	Action string `json:"action"`
	Topic  string `json:"topic,omitempty"`
}

func (c Command) actionKey() string {
	return normalizeAction(c.Action)
}

type CommandHandler func(ctx context.Context, client *Client, cmd Command)

type CommandProcessor struct {
	hub      *Hub
	handlers map[string]CommandHandler
}

func NewCommandProcessor(hub *Hub) *CommandProcessor {
	processor := &CommandProcessor{
		hub:      hub,
		handlers: make(map[string]CommandHandler),
	}
	processor.Register(domain.CommandSubscribe, processor.handleSubscribe)
	processor.Register(domain.CommandUnsubscribe, processor.handleUnsubscribe)
	processor.Register(domain.CommandPing, processor.handlePing)
	return processor
}

func (p *CommandProcessor) Register(action string, handler CommandHandler) {
	if handler == nil {
		return
	}
	key := normalizeAction(action)
	if key == "" {
		return
	}
	p.handlers[key] = handler
}

func (p *CommandProcessor) Process(client *Client, cmd Command) {
	if client == nil {
		return
	}

	action := cmd.actionKey()
	if action == "" {
		return
	}

	handler, ok := p.handlers[action]
	if !ok {
		slog.Debug("ws command ignored", slog.String("userId", client.userID), slog.String("sessionId", client.sessionID), slog.String("action", action))
		client.SendDomainMessage(&domain.Message{
			Topic:     domain.TopicSystemError,
			Entity:    domain.SystemEntity,
			Action:    domain.ActionError,
			Data:      map[string]string{"reason": "unknown action " + action},
			Timestamp: time.Now().UTC(),
		})
		return
	}
	handler(context.Background(), client, cmd)
}

func (p *CommandProcessor) handleSubscribe(_ context.Context, client *Client, cmd Command) {
	topic := strings.TrimSpace(cmd.Topic)
	if topic == "" {
		slog.Debug("ws subscribe ignored empty topic", slog.String("userId", client.userID), slog.String("sessionId", client.sessionID))
		return
	}
	p.hub.subscribe(client, topic)
	slog.Debug("ws subscribe", slog.String("userId", client.userID), slog.String("sessionId", client.sessionID), slog.String("topic", topic))
}

func (p *CommandProcessor) handleUnsubscribe(_ context.Context, client *Client, cmd Command) {
	topic := strings.TrimSpace(cmd.Topic)
	if topic == "" {
		return
	}
	p.hub.unsubscribe(client, topic)
}

func (p *CommandProcessor) handlePing(_ context.Context, client *Client, _ Command) {
	ack := domain.Message{
		Topic:     domain.TopicSystemPong,
		Entity:    domain.SystemEntity,
		Action:    domain.ActionPong,
		Timestamp: time.Now().UTC(),
	}
	client.SendDomainMessage(&ack)
}

func normalizeAction(action string) string {
	return strings.ToLower(strings.TrimSpace(action))
}
