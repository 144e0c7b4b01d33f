package domain

import (
	"strconv"
	"time"

	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/shared/resource"
)

// Message is the envelope carried between the broker and the websocket clients.
type Message struct {
	Topic      string            `json:"topic"`
	Entity     string            `json:"entity"`
	Action     string            `json:"action"`
	ResourceID string            `json:"resourceId,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	Data       any               `json:"data,omitempty"`
	Timestamp  time.Time         `json:"timestamp"`
}

// MessageFromChange converts a committed change into its notification.
func MessageFromChange(change resource.Change) *Message {
	msg := &Message{
		Topic:     EntityTopic(change.Entity, change.Action),
		Entity:    change.Entity,
		Action:    change.Action,
		Data:      change.Data,
		Timestamp: change.OccurredAt.UTC(),
	}
	if change.ResourceID != 0 {
		msg.ResourceID = strconv.FormatUint(uint64(change.ResourceID), 10)
	}
	if change.Audience != 0 {
		msg.Metadata = map[string]string{MetadataUserID: strconv.FormatUint(uint64(change.Audience), 10)}
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}
	return msg
}
