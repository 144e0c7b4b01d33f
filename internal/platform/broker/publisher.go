package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/realtime/domain"
	"github.com/segmentio/kafka-go"
)

// Writer is the subset of *kafka.Writer used by KafkaPublisher.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

const defaultPublishTimeout = 2 * time.Second

// KafkaPublisher writes realtime messages to "<prefix><entity>.<action>" topics.
// Each write is bounded by timeout, independently of the caller's context.
type KafkaPublisher struct {
	writer  Writer
	prefix  string
	timeout time.Duration
}

func NewKafkaPublisher(brokers []string, prefix string, timeout time.Duration) *KafkaPublisher {
	if timeout <= 0 {
		timeout = defaultPublishTimeout
	}
	return NewKafkaPublisherWithWriter(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		WriteTimeout:           timeout,
		MaxAttempts:            3,
		AllowAutoTopicCreation: true,
	}, prefix, timeout)
}

func NewKafkaPublisherWithWriter(w Writer, prefix string, timeout time.Duration) *KafkaPublisher {
	if timeout <= 0 {
		timeout = defaultPublishTimeout
	}
	return &KafkaPublisher{writer: w, prefix: prefix, timeout: timeout}
}

// TopicFor returns the broker topic of an entity action.
func (p *KafkaPublisher) TopicFor(entity, action string) string {
	return TopicName(p.prefix, entity, action)
}

// TopicName joins prefix and the entity topic.
func TopicName(prefix, entity, action string) string {
	return prefix + domain.EntityTopic(entity, action)
}

func (p *KafkaPublisher) Publish(ctx context.Context, msg *domain.Message) error {
	value, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Topic: p.TopicFor(msg.Entity, msg.Action),
		Key:   []byte(msg.Entity + ":" + msg.ResourceID),
		Value: value,
		Time:  msg.Timestamp,
	})
	if err != nil {
		return fmt.Errorf("write kafka message: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
