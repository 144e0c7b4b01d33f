package broker

import (
	"context"
	"sync"

	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/realtime/domain"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/realtime/infrastructure"
)

// StartKafkaConsumers starts one consumer per topic and returns a wait function that blocks
// until every consumer stopped after ctx is cancelled. groupID must be unique to the instance.
func StartKafkaConsumers(
	ctx context.Context,
	registry *infrastructure.HandlerRegistry,
	brokers []string,
	groupID string,
	topics []string,
) (wait func()) {
	var wg sync.WaitGroup
	if len(brokers) == 0 {
		// kafka.NewReader requires at least one broker.
		return wg.Wait
	}
	for _, topic := range topics {
		wg.Add(1)
		go func(tp string) {
			defer wg.Done()
			consumer := NewKafkaConsumer(brokers, groupID, tp)
			_ = consumer.Consume(ctx, func(brokerTopic string, msg *domain.Message) error {
				return registry.Dispatch(ctx, brokerTopic, msg)
			})
		}(topic)
	}
	return wg.Wait
}
