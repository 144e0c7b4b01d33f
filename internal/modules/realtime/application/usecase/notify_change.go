package usecase

import (
	"context"
	"fmt"

	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/realtime/application/port"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/realtime/domain"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/shared/resource"
)

// NotifyChangeUseCase turns committed entity changes into realtime messages.
type NotifyChangeUseCase struct {
	publisher port.Publisher
}

func NewNotifyChangeUseCase(p port.Publisher) *NotifyChangeUseCase {
	return &NotifyChangeUseCase{publisher: p}
}

// PublishChange implements resource.ChangePublisher.
func (uc *NotifyChangeUseCase) PublishChange(ctx context.Context, change resource.Change) error {
	msg := domain.MessageFromChange(change)
	if msg.Topic == "" {
		return fmt.Errorf("change without entity or action: %+v", change)
	}
	if err := uc.publisher.Publish(ctx, msg); err != nil {
		return fmt.Errorf("publish %s: %w", msg.Topic, err)
	}
	return nil
}

var _ resource.ChangePublisher = (*NotifyChangeUseCase)(nil)
