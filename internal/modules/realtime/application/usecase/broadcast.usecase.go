package usecase

import (
	"context"

	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/realtime/application/port"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/realtime/domain"
)

type BroadcastUseCase struct {
	broadcaster port.Broadcaster
}

func NewBroadcastUseCase(b port.Broadcaster) *BroadcastUseCase {
	return &BroadcastUseCase{broadcaster: b}
}

func (uc *BroadcastUseCase) Execute(ctx context.Context, msg *domain.Message) {
	uc.broadcaster.Broadcast(ctx, msg)
}

// Publish makes the use case a local port.Publisher when no broker is configured.
func (uc *BroadcastUseCase) Publish(ctx context.Context, msg *domain.Message) error {
	uc.Execute(ctx, msg)
	return nil
}
