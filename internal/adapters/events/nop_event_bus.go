package events

import (
	"context"

	"github.com/udhe/healthintelligence/backend/internal/domain/entities"
	"github.com/udhe/healthintelligence/backend/internal/domain/providers"
)

// NopEventBus discards publishes and returns channels that never fire.
// Used when Redis is unavailable so the ingest path keeps working
// without the live feeds.
type NopEventBus struct{}

// NewNopEventBus creates a no-op event bus
func NewNopEventBus() providers.EventBus {
	return &NopEventBus{}
}

func (b *NopEventBus) Publish(_ context.Context, _ string, _ *entities.HealthEvent) error {
	return nil
}

func (b *NopEventBus) Subscribe(ctx context.Context, _ string) (<-chan *entities.HealthEvent, error) {
	ch := make(chan *entities.HealthEvent)
	go func() {
		<-ctx.Done()
		close(ch)
	}()
	return ch, nil
}

func (b *NopEventBus) Unsubscribe(_ context.Context, _ string) error { return nil }

func (b *NopEventBus) Close() error { return nil }
