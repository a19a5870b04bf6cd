package providers

import (
	"context"

	"github.com/udhe/healthintelligence/backend/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to
// live clinical events. The live feed is a thin collaborator: the
// signal engine publishes to it but never depends on delivery.
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.HealthEvent) error

	// Subscribe subscribes to events on a channel. The returned
	// channel is closed when ctx is cancelled; other subscribers on
	// the same channel are unaffected.
	Subscribe(ctx context.Context, channel string) (<-chan *entities.HealthEvent, error)

	// Unsubscribe tears down a channel and every local subscriber on
	// it. It is an administrative operation, not per-client cleanup;
	// individual subscribers detach by cancelling their Subscribe ctx.
	Unsubscribe(ctx context.Context, channel string) error

	// Close closes the event bus and all subscriptions
	Close() error
}

// EventChannel constants for different event streams
const (
	// EventChannelIngestion carries every ingested clinical event
	EventChannelIngestion = "events:ingested"

	// EventChannelFacilityPrefix is the prefix for facility-specific channels
	EventChannelFacilityPrefix = "facility:"

	// EventChannelWardPrefix is the prefix for ward channels
	EventChannelWardPrefix = "ward:"
)

// GetFacilityChannel returns the channel name for a specific facility
func GetFacilityChannel(facilityID string) string {
	return EventChannelFacilityPrefix + facilityID
}

// GetWardChannel returns the channel name for a specific ward
func GetWardChannel(ward string) string {
	return EventChannelWardPrefix + ward
}
