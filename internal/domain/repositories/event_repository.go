package repositories

import (
	"context"
	"time"

	"github.com/udhe/healthintelligence/backend/internal/domain/entities"
)

// EventRepository defines the interface for clinical event operations.
// The event stream is append-only; the signal engine only reads it
// through bounded queries (a count, a time window, or a row limit).
type EventRepository interface {
	// Create appends a clinical event
	Create(ctx context.Context, event *entities.HealthEvent) error

	// SumByFacilitySince returns the weighted event count for a facility
	// and transaction kind from the cutoff onward
	SumByFacilitySince(ctx context.Context, facilityID string, kind entities.TransactionKind, since time.Time) (int, error)

	// SumByWardSince returns the weighted event count across a ward's
	// facilities for a transaction kind from the cutoff onward
	SumByWardSince(ctx context.Context, ward string, kind entities.TransactionKind, since time.Time) (int, error)

	// ListRecent returns the newest events, newest first, up to limit
	ListRecent(ctx context.Context, limit int) ([]*entities.HealthEvent, error)
}

// DeadLetterRepository stores raw payloads that failed validation so
// they can be replayed after correction instead of corrupting baselines.
type DeadLetterRepository interface {
	// Create stores a rejected payload with the rejection reason
	Create(ctx context.Context, source string, payload []byte, reason string) error
}
