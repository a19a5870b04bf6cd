package repositories

import (
	"context"

	"github.com/udhe/healthintelligence/backend/internal/domain/entities"
)

// StatusRepository defines the interface for facility status snapshots.
// Snapshots are append-only; "current" status is the latest by timestamp.
type StatusRepository interface {
	// Create appends a status snapshot
	Create(ctx context.Context, status *entities.FacilityStatus) error

	// GetLatestByFacility returns the most recent snapshot for a facility
	GetLatestByFacility(ctx context.Context, facilityID string) (*entities.FacilityStatus, error)

	// LatestPerFacility returns the most recent snapshot of every
	// facility that has reported at least once
	LatestPerFacility(ctx context.Context) ([]*entities.FacilityStatus, error)
}
