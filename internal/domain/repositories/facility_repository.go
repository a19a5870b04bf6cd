package repositories

import (
	"context"

	"github.com/udhe/healthintelligence/backend/internal/domain/entities"
)

// FacilityRepository defines the interface for facility registry operations
type FacilityRepository interface {
	// Create registers a new facility
	Create(ctx context.Context, facility *entities.Facility) error

	// GetByFacilityID retrieves a facility by its public identifier
	GetByFacilityID(ctx context.Context, facilityID string) (*entities.Facility, error)

	// List retrieves facilities matching the filter
	List(ctx context.Context, filter FacilityFilter) ([]*entities.Facility, error)

	// ListByWard retrieves all active facilities in a ward
	ListByWard(ctx context.Context, ward string) ([]*entities.Facility, error)

	// ListWards returns the distinct wards that have registered facilities
	ListWards(ctx context.Context) ([]string, error)
}

// FacilityFilter defines filters for listing facilities
type FacilityFilter struct {
	FacilityType string
	District     string
	Ward         string
	Limit        int
	Offset       int
}
