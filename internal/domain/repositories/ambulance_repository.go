package repositories

import (
	"context"

	"github.com/udhe/healthintelligence/backend/internal/domain/entities"
)

// AmbulanceRepository defines the interface for ambulance tracking.
type AmbulanceRepository interface {
	// Upsert creates or updates the record for a vehicle
	Upsert(ctx context.Context, ambulance *entities.Ambulance) error

	// GetByVehicleID retrieves an ambulance by vehicle identifier
	GetByVehicleID(ctx context.Context, vehicleID string) (*entities.Ambulance, error)

	// List retrieves ambulances matching the filter
	List(ctx context.Context, filter AmbulanceFilter) ([]*entities.Ambulance, error)
}

// AmbulanceFilter defines filters for listing ambulances
type AmbulanceFilter struct {
	Ward   string
	Status entities.AmbulanceStatus
	Limit  int
}
