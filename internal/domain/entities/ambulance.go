package entities

import "time"

// AmbulanceStatus is the operational state of a vehicle.
type AmbulanceStatus string

const (
	AmbulanceAvailable AmbulanceStatus = "AVAILABLE"
	AmbulanceBusy      AmbulanceStatus = "BUSY"
	AmbulanceOffline   AmbulanceStatus = "OFFLINE"
)

// ValidAmbulanceStatus reports whether s is one of the defined states.
func ValidAmbulanceStatus(s AmbulanceStatus) bool {
	switch s {
	case AmbulanceAvailable, AmbulanceBusy, AmbulanceOffline:
		return true
	}
	return false
}

// Ambulance tracks a municipal ambulance's position and availability.
type Ambulance struct {
	ID          string          `json:"id" db:"id"`
	VehicleID   string          `json:"vehicle_id" db:"vehicle_id"`
	Ward        string          `json:"ward" db:"ward"`
	Status      AmbulanceStatus `json:"status" db:"status"`
	Location    Location        `json:"location" db:"-"`
	LastUpdated time.Time       `json:"last_updated" db:"last_updated"`
}

// AmbulanceDistance pairs an ambulance with its distance from a query point.
type AmbulanceDistance struct {
	Ambulance  *Ambulance `json:"ambulance"`
	DistanceKm float64    `json:"distance_km"`
}
