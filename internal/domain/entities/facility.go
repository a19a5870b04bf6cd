package entities

import "time"

// Facility represents a reporting health facility registered with the
// municipal authority. Geography follows the administrative hierarchy:
// district contains subdistricts, and a ward groups one or more facilities.
type Facility struct {
	ID           string    `json:"id" db:"id"`
	FacilityID   string    `json:"facility_id" db:"facility_id"`
	Name         string    `json:"name" db:"name"`
	FacilityType string    `json:"facility_type" db:"facility_type"`
	District     string    `json:"district" db:"district"`
	Subdistrict  string    `json:"subdistrict" db:"subdistrict"`
	Ward         string    `json:"ward" db:"ward"`
	Location     Location  `json:"location" db:"-"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Location represents geographical coordinates
type Location struct {
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`
}

// Facility types known to the platform.
const (
	FacilityTypeHospital = "Hospital"
	FacilityTypePHC      = "PHC"
	FacilityTypeLab      = "Lab"
	FacilityTypePrivate  = "Private"
)
