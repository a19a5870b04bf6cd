package entities

import "time"

// MedicineStockStatus is the reported medicine stock level.
type MedicineStockStatus string

const (
	StockAdequate MedicineStockStatus = "Adequate"
	StockLow      MedicineStockStatus = "Low"
	StockCritical MedicineStockStatus = "Critical"
)

// ValidStockStatus reports whether s is one of the defined stock levels.
func ValidStockStatus(s MedicineStockStatus) bool {
	switch s {
	case StockAdequate, StockLow, StockCritical:
		return true
	}
	return false
}

// FacilityStatus is a point-in-time resource snapshot for a facility.
// Facilities report many snapshots over time; the current status is the
// most recent snapshot by timestamp.
type FacilityStatus struct {
	ID                   string              `json:"id" db:"id"`
	FacilityID           string              `json:"facility_id" db:"facility_id"`
	BedsAvailable        int                 `json:"beds_available" db:"beds_available"`
	ICUAvailable         int                 `json:"icu_available" db:"icu_available"`
	VentilatorsAvailable int                 `json:"ventilators_available" db:"ventilators_available"`
	OxygenUnitsAvailable int                 `json:"oxygen_units_available" db:"oxygen_units_available"`
	MedicineStock        MedicineStockStatus `json:"medicine_stock_status" db:"medicine_stock_status"`
	Timestamp            time.Time           `json:"timestamp" db:"timestamp"`
}

// ResourceTotals is the city-wide sum of currently reported resources.
type ResourceTotals struct {
	TotalBeds        int `json:"total_beds"`
	TotalICU         int `json:"total_icu"`
	TotalVentilators int `json:"total_ventilators"`
	TotalOxygenUnits int `json:"total_oxygen_units"`
	Facilities       int `json:"facilities"`
}
