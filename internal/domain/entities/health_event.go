package entities

import "time"

// TransactionKind distinguishes the two clinical event streams.
type TransactionKind string

const (
	TransactionCase        TransactionKind = "CASE"
	TransactionVaccination TransactionKind = "VACCINATION"
)

// HealthEvent is the canonical clinical event: one row per transaction,
// weighted by Count. An individual patient visit carries Count 1; bulk
// backfills may carry larger weights. Both regimes reduce to the same
// aggregation path downstream.
type HealthEvent struct {
	ID         string          `json:"id" db:"id"`
	FacilityID string          `json:"facility_id" db:"facility_id"`
	Kind       TransactionKind `json:"transaction_type" db:"transaction_type"`
	Department string          `json:"department" db:"department"`
	// Indicator is the canonical indicator name; normalization happens
	// at ingestion, before the event is persisted.
	Indicator string    `json:"indicator_name" db:"indicator_name"`
	Count     int       `json:"count" db:"count"`
	Month     string    `json:"month" db:"month"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
}
