package repositories

import (
	"context"

	"github.com/udhe/healthintelligence/backend/internal/domain/entities"
)

// IndicatorRepository defines the interface for periodic aggregate
// indicator report rows. Rows are immutable once written.
type IndicatorRepository interface {
	// Create stores an indicator report row
	Create(ctx context.Context, record *entities.IndicatorRecord) error

	// List retrieves records matching the filter, ordered by
	// (district, indicator, period) ascending
	List(ctx context.Context, filter IndicatorFilter) ([]*entities.IndicatorRecord, error)

	// ListRecentByIndicator returns the newest records for a canonical
	// indicator name, newest first, up to limit
	ListRecentByIndicator(ctx context.Context, indicator string, limit int) ([]*entities.IndicatorRecord, error)
}

// IndicatorFilter defines filters for listing indicator records
type IndicatorFilter struct {
	District  string
	Indicator string
	// CodeSectionPrefixes restricts to reporting-format sections,
	// e.g. the maternal sections M1..M4
	CodeSectionPrefixes []string
	Year                int
	Limit               int
}
