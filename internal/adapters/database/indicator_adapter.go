package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"

	"github.com/udhe/healthintelligence/backend/internal/domain/entities"
	"github.com/udhe/healthintelligence/backend/internal/domain/repositories"
	"github.com/udhe/healthintelligence/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/udhe/healthintelligence/backend/pkg/errors"
)

// IndicatorAdapter implements the IndicatorRepository interface over
// the immutable indicator_records table.
type IndicatorAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

var _ repositories.IndicatorRepository = (*IndicatorAdapter)(nil)

// NewIndicatorAdapter creates a new indicator adapter
func NewIndicatorAdapter(client *postgres.Client) *IndicatorAdapter {
	return &IndicatorAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var indicatorColumns = []interface{}{
	"id", "district", "subdistrict", "ward",
	"raw_indicator_name", "indicator_name", "code_section",
	"total_cases", "period", "year", "timestamp",
}

// Create stores an indicator report row
func (a *IndicatorAdapter) Create(ctx context.Context, record *entities.IndicatorRecord) error {
	row := goqu.Record{
		"id":                 record.ID,
		"district":           record.District,
		"subdistrict":        record.Subdistrict,
		"ward":               record.Ward,
		"raw_indicator_name": record.RawIndicator,
		"indicator_name":     record.Indicator,
		"code_section":       record.CodeSection,
		"total_cases":        record.TotalCases,
		"period":             record.Period,
		"year":               record.Year,
		"timestamp":          record.Timestamp,
	}

	query, args, err := a.db.Insert("indicator_records").Rows(row).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create indicator record", err)
	}

	return nil
}

// List retrieves records matching the filter, ordered by
// (district, indicator, period) ascending
func (a *IndicatorAdapter) List(ctx context.Context, filter repositories.IndicatorFilter) ([]*entities.IndicatorRecord, error) {
	ds := a.db.Select(indicatorColumns...).From("indicator_records")

	if filter.District != "" {
		ds = ds.Where(goqu.Ex{"district": filter.District})
	}
	if filter.Indicator != "" {
		ds = ds.Where(goqu.Ex{"indicator_name": filter.Indicator})
	}
	if filter.Year != 0 {
		ds = ds.Where(goqu.Ex{"year": filter.Year})
	}
	if len(filter.CodeSectionPrefixes) > 0 {
		prefixes := make([]goqu.Expression, 0, len(filter.CodeSectionPrefixes))
		for _, p := range filter.CodeSectionPrefixes {
			prefixes = append(prefixes, goqu.I("code_section").Like(p+"%"))
		}
		ds = ds.Where(goqu.Or(prefixes...))
	}

	ds = ds.Order(
		goqu.I("district").Asc(),
		goqu.I("indicator_name").Asc(),
		goqu.I("period").Asc(),
	)

	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	return a.queryRecords(ctx, query, args...)
}

// ListRecentByIndicator returns the newest records for a canonical
// indicator name, newest first, up to limit
func (a *IndicatorAdapter) ListRecentByIndicator(ctx context.Context, indicator string, limit int) ([]*entities.IndicatorRecord, error) {
	if limit <= 0 {
		return []*entities.IndicatorRecord{}, nil
	}

	query, args, err := a.db.Select(indicatorColumns...).From("indicator_records").
		Where(goqu.Ex{"indicator_name": indicator}).
		Order(goqu.I("timestamp").Desc(), goqu.I("id").Desc()).
		Limit(uint(limit)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	return a.queryRecords(ctx, query, args...)
}

func (a *IndicatorAdapter) queryRecords(ctx context.Context, query string, args ...interface{}) ([]*entities.IndicatorRecord, error) {
	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list indicator records", err)
	}
	defer rows.Close()

	records := []*entities.IndicatorRecord{}
	for rows.Next() {
		record := &entities.IndicatorRecord{}
		err := rows.Scan(
			&record.ID,
			&record.District,
			&record.Subdistrict,
			&record.Ward,
			&record.RawIndicator,
			&record.Indicator,
			&record.CodeSection,
			&record.TotalCases,
			&record.Period,
			&record.Year,
			&record.Timestamp,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan indicator record", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating indicator records", err)
	}

	return records, nil
}
