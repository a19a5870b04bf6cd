package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/udhe/healthintelligence/backend/internal/domain/entities"
	"github.com/udhe/healthintelligence/backend/internal/domain/repositories"
	"github.com/udhe/healthintelligence/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/udhe/healthintelligence/backend/pkg/errors"
)

// StatusAdapter implements the StatusRepository interface over the
// append-only facility_statuses table.
type StatusAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

var _ repositories.StatusRepository = (*StatusAdapter)(nil)

// NewStatusAdapter creates a new status adapter
func NewStatusAdapter(client *postgres.Client) *StatusAdapter {
	return &StatusAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var statusColumns = []interface{}{
	"id", "facility_id", "beds_available", "icu_available",
	"ventilators_available", "oxygen_units_available",
	"medicine_stock_status", "timestamp",
}

// Create appends a status snapshot
func (a *StatusAdapter) Create(ctx context.Context, status *entities.FacilityStatus) error {
	record := goqu.Record{
		"id":                     status.ID,
		"facility_id":            status.FacilityID,
		"beds_available":         status.BedsAvailable,
		"icu_available":          status.ICUAvailable,
		"ventilators_available":  status.VentilatorsAvailable,
		"oxygen_units_available": status.OxygenUnitsAvailable,
		"medicine_stock_status":  string(status.MedicineStock),
		"timestamp":              status.Timestamp,
	}

	query, args, err := a.db.Insert("facility_statuses").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create facility status", err)
	}

	return nil
}

// GetLatestByFacility returns the most recent snapshot for a facility
func (a *StatusAdapter) GetLatestByFacility(ctx context.Context, facilityID string) (*entities.FacilityStatus, error) {
	query, args, err := a.db.Select(statusColumns...).From("facility_statuses").
		Where(goqu.Ex{"facility_id": facilityID}).
		Order(goqu.I("timestamp").Desc(), goqu.I("id").Desc()).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	status, err := a.scanStatus(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no status reported for facility %s", facilityID))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get facility status", err)
	}

	return status, nil
}

// LatestPerFacility returns the most recent snapshot of every facility
// that has reported at least once
func (a *StatusAdapter) LatestPerFacility(ctx context.Context) ([]*entities.FacilityStatus, error) {
	// DISTINCT ON keeps the newest row per facility.
	query := `
		SELECT DISTINCT ON (facility_id)
			id, facility_id, beds_available, icu_available,
			ventilators_available, oxygen_units_available,
			medicine_stock_status, timestamp
		FROM facility_statuses
		ORDER BY facility_id, timestamp DESC, id DESC
	`

	rows, err := a.client.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list facility statuses", err)
	}
	defer rows.Close()

	statuses := []*entities.FacilityStatus{}
	for rows.Next() {
		status, err := a.scanStatus(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan facility status", err)
		}
		statuses = append(statuses, status)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating facility statuses", err)
	}

	return statuses, nil
}

func (a *StatusAdapter) scanStatus(row rowScanner) (*entities.FacilityStatus, error) {
	status := &entities.FacilityStatus{}
	var stock string
	err := row.Scan(
		&status.ID,
		&status.FacilityID,
		&status.BedsAvailable,
		&status.ICUAvailable,
		&status.VentilatorsAvailable,
		&status.OxygenUnitsAvailable,
		&stock,
		&status.Timestamp,
	)
	if err != nil {
		return nil, err
	}
	status.MedicineStock = entities.MedicineStockStatus(stock)
	return status, nil
}
