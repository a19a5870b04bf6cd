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

// AmbulanceAdapter implements the AmbulanceRepository interface
type AmbulanceAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

var _ repositories.AmbulanceRepository = (*AmbulanceAdapter)(nil)

// NewAmbulanceAdapter creates a new ambulance adapter
func NewAmbulanceAdapter(client *postgres.Client) *AmbulanceAdapter {
	return &AmbulanceAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var ambulanceColumns = []interface{}{
	"id", "vehicle_id", "ward", "status",
	"latitude", "longitude", "last_updated",
}

// Upsert creates or updates the record for a vehicle
func (a *AmbulanceAdapter) Upsert(ctx context.Context, ambulance *entities.Ambulance) error {
	record := goqu.Record{
		"id":           ambulance.ID,
		"vehicle_id":   ambulance.VehicleID,
		"ward":         ambulance.Ward,
		"status":       string(ambulance.Status),
		"latitude":     ambulance.Location.Latitude,
		"longitude":    ambulance.Location.Longitude,
		"last_updated": ambulance.LastUpdated,
	}

	query, args, err := a.db.Insert("ambulances").Rows(record).
		OnConflict(goqu.DoUpdate("vehicle_id", goqu.Record{
			"ward":         ambulance.Ward,
			"status":       string(ambulance.Status),
			"latitude":     ambulance.Location.Latitude,
			"longitude":    ambulance.Location.Longitude,
			"last_updated": ambulance.LastUpdated,
		})).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build upsert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to upsert ambulance", err)
	}

	return nil
}

// GetByVehicleID retrieves an ambulance by vehicle identifier
func (a *AmbulanceAdapter) GetByVehicleID(ctx context.Context, vehicleID string) (*entities.Ambulance, error) {
	query, args, err := a.db.Select(ambulanceColumns...).From("ambulances").
		Where(goqu.Ex{"vehicle_id": vehicleID}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	ambulance, err := a.scanAmbulance(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("ambulance %s not found", vehicleID))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get ambulance", err)
	}

	return ambulance, nil
}

// List retrieves ambulances matching the filter
func (a *AmbulanceAdapter) List(ctx context.Context, filter repositories.AmbulanceFilter) ([]*entities.Ambulance, error) {
	ds := a.db.Select(ambulanceColumns...).From("ambulances")

	if filter.Ward != "" {
		ds = ds.Where(goqu.Ex{"ward": filter.Ward})
	}
	if filter.Status != "" {
		ds = ds.Where(goqu.Ex{"status": string(filter.Status)})
	}

	ds = ds.Order(goqu.I("vehicle_id").Asc())

	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list ambulances", err)
	}
	defer rows.Close()

	ambulances := []*entities.Ambulance{}
	for rows.Next() {
		ambulance, err := a.scanAmbulance(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan ambulance", err)
		}
		ambulances = append(ambulances, ambulance)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating ambulances", err)
	}

	return ambulances, nil
}

func (a *AmbulanceAdapter) scanAmbulance(row rowScanner) (*entities.Ambulance, error) {
	ambulance := &entities.Ambulance{}
	var status string
	err := row.Scan(
		&ambulance.ID,
		&ambulance.VehicleID,
		&ambulance.Ward,
		&status,
		&ambulance.Location.Latitude,
		&ambulance.Location.Longitude,
		&ambulance.LastUpdated,
	)
	if err != nil {
		return nil, err
	}
	ambulance.Status = entities.AmbulanceStatus(status)
	return ambulance, nil
}
