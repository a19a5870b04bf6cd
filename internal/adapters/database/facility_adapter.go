package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/udhe/healthintelligence/backend/internal/domain/entities"
	"github.com/udhe/healthintelligence/backend/internal/domain/repositories"
	"github.com/udhe/healthintelligence/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/udhe/healthintelligence/backend/pkg/errors"
)

// FacilityAdapter implements the FacilityRepository interface
type FacilityAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

var _ repositories.FacilityRepository = (*FacilityAdapter)(nil)

// NewFacilityAdapter creates a new facility adapter
func NewFacilityAdapter(client *postgres.Client) *FacilityAdapter {
	return &FacilityAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var facilityColumns = []interface{}{
	"id", "facility_id", "name", "facility_type",
	"district", "subdistrict", "ward",
	"latitude", "longitude", "is_active", "created_at",
}

// Create registers a new facility
func (a *FacilityAdapter) Create(ctx context.Context, facility *entities.Facility) error {
	record := goqu.Record{
		"id":            facility.ID,
		"facility_id":   facility.FacilityID,
		"name":          facility.Name,
		"facility_type": facility.FacilityType,
		"district":      facility.District,
		"subdistrict":   facility.Subdistrict,
		"ward":          facility.Ward,
		"latitude":      facility.Location.Latitude,
		"longitude":     facility.Location.Longitude,
		"is_active":     facility.IsActive,
		"created_at":    facility.CreatedAt,
	}

	query, args, err := a.db.Insert("facilities").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create facility", err)
	}

	return nil
}

// GetByFacilityID retrieves a facility by its public identifier
func (a *FacilityAdapter) GetByFacilityID(ctx context.Context, facilityID string) (*entities.Facility, error) {
	query, args, err := a.db.Select(facilityColumns...).From("facilities").
		Where(goqu.Ex{"facility_id": facilityID, "is_active": true}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	facility, err := a.scanFacility(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("facility %s not found", facilityID))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get facility", err)
	}

	return facility, nil
}

// List retrieves facilities with filters
func (a *FacilityAdapter) List(ctx context.Context, filter repositories.FacilityFilter) ([]*entities.Facility, error) {
	ds := a.db.Select(facilityColumns...).From("facilities").
		Where(goqu.Ex{"is_active": true})

	if filter.FacilityType != "" {
		ds = ds.Where(goqu.Ex{"facility_type": filter.FacilityType})
	}
	if filter.District != "" {
		ds = ds.Where(goqu.Ex{"district": filter.District})
	}
	if filter.Ward != "" {
		ds = ds.Where(goqu.Ex{"ward": filter.Ward})
	}

	ds = ds.Order(goqu.I("facility_id").Asc())

	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}
	if filter.Offset > 0 {
		ds = ds.Offset(uint(filter.Offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	return a.queryFacilities(ctx, query, args...)
}

// ListByWard retrieves all active facilities in a ward
func (a *FacilityAdapter) ListByWard(ctx context.Context, ward string) ([]*entities.Facility, error) {
	return a.List(ctx, repositories.FacilityFilter{Ward: ward})
}

// ListWards returns the distinct wards that have registered facilities
func (a *FacilityAdapter) ListWards(ctx context.Context) ([]string, error) {
	query, args, err := a.db.Select(goqu.DISTINCT("ward")).From("facilities").
		Where(goqu.Ex{"is_active": true}, goqu.I("ward").Neq("")).
		Order(goqu.I("ward").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list wards", err)
	}
	defer rows.Close()

	wards := []string{}
	for rows.Next() {
		var ward string
		if err := rows.Scan(&ward); err != nil {
			return nil, apperrors.NewInternalError("failed to scan ward", err)
		}
		wards = append(wards, ward)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating wards", err)
	}

	return wards, nil
}

func (a *FacilityAdapter) queryFacilities(ctx context.Context, query string, args ...interface{}) ([]*entities.Facility, error) {
	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list facilities", err)
	}
	defer rows.Close()

	facilities := []*entities.Facility{}
	for rows.Next() {
		facility, err := a.scanFacility(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan facility", err)
		}
		facilities = append(facilities, facility)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating facilities", err)
	}

	return facilities, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (a *FacilityAdapter) scanFacility(row rowScanner) (*entities.Facility, error) {
	facility := &entities.Facility{}
	err := row.Scan(
		&facility.ID,
		&facility.FacilityID,
		&facility.Name,
		&facility.FacilityType,
		&facility.District,
		&facility.Subdistrict,
		&facility.Ward,
		&facility.Location.Latitude,
		&facility.Location.Longitude,
		&facility.IsActive,
		&facility.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return facility, nil
}
