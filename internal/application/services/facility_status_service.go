package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/udhe/healthintelligence/backend/internal/domain/entities"
	"github.com/udhe/healthintelligence/backend/internal/domain/repositories"
	apperrors "github.com/udhe/healthintelligence/backend/pkg/errors"
)

// StatusSubmission is one facility status report as submitted.
type StatusSubmission struct {
	FacilityID           string `json:"facility_id"`
	BedsAvailable        int    `json:"beds_available"`
	ICUAvailable         int    `json:"icu_available"`
	VentilatorsAvailable int    `json:"ventilators_available"`
	OxygenUnitsAvailable int    `json:"oxygen_units_available"`
	MedicineStock        string `json:"medicine_stock_status"`
}

// FacilityStatusService manages append-only facility status snapshots.
type FacilityStatusService struct {
	statusRepo   repositories.StatusRepository
	facilityRepo repositories.FacilityRepository
}

func NewFacilityStatusService(statusRepo repositories.StatusRepository, facilityRepo repositories.FacilityRepository) *FacilityStatusService {
	return &FacilityStatusService{statusRepo: statusRepo, facilityRepo: facilityRepo}
}

// Report validates and appends a status snapshot for a known facility.
func (s *FacilityStatusService) Report(ctx context.Context, sub StatusSubmission) (*entities.FacilityStatus, error) {
	if strings.TrimSpace(sub.FacilityID) == "" {
		return nil, apperrors.NewValidationError("facility_id is required")
	}
	if sub.BedsAvailable < 0 || sub.ICUAvailable < 0 || sub.VentilatorsAvailable < 0 || sub.OxygenUnitsAvailable < 0 {
		return nil, apperrors.NewValidationError("resource counts must be >= 0")
	}
	stock, ok := parseStockStatus(sub.MedicineStock)
	if !ok {
		return nil, apperrors.NewValidationErrorf("unknown medicine_stock_status %q", sub.MedicineStock)
	}

	facility, err := s.facilityRepo.GetByFacilityID(ctx, strings.TrimSpace(sub.FacilityID))
	if err != nil {
		return nil, err
	}

	status := &entities.FacilityStatus{
		ID:                   uuid.New().String(),
		FacilityID:           facility.FacilityID,
		BedsAvailable:        sub.BedsAvailable,
		ICUAvailable:         sub.ICUAvailable,
		VentilatorsAvailable: sub.VentilatorsAvailable,
		OxygenUnitsAvailable: sub.OxygenUnitsAvailable,
		MedicineStock:        stock,
		Timestamp:            time.Now().UTC(),
	}

	if err := s.statusRepo.Create(ctx, status); err != nil {
		return nil, err
	}
	return status, nil
}

func parseStockStatus(raw string) (entities.MedicineStockStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "adequate":
		return entities.StockAdequate, true
	case "low":
		return entities.StockLow, true
	case "critical":
		return entities.StockCritical, true
	}
	return "", false
}

// Current returns the latest snapshot for a facility.
func (s *FacilityStatusService) Current(ctx context.Context, facilityID string) (*entities.FacilityStatus, error) {
	return s.statusRepo.GetLatestByFacility(ctx, facilityID)
}

// Totals sums the latest snapshot of every reporting facility into
// city-wide resource totals.
func (s *FacilityStatusService) Totals(ctx context.Context) (*entities.ResourceTotals, error) {
	statuses, err := s.statusRepo.LatestPerFacility(ctx)
	if err != nil {
		return nil, err
	}

	totals := &entities.ResourceTotals{Facilities: len(statuses)}
	for _, status := range statuses {
		totals.TotalBeds += status.BedsAvailable
		totals.TotalICU += status.ICUAvailable
		totals.TotalVentilators += status.VentilatorsAvailable
		totals.TotalOxygenUnits += status.OxygenUnitsAvailable
	}
	return totals, nil
}
