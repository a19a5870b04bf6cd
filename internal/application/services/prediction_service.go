package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/udhe/healthintelligence/backend/internal/analytics"
	"github.com/udhe/healthintelligence/backend/internal/domain/entities"
	"github.com/udhe/healthintelligence/backend/internal/domain/repositories"
	apperrors "github.com/udhe/healthintelligence/backend/pkg/errors"
)

// admissionWindow is the lookback used to estimate the admission rate.
const admissionWindow = 6 * time.Hour

// PredictionService projects resource exhaustion per facility from the
// recent admission rate and the latest reported availability.
type PredictionService struct {
	eventRepo  repositories.EventRepository
	statusRepo repositories.StatusRepository
	thresholds analytics.Thresholds
	logger     zerolog.Logger
	now        func() time.Time
}

func NewPredictionService(
	eventRepo repositories.EventRepository,
	statusRepo repositories.StatusRepository,
	thresholds analytics.Thresholds,
	logger zerolog.Logger,
) *PredictionService {
	return &PredictionService{
		eventRepo:  eventRepo,
		statusRepo: statusRepo,
		thresholds: thresholds,
		logger:     logger,
		now:        time.Now,
	}
}

// ForecastBeds projects bed exhaustion for one facility.
func (s *PredictionService) ForecastBeds(ctx context.Context, facilityID string) (*entities.CapacityForecast, error) {
	return s.forecast(ctx, facilityID, analytics.ResourceBeds)
}

// ForecastICU projects ICU exhaustion for one facility. The ICU margin
// and horizon are stricter than the bed ones.
func (s *PredictionService) ForecastICU(ctx context.Context, facilityID string) (*entities.CapacityForecast, error) {
	return s.forecast(ctx, facilityID, analytics.ResourceICU)
}

// ForecastAll projects beds and ICU for every facility that has
// reported a status snapshot. Facilities whose admission read fails are
// skipped with a log line so one bad row cannot blank the dashboard.
func (s *PredictionService) ForecastAll(ctx context.Context) ([]entities.CapacityForecast, error) {
	statuses, err := s.statusRepo.LatestPerFacility(ctx)
	if err != nil {
		return nil, err
	}

	since := s.now().Add(-admissionWindow)
	forecasts := make([]entities.CapacityForecast, 0, len(statuses)*2)
	for _, status := range statuses {
		admissions, err := s.eventRepo.SumByFacilitySince(ctx, status.FacilityID, entities.TransactionCase, since)
		if err != nil {
			s.logger.Error().Err(err).Str("facility_id", status.FacilityID).Msg("admission read failed")
			continue
		}
		forecasts = append(forecasts,
			analytics.ForecastCapacity(status.FacilityID, analytics.ResourceBeds, admissions, status.BedsAvailable, s.thresholds),
			analytics.ForecastCapacity(status.FacilityID, analytics.ResourceICU, admissions, status.ICUAvailable, s.thresholds),
		)
	}
	return forecasts, nil
}

// CrisisFacilityCount counts facilities with at least one resource in
// the crisis window.
func (s *PredictionService) CrisisFacilityCount(ctx context.Context) (int, error) {
	forecasts, err := s.ForecastAll(ctx)
	if err != nil {
		return 0, err
	}
	inCrisis := map[string]bool{}
	for _, f := range forecasts {
		if f.CrisisLikely {
			inCrisis[f.FacilityID] = true
		}
	}
	return len(inCrisis), nil
}

func (s *PredictionService) forecast(ctx context.Context, facilityID, resource string) (*entities.CapacityForecast, error) {
	status, err := s.statusRepo.GetLatestByFacility(ctx, facilityID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewNotFoundError("no status reported for facility "+facilityID)
		}
		return nil, err
	}

	admissions, err := s.eventRepo.SumByFacilitySince(ctx, facilityID, entities.TransactionCase, s.now().Add(-admissionWindow))
	if err != nil {
		return nil, err
	}

	available := status.BedsAvailable
	if resource == analytics.ResourceICU {
		available = status.ICUAvailable
	}

	forecast := analytics.ForecastCapacity(facilityID, resource, admissions, available, s.thresholds)
	return &forecast, nil
}
