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

// assumedICUPerFacility stands in for licensed ICU capacity, which
// facilities do not report. Pressure is measured against this fixed
// bar until the registry carries real capacity numbers.
const assumedICUPerFacility = 20

// WardRiskService computes composite risk scores per ward from recent
// case load, short-term growth and ICU pressure.
type WardRiskService struct {
	facilityRepo repositories.FacilityRepository
	eventRepo    repositories.EventRepository
	statusRepo   repositories.StatusRepository
	thresholds   analytics.Thresholds
	logger       zerolog.Logger
	now          func() time.Time
}

func NewWardRiskService(
	facilityRepo repositories.FacilityRepository,
	eventRepo repositories.EventRepository,
	statusRepo repositories.StatusRepository,
	thresholds analytics.Thresholds,
	logger zerolog.Logger,
) *WardRiskService {
	return &WardRiskService{
		facilityRepo: facilityRepo,
		eventRepo:    eventRepo,
		statusRepo:   statusRepo,
		thresholds:   thresholds,
		logger:       logger,
		now:          time.Now,
	}
}

// ScoreWard scores a single ward. Unknown wards are a not-found error.
func (s *WardRiskService) ScoreWard(ctx context.Context, ward string) (*entities.WardRisk, error) {
	facilities, err := s.facilityRepo.ListByWard(ctx, ward)
	if err != nil {
		return nil, err
	}
	if len(facilities) == 0 {
		return nil, apperrors.NewNotFoundError("no facilities registered in ward "+ward)
	}

	latest, err := s.latestStatusByFacility(ctx)
	if err != nil {
		return nil, err
	}

	risk, err := s.score(ctx, ward, facilities, latest)
	if err != nil {
		return nil, err
	}
	return &risk, nil
}

// ScoreAllWards scores every ward with registered facilities, highest
// risk first.
func (s *WardRiskService) ScoreAllWards(ctx context.Context) ([]entities.WardRisk, error) {
	wards, err := s.facilityRepo.ListWards(ctx)
	if err != nil {
		return nil, err
	}

	latest, err := s.latestStatusByFacility(ctx)
	if err != nil {
		return nil, err
	}

	risks := make([]entities.WardRisk, 0, len(wards))
	for _, ward := range wards {
		facilities, err := s.facilityRepo.ListByWard(ctx, ward)
		if err != nil {
			return nil, err
		}
		risk, err := s.score(ctx, ward, facilities, latest)
		if err != nil {
			s.logger.Error().Err(err).Str("ward", ward).Msg("ward scoring failed")
			continue
		}
		risks = append(risks, risk)
	}

	analytics.RankWardRisks(risks)
	return risks, nil
}

// CriticalWards returns the wards at HIGH or CRITICAL level, highest
// risk first.
func (s *WardRiskService) CriticalWards(ctx context.Context) ([]entities.WardRisk, error) {
	risks, err := s.ScoreAllWards(ctx)
	if err != nil {
		return nil, err
	}
	critical := make([]entities.WardRisk, 0, len(risks))
	for _, r := range risks {
		if r.RiskLevel == entities.RiskHigh || r.RiskLevel == entities.RiskCritical {
			critical = append(critical, r)
		}
	}
	return critical, nil
}

func (s *WardRiskService) score(ctx context.Context, ward string, facilities []*entities.Facility, latest map[string]*entities.FacilityStatus) (entities.WardRisk, error) {
	now := s.now()

	cases24h, err := s.eventRepo.SumByWardSince(ctx, ward, entities.TransactionCase, now.Add(-24*time.Hour))
	if err != nil {
		return entities.WardRisk{}, err
	}
	cases6h, err := s.eventRepo.SumByWardSince(ctx, ward, entities.TransactionCase, now.Add(-6*time.Hour))
	if err != nil {
		return entities.WardRisk{}, err
	}

	// Assumed capacity accrues only for facilities that have reported a
	// status; a silent facility contributes neither capacity nor
	// occupancy to the pressure ratio.
	icuCapacity := 0
	icuAvailable := 0
	for _, f := range facilities {
		if status, ok := latest[f.FacilityID]; ok {
			icuCapacity += assumedICUPerFacility
			icuAvailable += status.ICUAvailable
		}
	}

	return analytics.ComputeWardRisk(ward, cases24h, cases6h, icuCapacity, icuAvailable, s.thresholds), nil
}

func (s *WardRiskService) latestStatusByFacility(ctx context.Context) (map[string]*entities.FacilityStatus, error) {
	statuses, err := s.statusRepo.LatestPerFacility(ctx)
	if err != nil {
		return nil, err
	}
	latest := make(map[string]*entities.FacilityStatus, len(statuses))
	for _, status := range statuses {
		latest[status.FacilityID] = status
	}
	return latest, nil
}
