package services

import (
	"context"
	"time"

	"github.com/udhe/healthintelligence/backend/internal/domain/entities"
	"github.com/udhe/healthintelligence/backend/internal/domain/repositories"
)

// topSignals caps the flagged rows embedded in the city report; the
// dedicated endpoints serve the full lists.
const topSignals = 5

// ReportService assembles the composite city operational snapshot for
// dashboards.
type ReportService struct {
	facilityRepo repositories.FacilityRepository
	statusSvc    *FacilityStatusService
	outbreakSvc  *OutbreakService
	predictions  *PredictionService
	wardRisks    *WardRiskService
}

func NewReportService(
	facilityRepo repositories.FacilityRepository,
	statusSvc *FacilityStatusService,
	outbreakSvc *OutbreakService,
	predictions *PredictionService,
	wardRisks *WardRiskService,
) *ReportService {
	return &ReportService{
		facilityRepo: facilityRepo,
		statusSvc:    statusSvc,
		outbreakSvc:  outbreakSvc,
		predictions:  predictions,
		wardRisks:    wardRisks,
	}
}

// CityReport builds the current city-wide snapshot.
func (s *ReportService) CityReport(ctx context.Context) (*entities.CityReport, error) {
	facilities, err := s.facilityRepo.List(ctx, repositories.FacilityFilter{})
	if err != nil {
		return nil, err
	}

	totals, err := s.statusSvc.Totals(ctx)
	if err != nil {
		return nil, err
	}

	outbreaks, outbreakCount, err := s.outbreakSvc.Top(ctx, topSignals)
	if err != nil {
		return nil, err
	}

	crisisCount, err := s.predictions.CrisisFacilityCount(ctx)
	if err != nil {
		return nil, err
	}

	risks, err := s.wardRisks.ScoreAllWards(ctx)
	if err != nil {
		return nil, err
	}
	if len(risks) > topSignals {
		risks = risks[:topSignals]
	}

	return &entities.CityReport{
		Timestamp:       time.Now().UTC(),
		TotalFacilities: len(facilities),
		ResourceTotals:  *totals,
		OutbreakCount:   outbreakCount,
		TopOutbreaks:    outbreaks,
		CrisisCount:     crisisCount,
		TopWardRisks:    risks,
	}, nil
}
