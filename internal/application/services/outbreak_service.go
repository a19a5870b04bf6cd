package services

import (
	"context"

	"github.com/udhe/healthintelligence/backend/internal/analytics"
	"github.com/udhe/healthintelligence/backend/internal/domain/entities"
	"github.com/udhe/healthintelligence/backend/internal/domain/repositories"
)

// OutbreakService runs batch spike detection over the stored indicator
// history. Detection itself is pure; this layer only feeds it
// repository reads.
type OutbreakService struct {
	indicatorRepo repositories.IndicatorRepository
	thresholds    analytics.Thresholds
}

func NewOutbreakService(indicatorRepo repositories.IndicatorRepository, thresholds analytics.Thresholds) *OutbreakService {
	return &OutbreakService{indicatorRepo: indicatorRepo, thresholds: thresholds}
}

// Detect flags (district, indicator, period) groups whose case count
// exceeds the rolling baseline. District and year narrow the scan when
// non-zero. Insufficient history yields an empty slice, never an error.
func (s *OutbreakService) Detect(ctx context.Context, district string, year int) ([]entities.Outbreak, error) {
	records, err := s.indicatorRepo.List(ctx, repositories.IndicatorFilter{
		District: district,
		Year:     year,
	})
	if err != nil {
		return nil, err
	}
	return analytics.DetectOutbreaks(records, s.thresholds), nil
}

// Top returns the highest-surge outbreaks, at most k.
func (s *OutbreakService) Top(ctx context.Context, k int) ([]entities.Outbreak, int, error) {
	outbreaks, err := s.Detect(ctx, "", 0)
	if err != nil {
		return nil, 0, err
	}
	total := len(outbreaks)
	if k > 0 && len(outbreaks) > k {
		outbreaks = outbreaks[:k]
	}
	return outbreaks, total, nil
}
