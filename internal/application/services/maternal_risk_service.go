package services

import (
	"context"

	"github.com/udhe/healthintelligence/backend/internal/analytics"
	"github.com/udhe/healthintelligence/backend/internal/domain/entities"
	"github.com/udhe/healthintelligence/backend/internal/domain/repositories"
)

// MaternalRiskService ranks districts by maternal risk from the
// maternal reporting sections.
type MaternalRiskService struct {
	indicatorRepo repositories.IndicatorRepository
}

func NewMaternalRiskService(indicatorRepo repositories.IndicatorRepository) *MaternalRiskService {
	return &MaternalRiskService{indicatorRepo: indicatorRepo}
}

// Rank scores every district that reported maternal-section rows,
// highest risk first. Districts with no recorded pregnancies are
// excluded rather than scored against a zero denominator.
func (s *MaternalRiskService) Rank(ctx context.Context, year int) ([]entities.MaternalRisk, error) {
	records, err := s.indicatorRepo.List(ctx, repositories.IndicatorFilter{
		CodeSectionPrefixes: analytics.MaternalSectionPrefixes,
		Year:                year,
	})
	if err != nil {
		return nil, err
	}
	return analytics.ScoreMaternalRisk(records), nil
}
