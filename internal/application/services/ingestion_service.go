package services

import (
	"context"
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/udhe/healthintelligence/backend/internal/analytics"
	"github.com/udhe/healthintelligence/backend/internal/domain/entities"
	"github.com/udhe/healthintelligence/backend/internal/domain/providers"
	"github.com/udhe/healthintelligence/backend/internal/domain/repositories"
	apperrors "github.com/udhe/healthintelligence/backend/pkg/errors"
	"github.com/udhe/healthintelligence/backend/pkg/utils"
)

// ReportSubmission is one bulk indicator report row as submitted.
type ReportSubmission struct {
	District    string  `json:"district"`
	Subdistrict string  `json:"subdistrict"`
	Ward        string  `json:"ward"`
	Indicator   string  `json:"indicator_name"`
	CodeSection string  `json:"code_section"`
	TotalCases  float64 `json:"total_cases"`
	Month       string  `json:"month"`
	Year        int     `json:"year"`
}

// ReportResult is the ingest response for a report row. The quick
// outbreak check runs on the hot path so the submitter learns about a
// suspected spike in the same round trip.
type ReportResult struct {
	ID                string `json:"id"`
	Indicator         string `json:"indicator_name"`
	OutbreakSuspected bool   `json:"outbreak_suspected"`
}

// TransactionSubmission is one clinical transaction as submitted.
// Count defaults to 1 when omitted.
type TransactionSubmission struct {
	FacilityID string `json:"facility_id"`
	Kind       string `json:"transaction_type"`
	Department string `json:"department"`
	Indicator  string `json:"indicator_name"`
	Count      int    `json:"count"`
	Month      string `json:"month"`
}

// TransactionResult is the ingest response for a clinical transaction.
type TransactionResult struct {
	ID        string `json:"id"`
	Indicator string `json:"indicator_name"`
}

// IngestionService is the single write path for clinical data. Every
// row passes through indicator normalization and numeric validation
// before persistence; rejected payloads go to the dead-letter store so
// they can be replayed after correction instead of skewing baselines.
type IngestionService struct {
	indicatorRepo  repositories.IndicatorRepository
	eventRepo      repositories.EventRepository
	deadLetterRepo repositories.DeadLetterRepository
	facilityRepo   repositories.FacilityRepository
	eventBus       providers.EventBus
	normalizer     *utils.IndicatorNormalizer
	thresholds     analytics.Thresholds
	logger         zerolog.Logger
}

func NewIngestionService(
	indicatorRepo repositories.IndicatorRepository,
	eventRepo repositories.EventRepository,
	deadLetterRepo repositories.DeadLetterRepository,
	facilityRepo repositories.FacilityRepository,
	eventBus providers.EventBus,
	normalizer *utils.IndicatorNormalizer,
	thresholds analytics.Thresholds,
	logger zerolog.Logger,
) *IngestionService {
	return &IngestionService{
		indicatorRepo:  indicatorRepo,
		eventRepo:      eventRepo,
		deadLetterRepo: deadLetterRepo,
		facilityRepo:   facilityRepo,
		eventBus:       eventBus,
		normalizer:     normalizer,
		thresholds:     thresholds,
		logger:         logger,
	}
}

// IngestReport validates and persists one indicator report row, then
// runs the single-record quick outbreak check against the recent window
// for that indicator. Validation failures are dead-lettered and returned
// as typed validation errors.
func (s *IngestionService) IngestReport(ctx context.Context, sub ReportSubmission) (*ReportResult, error) {
	if err := s.validateReport(sub); err != nil {
		s.deadLetter(ctx, "reports", sub, err)
		return nil, err
	}

	record := &entities.IndicatorRecord{
		ID:           uuid.New().String(),
		District:     strings.TrimSpace(sub.District),
		Subdistrict:  strings.TrimSpace(sub.Subdistrict),
		Ward:         strings.TrimSpace(sub.Ward),
		RawIndicator: sub.Indicator,
		Indicator:    s.normalizer.Normalize(sub.Indicator),
		CodeSection:  strings.ToUpper(strings.TrimSpace(sub.CodeSection)),
		TotalCases:   sub.TotalCases,
		Period:       entities.MonthNumber(sub.Month),
		Year:         sub.Year,
		Timestamp:    time.Now().UTC(),
	}

	suspected := s.quickCheck(ctx, record.Indicator, record.TotalCases)

	if err := s.indicatorRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	if suspected {
		s.logger.Warn().
			Str("district", record.District).
			Str("indicator", record.Indicator).
			Float64("total_cases", record.TotalCases).
			Msg("quick check flagged suspected outbreak")
	}

	return &ReportResult{
		ID:                record.ID,
		Indicator:         record.Indicator,
		OutbreakSuspected: suspected,
	}, nil
}

// IngestTransaction validates and persists one clinical transaction and
// publishes it on the live bus. Publish failures are logged, never
// surfaced: the feed is best-effort, the write path is not.
func (s *IngestionService) IngestTransaction(ctx context.Context, sub TransactionSubmission) (*TransactionResult, error) {
	if sub.Count == 0 {
		sub.Count = 1
	}
	if err := s.validateTransaction(sub); err != nil {
		s.deadLetter(ctx, "transactions", sub, err)
		return nil, err
	}

	facility, err := s.facilityRepo.GetByFacilityID(ctx, strings.TrimSpace(sub.FacilityID))
	if err != nil {
		if apperrors.IsNotFound(err) {
			verr := apperrors.NewValidationErrorf("unknown facility %q", sub.FacilityID)
			s.deadLetter(ctx, "transactions", sub, verr)
			return nil, verr
		}
		return nil, err
	}

	event := &entities.HealthEvent{
		ID:         uuid.New().String(),
		FacilityID: facility.FacilityID,
		Kind:       entities.TransactionKind(strings.ToUpper(strings.TrimSpace(sub.Kind))),
		Department: strings.TrimSpace(sub.Department),
		Indicator:  s.normalizer.Normalize(sub.Indicator),
		Count:      sub.Count,
		Month:      strings.TrimSpace(sub.Month),
		Timestamp:  time.Now().UTC(),
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	s.publish(ctx, providers.EventChannelIngestion, event)
	s.publish(ctx, providers.GetFacilityChannel(event.FacilityID), event)
	if facility.Ward != "" {
		s.publish(ctx, providers.GetWardChannel(facility.Ward), event)
	}

	return &TransactionResult{ID: event.ID, Indicator: event.Indicator}, nil
}

// RecentEvents returns the newest ingested transactions. A non-positive
// limit falls back to the configured recent window size.
func (s *IngestionService) RecentEvents(ctx context.Context, limit int) ([]*entities.HealthEvent, error) {
	if limit <= 0 {
		limit = s.thresholds.RecentWindowSize
	}
	return s.eventRepo.ListRecent(ctx, limit)
}

func (s *IngestionService) quickCheck(ctx context.Context, indicator string, newCount float64) bool {
	recent, err := s.indicatorRepo.ListRecentByIndicator(ctx, indicator, s.thresholds.RecentWindowSize)
	if err != nil {
		s.logger.Error().Err(err).Str("indicator", indicator).Msg("quick check history read failed")
		return false
	}
	history := make([]float64, 0, len(recent))
	for _, r := range recent {
		history = append(history, r.TotalCases)
	}
	return analytics.QuickOutbreakCheck(history, newCount, s.thresholds)
}

func (s *IngestionService) validateReport(sub ReportSubmission) error {
	if strings.TrimSpace(sub.District) == "" {
		return apperrors.NewValidationError("district is required")
	}
	if strings.TrimSpace(sub.Indicator) == "" {
		return apperrors.NewValidationError("indicator_name is required")
	}
	if math.IsNaN(sub.TotalCases) || math.IsInf(sub.TotalCases, 0) {
		return apperrors.NewValidationError("total_cases must be a finite number")
	}
	if sub.TotalCases < 0 {
		return apperrors.NewValidationErrorf("total_cases must be >= 0, got %v", sub.TotalCases)
	}
	if entities.MonthNumber(sub.Month) == 0 {
		return apperrors.NewValidationErrorf("unrecognized month %q", sub.Month)
	}
	return nil
}

func (s *IngestionService) validateTransaction(sub TransactionSubmission) error {
	if strings.TrimSpace(sub.FacilityID) == "" {
		return apperrors.NewValidationError("facility_id is required")
	}
	if strings.TrimSpace(sub.Indicator) == "" {
		return apperrors.NewValidationError("indicator_name is required")
	}
	kind := entities.TransactionKind(strings.ToUpper(strings.TrimSpace(sub.Kind)))
	if kind != entities.TransactionCase && kind != entities.TransactionVaccination {
		return apperrors.NewValidationErrorf("unknown transaction_type %q", sub.Kind)
	}
	if sub.Count < 1 {
		return apperrors.NewValidationErrorf("count must be >= 1, got %d", sub.Count)
	}
	return nil
}

// deadLetter captures the raw submission alongside the rejection
// reason. Failing to dead-letter is itself only logged; the caller
// already has the validation error.
func (s *IngestionService) deadLetter(ctx context.Context, source string, sub interface{}, cause error) {
	if s.deadLetterRepo == nil {
		return
	}
	payload, err := json.Marshal(sub)
	if err != nil {
		payload = []byte{}
	}
	if err := s.deadLetterRepo.Create(ctx, source, payload, cause.Error()); err != nil {
		s.logger.Error().Err(err).Str("source", source).Msg("dead-letter write failed")
	}
}

func (s *IngestionService) publish(ctx context.Context, channel string, event *entities.HealthEvent) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(ctx, channel, event); err != nil {
		s.logger.Warn().Err(err).Str("channel", channel).Msg("event publish failed")
	}
}
