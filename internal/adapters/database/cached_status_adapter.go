package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/udhe/healthintelligence/backend/internal/domain/entities"
	"github.com/udhe/healthintelligence/backend/internal/domain/providers"
	"github.com/udhe/healthintelligence/backend/internal/domain/repositories"
)

// Cache TTLs (in seconds). Status reads back the dashboards poll every
// few seconds; snapshots change far less often.
const (
	statusLatestTTL = 30
	statusFleetTTL  = 15
)

const statusFleetCacheKey = "status:latest:all"

func statusCacheKey(facilityID string) string {
	return fmt.Sprintf("status:latest:%s", facilityID)
}

// CachedStatusAdapter wraps a StatusRepository with read-through
// caching. Writes invalidate the affected keys.
type CachedStatusAdapter struct {
	adapter repositories.StatusRepository
	cache   providers.CacheProvider
	logger  zerolog.Logger
}

var _ repositories.StatusRepository = (*CachedStatusAdapter)(nil)

// NewCachedStatusAdapter creates a new cached status adapter
func NewCachedStatusAdapter(adapter repositories.StatusRepository, cache providers.CacheProvider, logger zerolog.Logger) *CachedStatusAdapter {
	return &CachedStatusAdapter{
		adapter: adapter,
		cache:   cache,
		logger:  logger,
	}
}

// Create appends a snapshot and invalidates the cached reads for the
// facility and the fleet view.
func (a *CachedStatusAdapter) Create(ctx context.Context, status *entities.FacilityStatus) error {
	if err := a.adapter.Create(ctx, status); err != nil {
		return err
	}

	go func() {
		bgCtx := context.Background()
		if err := a.cache.Delete(bgCtx, statusCacheKey(status.FacilityID)); err != nil {
			a.logger.Warn().Err(err).Str("facility_id", status.FacilityID).Msg("status cache invalidation failed")
		}
		if err := a.cache.Delete(bgCtx, statusFleetCacheKey); err != nil {
			a.logger.Warn().Err(err).Msg("fleet status cache invalidation failed")
		}
	}()

	return nil
}

// GetLatestByFacility returns the most recent snapshot with caching
func (a *CachedStatusAdapter) GetLatestByFacility(ctx context.Context, facilityID string) (*entities.FacilityStatus, error) {
	cacheKey := statusCacheKey(facilityID)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var status entities.FacilityStatus
		if err := json.Unmarshal(cached, &status); err == nil {
			return &status, nil
		}
		a.logger.Warn().Err(err).Str("facility_id", facilityID).Msg("cached status unmarshal failed")
	}

	status, err := a.adapter.GetLatestByFacility(ctx, facilityID)
	if err != nil {
		return nil, err
	}

	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(status); err == nil {
			if err := a.cache.Set(bgCtx, cacheKey, data, statusLatestTTL); err != nil {
				a.logger.Warn().Err(err).Str("facility_id", facilityID).Msg("status cache write failed")
			}
		}
	}()

	return status, nil
}

// LatestPerFacility returns every facility's latest snapshot with caching
func (a *CachedStatusAdapter) LatestPerFacility(ctx context.Context) ([]*entities.FacilityStatus, error) {
	if cached, err := a.cache.Get(ctx, statusFleetCacheKey); err == nil {
		var statuses []*entities.FacilityStatus
		if err := json.Unmarshal(cached, &statuses); err == nil {
			return statuses, nil
		}
		a.logger.Warn().Err(err).Msg("cached fleet status unmarshal failed")
	}

	statuses, err := a.adapter.LatestPerFacility(ctx)
	if err != nil {
		return nil, err
	}

	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(statuses); err == nil {
			if err := a.cache.Set(bgCtx, statusFleetCacheKey, data, statusFleetTTL); err != nil {
				a.logger.Warn().Err(err).Msg("fleet status cache write failed")
			}
		}
	}()

	return statuses, nil
}
