package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/udhe/healthintelligence/backend/internal/domain/entities"
	"github.com/udhe/healthintelligence/backend/internal/domain/repositories"
	apperrors "github.com/udhe/healthintelligence/backend/pkg/errors"
)

// In-memory fakes shared by the service tests.

type fakeIndicatorRepo struct {
	records []*entities.IndicatorRecord
	err     error
}

func (f *fakeIndicatorRepo) Create(_ context.Context, record *entities.IndicatorRecord) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, record)
	return nil
}

func (f *fakeIndicatorRepo) List(_ context.Context, filter repositories.IndicatorFilter) ([]*entities.IndicatorRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*entities.IndicatorRecord
	for _, r := range f.records {
		if filter.District != "" && r.District != filter.District {
			continue
		}
		if filter.Indicator != "" && r.Indicator != filter.Indicator {
			continue
		}
		if filter.Year != 0 && r.Year != filter.Year {
			continue
		}
		if len(filter.CodeSectionPrefixes) > 0 && !hasPrefixAny(r.CodeSection, filter.CodeSectionPrefixes) {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].District != out[j].District {
			return out[i].District < out[j].District
		}
		if out[i].Indicator != out[j].Indicator {
			return out[i].Indicator < out[j].Indicator
		}
		return out[i].Period < out[j].Period
	})
	return out, nil
}

func (f *fakeIndicatorRepo) ListRecentByIndicator(_ context.Context, indicator string, limit int) ([]*entities.IndicatorRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*entities.IndicatorRecord
	for i := len(f.records) - 1; i >= 0 && len(out) < limit; i-- {
		if f.records[i].Indicator == indicator {
			out = append(out, f.records[i])
		}
	}
	return out, nil
}

func hasPrefixAny(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

type wardEvent struct {
	ward  string
	kind  entities.TransactionKind
	count int
	at    time.Time
}

type fakeEventRepo struct {
	events     []*entities.HealthEvent
	wardEvents []wardEvent
	err        error
}

func (f *fakeEventRepo) Create(_ context.Context, event *entities.HealthEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

func (f *fakeEventRepo) SumByFacilitySince(_ context.Context, facilityID string, kind entities.TransactionKind, since time.Time) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	sum := 0
	for _, e := range f.events {
		if e.FacilityID == facilityID && e.Kind == kind && !e.Timestamp.Before(since) {
			sum += e.Count
		}
	}
	return sum, nil
}

func (f *fakeEventRepo) SumByWardSince(_ context.Context, ward string, kind entities.TransactionKind, since time.Time) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	sum := 0
	for _, e := range f.wardEvents {
		if e.ward == ward && e.kind == kind && !e.at.Before(since) {
			sum += e.count
		}
	}
	return sum, nil
}

func (f *fakeEventRepo) ListRecent(_ context.Context, limit int) ([]*entities.HealthEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*entities.HealthEvent, 0, limit)
	for i := len(f.events) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, f.events[i])
	}
	return out, nil
}

type deadLetterEntry struct {
	source  string
	payload []byte
	reason  string
}

type fakeDeadLetterRepo struct {
	entries []deadLetterEntry
}

func (f *fakeDeadLetterRepo) Create(_ context.Context, source string, payload []byte, reason string) error {
	f.entries = append(f.entries, deadLetterEntry{source: source, payload: payload, reason: reason})
	return nil
}

type fakeFacilityRepo struct {
	facilities []*entities.Facility
	err        error
}

func (f *fakeFacilityRepo) Create(_ context.Context, facility *entities.Facility) error {
	if f.err != nil {
		return f.err
	}
	f.facilities = append(f.facilities, facility)
	return nil
}

func (f *fakeFacilityRepo) GetByFacilityID(_ context.Context, facilityID string) (*entities.Facility, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, fac := range f.facilities {
		if fac.FacilityID == facilityID {
			return fac, nil
		}
	}
	return nil, apperrors.NewNotFoundError("facility not found: " + facilityID)
}

func (f *fakeFacilityRepo) List(_ context.Context, filter repositories.FacilityFilter) ([]*entities.Facility, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*entities.Facility
	for _, fac := range f.facilities {
		if filter.Ward != "" && fac.Ward != filter.Ward {
			continue
		}
		if filter.District != "" && fac.District != filter.District {
			continue
		}
		out = append(out, fac)
	}
	return out, nil
}

func (f *fakeFacilityRepo) ListByWard(_ context.Context, ward string) ([]*entities.Facility, error) {
	return f.List(context.Background(), repositories.FacilityFilter{Ward: ward})
}

func (f *fakeFacilityRepo) ListWards(_ context.Context) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	seen := map[string]bool{}
	var wards []string
	for _, fac := range f.facilities {
		if fac.Ward != "" && !seen[fac.Ward] {
			seen[fac.Ward] = true
			wards = append(wards, fac.Ward)
		}
	}
	sort.Strings(wards)
	return wards, nil
}

type fakeStatusRepo struct {
	statuses []*entities.FacilityStatus
	err      error
}

func (f *fakeStatusRepo) Create(_ context.Context, status *entities.FacilityStatus) error {
	if f.err != nil {
		return f.err
	}
	f.statuses = append(f.statuses, status)
	return nil
}

func (f *fakeStatusRepo) GetLatestByFacility(_ context.Context, facilityID string) (*entities.FacilityStatus, error) {
	if f.err != nil {
		return nil, f.err
	}
	var latest *entities.FacilityStatus
	for _, s := range f.statuses {
		if s.FacilityID != facilityID {
			continue
		}
		if latest == nil || s.Timestamp.After(latest.Timestamp) {
			latest = s
		}
	}
	if latest == nil {
		return nil, apperrors.NewNotFoundError("no status for facility " + facilityID)
	}
	return latest, nil
}

func (f *fakeStatusRepo) LatestPerFacility(_ context.Context) ([]*entities.FacilityStatus, error) {
	if f.err != nil {
		return nil, f.err
	}
	latest := map[string]*entities.FacilityStatus{}
	for _, s := range f.statuses {
		if cur, ok := latest[s.FacilityID]; !ok || s.Timestamp.After(cur.Timestamp) {
			latest[s.FacilityID] = s
		}
	}
	out := make([]*entities.FacilityStatus, 0, len(latest))
	for _, s := range latest {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FacilityID < out[j].FacilityID })
	return out, nil
}

type fakeAmbulanceRepo struct {
	ambulances []*entities.Ambulance
	err        error
}

func (f *fakeAmbulanceRepo) Upsert(_ context.Context, ambulance *entities.Ambulance) error {
	if f.err != nil {
		return f.err
	}
	for i, a := range f.ambulances {
		if a.VehicleID == ambulance.VehicleID {
			f.ambulances[i] = ambulance
			return nil
		}
	}
	f.ambulances = append(f.ambulances, ambulance)
	return nil
}

func (f *fakeAmbulanceRepo) GetByVehicleID(_ context.Context, vehicleID string) (*entities.Ambulance, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, a := range f.ambulances {
		if a.VehicleID == vehicleID {
			return a, nil
		}
	}
	return nil, apperrors.NewNotFoundError("ambulance not found: " + vehicleID)
}

func (f *fakeAmbulanceRepo) List(_ context.Context, filter repositories.AmbulanceFilter) ([]*entities.Ambulance, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*entities.Ambulance
	for _, a := range f.ambulances {
		if filter.Ward != "" && a.Ward != filter.Ward {
			continue
		}
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		out = append(out, a)
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

type publishedEvent struct {
	channel string
	event   *entities.HealthEvent
}

type fakeEventBus struct {
	published []publishedEvent
	err       error
}

func (f *fakeEventBus) Publish(_ context.Context, channel string, event *entities.HealthEvent) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, publishedEvent{channel: channel, event: event})
	return nil
}

func (f *fakeEventBus) Subscribe(_ context.Context, _ string) (<-chan *entities.HealthEvent, error) {
	ch := make(chan *entities.HealthEvent)
	close(ch)
	return ch, nil
}

func (f *fakeEventBus) Unsubscribe(_ context.Context, _ string) error { return nil }

func (f *fakeEventBus) Close() error { return nil }
