package handlers_test

import (
	"context"
	"strings"
	"time"

	"github.com/udhe/healthintelligence/backend/internal/domain/entities"
	"github.com/udhe/healthintelligence/backend/internal/domain/repositories"
	apperrors "github.com/udhe/healthintelligence/backend/pkg/errors"
)

// In-memory repository fakes shared by the handler tests. They carry
// just enough behavior to drive real services end to end through HTTP.

type fakeFacilityRepo struct {
	facilities []*entities.Facility
}

func (f *fakeFacilityRepo) Create(_ context.Context, facility *entities.Facility) error {
	f.facilities = append(f.facilities, facility)
	return nil
}

func (f *fakeFacilityRepo) GetByFacilityID(_ context.Context, facilityID string) (*entities.Facility, error) {
	for _, fac := range f.facilities {
		if fac.FacilityID == facilityID {
			return fac, nil
		}
	}
	return nil, apperrors.NewNotFoundError("not found")
}

func (f *fakeFacilityRepo) List(_ context.Context, _ repositories.FacilityFilter) ([]*entities.Facility, error) {
	return f.facilities, nil
}

func (f *fakeFacilityRepo) ListByWard(_ context.Context, ward string) ([]*entities.Facility, error) {
	var out []*entities.Facility
	for _, fac := range f.facilities {
		if fac.Ward == ward {
			out = append(out, fac)
		}
	}
	return out, nil
}

func (f *fakeFacilityRepo) ListWards(_ context.Context) ([]string, error) {
	seen := map[string]bool{}
	var wards []string
	for _, fac := range f.facilities {
		if fac.Ward != "" && !seen[fac.Ward] {
			seen[fac.Ward] = true
			wards = append(wards, fac.Ward)
		}
	}
	return wards, nil
}

type fakeEventRepo struct {
	events []*entities.HealthEvent
}

func (f *fakeEventRepo) Create(_ context.Context, event *entities.HealthEvent) error {
	f.events = append(f.events, event)
	return nil
}

func (f *fakeEventRepo) SumByFacilitySince(_ context.Context, facilityID string, kind entities.TransactionKind, since time.Time) (int, error) {
	total := 0
	for _, e := range f.events {
		if e.FacilityID == facilityID && e.Kind == kind && !e.Timestamp.Before(since) {
			total += e.Count
		}
	}
	return total, nil
}

func (f *fakeEventRepo) SumByWardSince(_ context.Context, _ string, kind entities.TransactionKind, since time.Time) (int, error) {
	total := 0
	for _, e := range f.events {
		if e.Kind == kind && !e.Timestamp.Before(since) {
			total += e.Count
		}
	}
	return total, nil
}

func (f *fakeEventRepo) ListRecent(_ context.Context, limit int) ([]*entities.HealthEvent, error) {
	if limit > len(f.events) {
		limit = len(f.events)
	}
	out := make([]*entities.HealthEvent, 0, limit)
	for i := len(f.events) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, f.events[i])
	}
	return out, nil
}

type fakeIndicatorRepo struct {
	records []*entities.IndicatorRecord
}

func (f *fakeIndicatorRepo) Create(_ context.Context, record *entities.IndicatorRecord) error {
	f.records = append(f.records, record)
	return nil
}

func (f *fakeIndicatorRepo) List(_ context.Context, filter repositories.IndicatorFilter) ([]*entities.IndicatorRecord, error) {
	var out []*entities.IndicatorRecord
	for _, r := range f.records {
		if filter.District != "" && r.District != filter.District {
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
	return out, nil
}

func (f *fakeIndicatorRepo) ListRecentByIndicator(_ context.Context, indicator string, limit int) ([]*entities.IndicatorRecord, error) {
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

type fakeStatusRepo struct {
	statuses []*entities.FacilityStatus
}

func (f *fakeStatusRepo) Create(_ context.Context, status *entities.FacilityStatus) error {
	f.statuses = append(f.statuses, status)
	return nil
}

func (f *fakeStatusRepo) GetLatestByFacility(_ context.Context, facilityID string) (*entities.FacilityStatus, error) {
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
		return nil, apperrors.NewNotFoundError("not found")
	}
	return latest, nil
}

func (f *fakeStatusRepo) LatestPerFacility(_ context.Context) ([]*entities.FacilityStatus, error) {
	latest := map[string]*entities.FacilityStatus{}
	for _, s := range f.statuses {
		cur, ok := latest[s.FacilityID]
		if !ok || s.Timestamp.After(cur.Timestamp) {
			latest[s.FacilityID] = s
		}
	}
	out := make([]*entities.FacilityStatus, 0, len(latest))
	for _, s := range latest {
		out = append(out, s)
	}
	return out, nil
}

type fakeAmbulanceRepo struct {
	ambulances []*entities.Ambulance
}

func (f *fakeAmbulanceRepo) Upsert(_ context.Context, ambulance *entities.Ambulance) error {
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
	for _, a := range f.ambulances {
		if a.VehicleID == vehicleID {
			return a, nil
		}
	}
	return nil, apperrors.NewNotFoundError("not found")
}

func (f *fakeAmbulanceRepo) List(_ context.Context, filter repositories.AmbulanceFilter) ([]*entities.Ambulance, error) {
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
	return out, nil
}

type fakeDeadLetterRepo struct {
	entries int
}

func (f *fakeDeadLetterRepo) Create(_ context.Context, _ string, _ []byte, _ string) error {
	f.entries++
	return nil
}

type fakeEventBus struct {
	published    []*entities.HealthEvent
	subscription chan *entities.HealthEvent
	unsubscribed int
}

func (f *fakeEventBus) Publish(_ context.Context, _ string, event *entities.HealthEvent) error {
	f.published = append(f.published, event)
	return nil
}

func (f *fakeEventBus) Subscribe(_ context.Context, _ string) (<-chan *entities.HealthEvent, error) {
	if f.subscription != nil {
		return f.subscription, nil
	}
	ch := make(chan *entities.HealthEvent)
	close(ch)
	return ch, nil
}

func (f *fakeEventBus) Unsubscribe(_ context.Context, _ string) error {
	f.unsubscribed++
	return nil
}

func (f *fakeEventBus) Close() error { return nil }
