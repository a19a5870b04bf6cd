package database

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/udhe/healthintelligence/backend/internal/domain/entities"
	"github.com/udhe/healthintelligence/backend/internal/domain/repositories"
	"github.com/udhe/healthintelligence/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/udhe/healthintelligence/backend/pkg/errors"
)

// EventAdapter implements the EventRepository interface over the
// append-only health_events table.
type EventAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

var _ repositories.EventRepository = (*EventAdapter)(nil)

// NewEventAdapter creates a new event adapter
func NewEventAdapter(client *postgres.Client) *EventAdapter {
	return &EventAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create appends a clinical event
func (a *EventAdapter) Create(ctx context.Context, event *entities.HealthEvent) error {
	record := goqu.Record{
		"id":               event.ID,
		"facility_id":      event.FacilityID,
		"transaction_type": string(event.Kind),
		"department":       event.Department,
		"indicator_name":   event.Indicator,
		"count":            event.Count,
		"month":            event.Month,
		"timestamp":        event.Timestamp,
	}

	query, args, err := a.db.Insert("health_events").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create health event", err)
	}

	return nil
}

// SumByFacilitySince returns the weighted event count for a facility
// and transaction kind from the cutoff onward
func (a *EventAdapter) SumByFacilitySince(ctx context.Context, facilityID string, kind entities.TransactionKind, since time.Time) (int, error) {
	return a.sumSince(ctx, goqu.Ex{"facility_id": facilityID}, kind, since)
}

// SumByWardSince returns the weighted event count across a ward's
// facilities for a transaction kind from the cutoff onward
func (a *EventAdapter) SumByWardSince(ctx context.Context, ward string, kind entities.TransactionKind, since time.Time) (int, error) {
	wardFacilities := a.db.Select("facility_id").From("facilities").
		Where(goqu.Ex{"ward": ward, "is_active": true})
	return a.sumSince(ctx, goqu.Ex{"facility_id": goqu.Op{"in": wardFacilities}}, kind, since)
}

// ListRecent returns the newest events, newest first, up to limit
func (a *EventAdapter) ListRecent(ctx context.Context, limit int) ([]*entities.HealthEvent, error) {
	if limit <= 0 {
		return []*entities.HealthEvent{}, nil
	}

	query, args, err := a.db.Select(
		"id", "facility_id", "transaction_type", "department",
		"indicator_name", "count", "month", "timestamp",
	).From("health_events").
		Order(goqu.I("timestamp").Desc(), goqu.I("id").Desc()).
		Limit(uint(limit)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list events", err)
	}
	defer rows.Close()

	events := []*entities.HealthEvent{}
	for rows.Next() {
		event := &entities.HealthEvent{}
		var kind string
		err := rows.Scan(
			&event.ID,
			&event.FacilityID,
			&kind,
			&event.Department,
			&event.Indicator,
			&event.Count,
			&event.Month,
			&event.Timestamp,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan event", err)
		}
		event.Kind = entities.TransactionKind(kind)
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating events", err)
	}

	return events, nil
}

func (a *EventAdapter) sumSince(ctx context.Context, scope goqu.Ex, kind entities.TransactionKind, since time.Time) (int, error) {
	query, args, err := a.db.Select(goqu.COALESCE(goqu.SUM("count"), 0)).
		From("health_events").
		Where(
			scope,
			goqu.Ex{"transaction_type": string(kind)},
			goqu.I("timestamp").Gte(since),
		).
		ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build query", err)
	}

	var sum int
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&sum); err != nil {
		return 0, apperrors.NewInternalError("failed to sum events", err)
	}

	return sum, nil
}
