package database

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/udhe/healthintelligence/backend/internal/domain/repositories"
	"github.com/udhe/healthintelligence/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/udhe/healthintelligence/backend/pkg/errors"
)

// DeadLetterAdapter implements the DeadLetterRepository interface.
// Rejected payloads are kept verbatim so they can be corrected and
// replayed through the ingest endpoints.
type DeadLetterAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

var _ repositories.DeadLetterRepository = (*DeadLetterAdapter)(nil)

// NewDeadLetterAdapter creates a new dead letter adapter
func NewDeadLetterAdapter(client *postgres.Client) *DeadLetterAdapter {
	return &DeadLetterAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create stores a rejected payload with the rejection reason
func (a *DeadLetterAdapter) Create(ctx context.Context, source string, payload []byte, reason string) error {
	record := goqu.Record{
		"id":         uuid.New().String(),
		"source":     source,
		"payload":    string(payload),
		"reason":     reason,
		"created_at": time.Now().UTC(),
	}

	query, args, err := a.db.Insert("dead_letters").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to write dead letter", err)
	}

	return nil
}
