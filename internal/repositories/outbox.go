package repositories

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-transaction-ledger/internal/logger"
	"github.com/sbilibin2017/gw-transaction-ledger/internal/models"
)

// OutboxRepository manages staged transaction events awaiting delivery.
type OutboxRepository struct {
	db *sqlx.DB
}

func NewOutboxRepository(db *sqlx.DB) *OutboxRepository {
	return &OutboxRepository{db: db}
}

// ListPending returns up to limit undelivered events, oldest first.
func (r *OutboxRepository) ListPending(ctx context.Context, limit int) ([]models.OutboxEventDB, error) {
	const query = `
		SELECT event_id, transaction_id, payload, status, attempts, last_error, created_at, delivered_at
		FROM transaction_events
		WHERE status = $1
		ORDER BY created_at
		LIMIT $2
	`

	var events []models.OutboxEventDB
	err := r.db.SelectContext(ctx, &events, query, models.EventStatusPending, limit)

	logger.Log.Debugw("list pending events",
		"query", strings.Join(strings.Fields(query), " "),
		"limit", limit,
		"count", len(events),
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return events, nil
}

// MarkDelivered flips an event to delivered after broker acknowledgment.
func (r *OutboxRepository) MarkDelivered(ctx context.Context, eventID uuid.UUID) error {
	const query = `
		UPDATE transaction_events
		SET status = $1, delivered_at = NOW()
		WHERE event_id = $2
	`

	_, err := r.db.ExecContext(ctx, query, models.EventStatusDelivered, eventID)

	logger.Log.Infow("event delivered",
		"event_id", eventID,
		"error", err,
	)

	return err
}

// MarkFailed records a failed delivery attempt; the event stays pending
// and will be retried on a later dispatcher pass.
func (r *OutboxRepository) MarkFailed(ctx context.Context, eventID uuid.UUID, cause string) error {
	const query = `
		UPDATE transaction_events
		SET attempts = attempts + 1, last_error = $1
		WHERE event_id = $2
	`

	_, err := r.db.ExecContext(ctx, query, cause, eventID)

	logger.Log.Warnw("event delivery failed",
		"event_id", eventID,
		"cause", cause,
		"error", err,
	)

	return err
}
