// Package outbox drains staged transaction events to the configured
// publisher. Events are marked delivered only on broker acknowledgment,
// so a crash between publish and mark re-delivers the event on the next
// pass; combined with the atomic stage-on-write this yields at-least-once
// delivery end to end.
package outbox

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-transaction-ledger/internal/logger"
	"github.com/sbilibin2017/gw-transaction-ledger/internal/models"
	"github.com/sbilibin2017/gw-transaction-ledger/internal/publishers"
)

// PendingLister reads undelivered events from the outbox.
type PendingLister interface {
	ListPending(ctx context.Context, limit int) ([]models.OutboxEventDB, error)
}

// DeliveryMarker records delivery outcomes for outbox events.
type DeliveryMarker interface {
	MarkDelivered(ctx context.Context, eventID uuid.UUID) error
	MarkFailed(ctx context.Context, eventID uuid.UUID, cause string) error
}

// Dispatcher polls the outbox on an interval and publishes pending events.
// Record calls nudge it for prompt delivery; failed events stay pending
// and are retried on later passes.
type Dispatcher struct {
	lister    PendingLister
	marker    DeliveryMarker
	publisher publishers.Publisher
	interval  time.Duration
	batchSize int
	nudge     chan struct{}
}

func New(lister PendingLister, marker DeliveryMarker, publisher publishers.Publisher, interval time.Duration, batchSize int) *Dispatcher {
	return &Dispatcher{
		lister:    lister,
		marker:    marker,
		publisher: publisher,
		interval:  interval,
		batchSize: batchSize,
		nudge:     make(chan struct{}, 1),
	}
}

// Nudge wakes the dispatcher outside its polling interval. Non-blocking:
// if a wake-up is already queued the call is a no-op.
func (d *Dispatcher) Nudge() {
	select {
	case d.nudge <- struct{}{}:
	default:
	}
}

// Run drains the outbox until ctx is canceled.
func (d *Dispatcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	logger.Log.Infow("outbox dispatcher started", "interval", d.interval, "batch_size", d.batchSize)

	for {
		select {
		case <-ctx.Done():
			logger.Log.Info("outbox dispatcher stopped")
			return ctx.Err()
		case <-ticker.C:
			d.drain(ctx)
		case <-d.nudge:
			d.drain(ctx)
		}
	}
}

// drain publishes one batch of pending events.
func (d *Dispatcher) drain(ctx context.Context) {
	events, err := d.lister.ListPending(ctx, d.batchSize)
	if err != nil {
		logger.Log.Errorw("failed to list pending events", "error", err)
		return
	}

	for _, staged := range events {
		if ctx.Err() != nil {
			return
		}

		var event models.TransactionCreated
		if err := json.Unmarshal(staged.Payload, &event); err != nil {
			logger.Log.Errorw("failed to decode staged event",
				"event_id", staged.EventID, "error", err)
			if err := d.marker.MarkFailed(ctx, staged.EventID, err.Error()); err != nil {
				logger.Log.Errorw("failed to record decode failure", "event_id", staged.EventID, "error", err)
			}
			continue
		}

		if err := d.publisher.Publish(ctx, event); err != nil {
			logger.Log.Errorw("failed to publish event",
				"event_id", staged.EventID,
				"transaction_id", event.TransactionID,
				"attempts", staged.Attempts,
				"error", err,
			)
			if err := d.marker.MarkFailed(ctx, staged.EventID, err.Error()); err != nil {
				logger.Log.Errorw("failed to record publish failure", "event_id", staged.EventID, "error", err)
			}
			continue
		}

		if err := d.marker.MarkDelivered(ctx, staged.EventID); err != nil {
			// Event was published but not marked: it stays pending and will
			// be re-published, which the at-least-once contract permits.
			logger.Log.Errorw("failed to mark event delivered", "event_id", staged.EventID, "error", err)
		}
	}
}
