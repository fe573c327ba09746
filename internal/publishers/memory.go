package publishers

import (
	"context"
	"sync"

	"github.com/sbilibin2017/gw-transaction-ledger/internal/logger"
	"github.com/sbilibin2017/gw-transaction-ledger/internal/models"
)

// Noop accepts every event without delivering it anywhere. It backs the
// degraded/demo publisher mode where no broker is configured.
type Noop struct{}

func (Noop) Publish(ctx context.Context, event models.TransactionCreated) error {
	logger.Log.Warnw("publisher in noop mode, event not delivered",
		"transaction_id", event.TransactionID,
	)
	return nil
}

func (Noop) Close() error { return nil }

// Recorder captures published events in memory for test assertions.
type Recorder struct {
	mu     sync.Mutex
	events []models.TransactionCreated
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Publish(ctx context.Context, event models.TransactionCreated) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *Recorder) Close() error { return nil }

// Events returns a copy of everything published so far.
func (r *Recorder) Events() []models.TransactionCreated {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.TransactionCreated, len(r.events))
	copy(out, r.events)
	return out
}
