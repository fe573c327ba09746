// Package publishers provides the event delivery seam. Exactly one adapter
// is selected by configuration at startup; the delivery contract is
// at-least-once with no cross-transaction ordering, so consumers must
// dedupe on the event's transactionId.
package publishers

import (
	"context"

	"github.com/sbilibin2017/gw-transaction-ledger/internal/models"
)

// Publisher delivers TransactionCreated events to a message channel.
type Publisher interface {
	Publish(ctx context.Context, event models.TransactionCreated) error // Delivers one event, returning an error if the channel did not acknowledge it
	Close() error                                                       // Releases the underlying channel resources
}
