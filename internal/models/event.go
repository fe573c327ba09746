package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Outbox event statuses.
const (
	EventStatusPending   = "pending"
	EventStatusDelivered = "delivered"
)

// TransactionCreated is the denormalized snapshot published once per
// persisted transaction. The schema is flat and carries no envelope
// versioning; consumers must tolerate additive fields and dedupe on
// TransactionID, since delivery is at-least-once.
type TransactionCreated struct {
	TransactionID uuid.UUID       `json:"transactionId"` // Natural dedup key for consumers
	AccountID     uuid.UUID       `json:"accountId"`     // Account the transaction belongs to
	UserID        uuid.UUID       `json:"userId"`        // Owner of the transaction
	Amount        decimal.Decimal `json:"amount"`        // Monetary amount
	Currency      string          `json:"currency"`      // ISO-4217 currency code
	Type          TransactionType `json:"type"`          // credit or debit
	CreatedAt     time.Time       `json:"createdAt"`     // Persistence timestamp of the transaction
}

// OutboxEventDB is a staged TransactionCreated event awaiting broker
// delivery. It is written in the same database transaction as the ledger
// row and flipped to delivered only on broker acknowledgment.
type OutboxEventDB struct {
	EventID       uuid.UUID  `json:"event_id" db:"event_id"`           // Unique outbox row identifier
	TransactionID uuid.UUID  `json:"transaction_id" db:"transaction_id"` // Transaction the event describes
	Payload       []byte     `json:"payload" db:"payload"`             // Serialized TransactionCreated
	Status        string     `json:"status" db:"status"`               // pending or delivered
	Attempts      int        `json:"attempts" db:"attempts"`           // Delivery attempts so far
	LastError     *string    `json:"last_error" db:"last_error"`       // Most recent delivery failure, if any
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`       // When the event was staged
	DeliveredAt   *time.Time `json:"delivered_at" db:"delivered_at"`   // When the broker acknowledged it
}
