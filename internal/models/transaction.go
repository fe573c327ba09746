package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType is the closed set of ledger operation kinds.
type TransactionType string

const (
	TypeCredit TransactionType = "credit"
	TypeDebit  TransactionType = "debit"
)

// ErrUnknownTransactionType is returned for any value outside {credit, debit}.
var ErrUnknownTransactionType = errors.New("unknown transaction type")

// ParseTransactionType maps a raw string onto the closed type set.
// Matching is case-insensitive and whitespace-trimmed; anything else is rejected.
func ParseTransactionType(raw string) (TransactionType, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(TypeCredit):
		return TypeCredit, nil
	case string(TypeDebit):
		return TypeDebit, nil
	default:
		return "", ErrUnknownTransactionType
	}
}

// TransactionDB represents a transaction row in the database.
// Rows are insert-only: once written they are never updated or deleted.
type TransactionDB struct {
	TransactionID uuid.UUID       `json:"transaction_id" db:"transaction_id"` // Unique transaction identifier
	AccountID     uuid.UUID       `json:"account_id" db:"account_id"`         // Account the transaction belongs to
	UserID        uuid.UUID       `json:"user_id" db:"user_id"`               // Owner of the transaction
	Amount        decimal.Decimal `json:"amount" db:"amount"`                 // Monetary amount, 2-decimal precision
	Currency      string          `json:"currency" db:"currency"`             // ISO-4217 currency code
	Type          TransactionType `json:"type" db:"type"`                     // credit or debit
	Description   string          `json:"description" db:"description"`       // Human-readable description
	SpendingType  *string         `json:"spending_type" db:"spending_type"`   // Optional budgeting label, stored as given
	TxHash        *string         `json:"tx_hash" db:"tx_hash"`               // Optional external (e.g. on-chain) reference
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`         // Persistence timestamp, ordering and windowing key
}

// AccountDB represents an account row. Accounts are owned by the account
// service; this service only reads them for the optional ownership probe.
type AccountDB struct {
	AccountID uuid.UUID `json:"account_id" db:"account_id"` // Unique account identifier
	UserID    uuid.UUID `json:"user_id" db:"user_id"`       // Owning user
	Currency  string    `json:"currency" db:"currency"`     // ISO-4217 currency code
	CreatedAt time.Time `json:"created_at" db:"created_at"` // Timestamp when the account was created
}
