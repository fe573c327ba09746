package repositories

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-transaction-ledger/internal/logger"
	"github.com/sbilibin2017/gw-transaction-ledger/internal/models"
)

// TransactionWriteRepository appends transactions to the ledger.
// The ledger is insert-only: no update or delete queries exist here.
type TransactionWriteRepository struct {
	db *sqlx.DB
}

func NewTransactionWriteRepository(db *sqlx.DB) *TransactionWriteRepository {
	return &TransactionWriteRepository{db: db}
}

// Save inserts the ledger row and its pending outbox event in a single
// database transaction. Either both rows commit or neither does, so a
// persisted transaction always has exactly one staged event.
func (r *TransactionWriteRepository) Save(ctx context.Context, txn models.TransactionDB, event models.TransactionCreated) error {
	const txnQuery = `
		INSERT INTO transactions (transaction_id, account_id, user_id, amount, currency, type, description, spending_type, tx_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	const eventQuery = `
		INSERT INTO transaction_events (event_id, transaction_id, payload, status, attempts, created_at)
		VALUES ($1, $2, $3, $4, 0, $5)
	`

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	args := []any{
		txn.TransactionID, txn.AccountID, txn.UserID,
		txn.Amount, txn.Currency, txn.Type,
		txn.Description, txn.SpendingType, txn.TxHash, txn.CreatedAt,
	}
	if _, err := tx.ExecContext(ctx, txnQuery, args...); err != nil {
		logger.Log.Errorw("insert transaction failed",
			"query", strings.Join(strings.Fields(txnQuery), " "),
			"transaction_id", txn.TransactionID,
			"error", err,
		)
		return err
	}

	if _, err := tx.ExecContext(ctx, eventQuery,
		uuid.New(), txn.TransactionID, payload, models.EventStatusPending, txn.CreatedAt,
	); err != nil {
		logger.Log.Errorw("insert outbox event failed",
			"query", strings.Join(strings.Fields(eventQuery), " "),
			"transaction_id", txn.TransactionID,
			"error", err,
		)
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	logger.Log.Infow("transaction persisted",
		"transaction_id", txn.TransactionID,
		"account_id", txn.AccountID,
		"amount", txn.Amount,
		"type", txn.Type,
	)
	return nil
}

// TransactionReadRepository serves ledger reads: caller-scoped listings and
// the closed-interval range scan used by budget aggregation.
type TransactionReadRepository struct {
	db *sqlx.DB
}

func NewTransactionReadRepository(db *sqlx.DB) *TransactionReadRepository {
	return &TransactionReadRepository{db: db}
}

// ListByUser returns the user's transactions, newest first, optionally
// filtered to a single account.
func (r *TransactionReadRepository) ListByUser(ctx context.Context, userID uuid.UUID, accountID *uuid.UUID) ([]models.TransactionDB, error) {
	const query = `
		SELECT transaction_id, account_id, user_id, amount, currency, type, description, spending_type, tx_hash, created_at
		FROM transactions
		WHERE user_id = $1
		  AND ($2::UUID IS NULL OR account_id = $2)
		ORDER BY created_at DESC
	`

	var txns []models.TransactionDB
	err := r.db.SelectContext(ctx, &txns, query, userID, accountID)

	logger.Log.Infow("list transactions",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID, accountID},
		"count", len(txns),
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return txns, nil
}

// ListByAccountWindow returns the account's transactions whose created_at
// falls inside the closed interval [from, to]. Both endpoints are inclusive.
// The scan honors ctx cancellation through the driver.
func (r *TransactionReadRepository) ListByAccountWindow(ctx context.Context, accountID uuid.UUID, from, to time.Time) ([]models.TransactionDB, error) {
	const query = `
		SELECT transaction_id, account_id, user_id, amount, currency, type, description, spending_type, tx_hash, created_at
		FROM transactions
		WHERE account_id = $1
		  AND created_at >= $2
		  AND created_at <= $3
		ORDER BY created_at
	`

	var txns []models.TransactionDB
	err := r.db.SelectContext(ctx, &txns, query, accountID, from, to)

	logger.Log.Infow("scan transaction window",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{accountID, from, to},
		"count", len(txns),
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return txns, nil
}
