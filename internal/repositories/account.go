package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-transaction-ledger/internal/logger"
)

// AccountReadRepository probes the externally owned accounts table.
// This service never writes accounts; the probe backs the optional
// ownership check on the recording path.
type AccountReadRepository struct {
	db *sqlx.DB
}

func NewAccountReadRepository(db *sqlx.DB) *AccountReadRepository {
	return &AccountReadRepository{db: db}
}

// Exists reports whether the account exists and belongs to the given user.
func (r *AccountReadRepository) Exists(ctx context.Context, accountID, userID uuid.UUID) (bool, error) {
	const query = `
		SELECT account_id
		FROM accounts
		WHERE account_id = $1 AND user_id = $2
		LIMIT 1
	`

	var found uuid.UUID
	err := r.db.GetContext(ctx, &found, query, accountID, userID)

	logger.Log.Debugw("account probe",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{accountID, userID},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
