package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-transaction-ledger/internal/logger"
	"github.com/sbilibin2017/gw-transaction-ledger/internal/models"
)

// ListTransactionsTokener defines only the token methods this handler needs.
type ListTransactionsTokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetUserID(ctx context.Context, tokenString string) (uuid.UUID, error)
}

// TransactionLister defines the interface that the service must implement.
type TransactionLister interface {
	List(ctx context.Context, userID uuid.UUID, accountID *uuid.UUID) ([]models.TransactionDB, error)
}

// NewListTransactionsHandler returns an HTTP handler listing the caller's
// transactions, newest first.
// @Summary List transactions
// @Description Returns the caller's transactions ordered newest first, optionally filtered by account.
// @Tags transactions
// @Produce json
// @Param accountId query string false "Account filter"
// @Success 200 {array} handlers.TransactionResponse "Transactions"
// @Failure 400 {object} handlers.CreateTransactionErrorResponse "Invalid account filter"
// @Failure 401 {object} handlers.CreateTransactionErrorResponse "Unauthorized"
// @Router /transactions [get]
// @Security BearerAuth
func NewListTransactionsHandler(
	svc TransactionLister,
	tokenGetter ListTransactionsTokener,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		tokenStr, err := tokenGetter.GetTokenFromRequest(ctx, r)
		if err != nil {
			logger.Log.Errorw("failed to get token from request", "error", err)
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		userID, err := tokenGetter.GetUserID(ctx, tokenStr)
		if err != nil {
			logger.Log.Errorw("failed to get user id from token", "error", err)
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		var accountID *uuid.UUID
		if raw := r.URL.Query().Get("accountId"); raw != "" {
			parsed, err := uuid.Parse(raw)
			if err != nil {
				logger.Log.Warnw("invalid account filter", "accountId", raw)
				writeError(w, http.StatusBadRequest, "Invalid accountId")
				return
			}
			accountID = &parsed
		}

		txns, err := svc.List(ctx, userID, accountID)
		if err != nil {
			logger.Log.Errorw("failed to list transactions", "user_id", userID, "error", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		resp := make([]TransactionResponse, 0, len(txns))
		for i := range txns {
			resp = append(resp, newTransactionResponse(&txns[i]))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(resp)
	}
}
