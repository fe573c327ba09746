package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-transaction-ledger/internal/logger"
	"github.com/sbilibin2017/gw-transaction-ledger/internal/models"
	"github.com/sbilibin2017/gw-transaction-ledger/internal/services"
	"github.com/shopspring/decimal"
)

// CreateTransactionTokener defines only the token methods this handler needs.
type CreateTransactionTokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetUserID(ctx context.Context, tokenString string) (uuid.UUID, error)
}

// TransactionRecorder defines the interface that the service must implement.
type TransactionRecorder interface {
	Record(ctx context.Context, userID uuid.UUID, p services.RecordParams) (*models.TransactionDB, error)
}

// CreateTransactionRequest represents the JSON body for recording a transaction
// swagger:model CreateTransactionRequest
type CreateTransactionRequest struct {
	// Target account identifier
	// required: true
	AccountID uuid.UUID `json:"accountId"`

	// Monetary amount, 2-decimal precision
	// required: true
	// example: 15.00
	Amount decimal.Decimal `json:"amount"`

	// ISO-4217 currency code; the configured default applies when omitted
	// example: USD
	Currency string `json:"currency,omitempty"`

	// Operation kind, credit or debit
	// required: true
	// example: debit
	Type string `json:"type"`

	// Human-readable description
	// required: true
	// example: groceries
	Description string `json:"description"`

	// Optional budgeting label (Fun, Fixed, Future)
	SpendingType *string `json:"spendingType,omitempty"`

	// Optional external reference, e.g. an on-chain transaction hash
	TxHash *string `json:"txHash,omitempty"`
}

// TransactionResponse represents a recorded transaction
// swagger:model TransactionResponse
type TransactionResponse struct {
	ID           uuid.UUID       `json:"id"`
	AccountID    uuid.UUID       `json:"accountId"`
	UserID       uuid.UUID       `json:"userId"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	Type         string          `json:"type"`
	Description  string          `json:"description"`
	SpendingType *string         `json:"spendingType,omitempty"`
	TxHash       *string         `json:"txHash,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// CreateTransactionErrorResponse represents an error response
// swagger:model CreateTransactionErrorResponse
type CreateTransactionErrorResponse struct {
	// Error message
	// example: Invalid transaction type
	Error string `json:"error"`
}

func newTransactionResponse(txn *models.TransactionDB) TransactionResponse {
	return TransactionResponse{
		ID:           txn.TransactionID,
		AccountID:    txn.AccountID,
		UserID:       txn.UserID,
		Amount:       txn.Amount,
		Currency:     txn.Currency,
		Type:         string(txn.Type),
		Description:  txn.Description,
		SpendingType: txn.SpendingType,
		TxHash:       txn.TxHash,
		CreatedAt:    txn.CreatedAt,
	}
}

// NewCreateTransactionHandler returns an HTTP handler recording a transaction.
// @Summary Record a transaction
// @Description Persists an immutable transaction for the caller and stages a TransactionCreated event for delivery.
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body handlers.CreateTransactionRequest true "Transaction intent"
// @Success 200 {object} handlers.TransactionResponse "Transaction recorded"
// @Failure 400 {object} handlers.CreateTransactionErrorResponse "Invalid request"
// @Failure 401 {object} handlers.CreateTransactionErrorResponse "Unauthorized"
// @Router /transactions [post]
// @Security BearerAuth
func NewCreateTransactionHandler(
	svc TransactionRecorder,
	tokenGetter CreateTransactionTokener,
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

		var req CreateTransactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Log.Errorw("failed to decode transaction request", "error", err)
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		txn, err := svc.Record(ctx, userID, services.RecordParams{
			AccountID:    req.AccountID,
			Amount:       req.Amount,
			Currency:     req.Currency,
			Type:         req.Type,
			Description:  req.Description,
			SpendingType: req.SpendingType,
			TxHash:       req.TxHash,
		})
		if err != nil {
			switch {
			case errors.Is(err, models.ErrUnknownTransactionType),
				errors.Is(err, services.ErrInvalidAccountID),
				errors.Is(err, services.ErrInvalidDescription),
				errors.Is(err, services.ErrInvalidCurrency):
				logger.Log.Warnw("invalid transaction request", "user_id", userID, "error", err)
				writeError(w, http.StatusBadRequest, err.Error())
			case errors.Is(err, services.ErrUnknownAccount):
				logger.Log.Warnw("unknown account", "user_id", userID, "account_id", req.AccountID)
				writeError(w, http.StatusNotFound, err.Error())
			default:
				logger.Log.Errorw("failed to record transaction", "user_id", userID, "error", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(newTransactionResponse(txn))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(CreateTransactionErrorResponse{Error: msg})
}
