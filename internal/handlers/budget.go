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

// BudgetTokener defines only the token methods this handler needs.
type BudgetTokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetUserID(ctx context.Context, tokenString string) (uuid.UUID, error)
}

// BudgetAggregator defines the interface that the service must implement.
type BudgetAggregator interface {
	Aggregate(ctx context.Context, accountID uuid.UUID, from, to time.Time) (*models.BudgetSummary, error)
}

// BudgetPeriod echoes the aggregation window
// swagger:model BudgetPeriod
type BudgetPeriod struct {
	// Window start, inclusive
	From time.Time `json:"from"`

	// Window end, inclusive
	To time.Time `json:"to"`
}

// BudgetResponse represents per-category totals for a window
// swagger:model BudgetResponse
type BudgetResponse struct {
	Fun    decimal.Decimal `json:"fun"`
	Fixed  decimal.Decimal `json:"fixed"`
	Future decimal.Decimal `json:"future"`
	Total  decimal.Decimal `json:"total"`
	Period BudgetPeriod    `json:"period"`
}

// BudgetErrorResponse represents an error response for budget aggregation
// swagger:model BudgetErrorResponse
type BudgetErrorResponse struct {
	// Error message
	// example: Invalid aggregation window
	Error string `json:"error"`
}

// NewBudgetHandler returns an HTTP handler computing per-category totals.
// @Summary Aggregate budget categories
// @Description Sums the account's transactions inside the closed [from, to] window by budgeting category. Uncategorized transactions are excluded.
// @Tags budget
// @Produce json
// @Param accountId query string true "Account identifier"
// @Param from query string true "Window start, RFC3339, inclusive"
// @Param to query string true "Window end, RFC3339, inclusive"
// @Success 200 {object} handlers.BudgetResponse "Aggregated totals"
// @Failure 400 {object} handlers.BudgetErrorResponse "Invalid account or window"
// @Failure 401 {object} handlers.BudgetErrorResponse "Unauthorized"
// @Router /budget [get]
// @Security BearerAuth
func NewBudgetHandler(
	svc BudgetAggregator,
	tokenGetter BudgetTokener,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		tokenStr, err := tokenGetter.GetTokenFromRequest(ctx, r)
		if err != nil {
			logger.Log.Errorw("failed to get token from request", "error", err)
			writeBudgetError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		if _, err := tokenGetter.GetUserID(ctx, tokenStr); err != nil {
			logger.Log.Errorw("failed to get user id from token", "error", err)
			writeBudgetError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		query := r.URL.Query()

		accountID, err := uuid.Parse(query.Get("accountId"))
		if err != nil || accountID == uuid.Nil {
			logger.Log.Warnw("invalid accountId", "accountId", query.Get("accountId"))
			writeBudgetError(w, http.StatusBadRequest, "Invalid accountId")
			return
		}

		from, err := time.Parse(time.RFC3339, query.Get("from"))
		if err != nil {
			logger.Log.Warnw("invalid from instant", "from", query.Get("from"))
			writeBudgetError(w, http.StatusBadRequest, "Invalid from instant")
			return
		}
		to, err := time.Parse(time.RFC3339, query.Get("to"))
		if err != nil {
			logger.Log.Warnw("invalid to instant", "to", query.Get("to"))
			writeBudgetError(w, http.StatusBadRequest, "Invalid to instant")
			return
		}

		summary, err := svc.Aggregate(ctx, accountID, from, to)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidWindow), errors.Is(err, services.ErrInvalidAccountID):
				writeBudgetError(w, http.StatusBadRequest, err.Error())
			case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
				// Client went away or timed out mid-scan.
				writeBudgetError(w, http.StatusServiceUnavailable, "Request canceled")
			default:
				logger.Log.Errorw("failed to aggregate budget", "account_id", accountID, "error", err)
				writeBudgetError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		resp := BudgetResponse{
			Fun:    summary.Fun,
			Fixed:  summary.Fixed,
			Future: summary.Future,
			Total:  summary.Total,
			Period: BudgetPeriod{From: summary.Period.From, To: summary.Period.To},
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(resp)
	}
}

func writeBudgetError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(BudgetErrorResponse{Error: msg})
}
