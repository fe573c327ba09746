package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-transaction-ledger/internal/logger"
	"github.com/sbilibin2017/gw-transaction-ledger/internal/models"
	"github.com/shopspring/decimal"
)

// ErrInvalidWindow is returned when from/to are unset or inverted.
// It is a caller error and is raised before any store access.
var ErrInvalidWindow = errors.New("aggregation window must have from <= to with both set")

// WindowReader scans the ledger for one account over a closed interval.
type WindowReader interface {
	ListByAccountWindow(ctx context.Context, accountID uuid.UUID, from, to time.Time) ([]models.TransactionDB, error)
}

// BudgetService reduces a time-bounded slice of one account's ledger into
// per-category totals. Stateless: every call recomputes from the store.
type BudgetService struct {
	reader WindowReader
}

func NewBudgetService(reader WindowReader) *BudgetService {
	return &BudgetService{reader: reader}
}

// Aggregate sums the account's transactions inside [from, to] by budgeting
// category. Uncategorized transactions contribute to no bucket and not to
// the total, so Total is exactly Fun+Fixed+Future. The read is a
// point-in-time snapshot; concurrent writers may or may not be observed.
func (svc *BudgetService) Aggregate(ctx context.Context, accountID uuid.UUID, from, to time.Time) (*models.BudgetSummary, error) {
	if accountID == uuid.Nil {
		return nil, ErrInvalidAccountID
	}
	if from.IsZero() || to.IsZero() || from.After(to) {
		return nil, ErrInvalidWindow
	}

	txns, err := svc.reader.ListByAccountWindow(ctx, accountID, from, to)
	if err != nil {
		logger.Log.Errorw("failed to scan transaction window",
			"account_id", accountID, "from", from, "to", to, "error", err)
		return nil, err
	}

	summary := models.BudgetSummary{
		Fun:    decimal.Zero,
		Fixed:  decimal.Zero,
		Future: decimal.Zero,
		Period: models.BudgetWindow{From: from, To: to},
	}

	for _, txn := range txns {
		var label string
		if txn.SpendingType != nil {
			label = *txn.SpendingType
		}

		switch models.ClassifyCategory(label) {
		case models.CategoryFun:
			summary.Fun = summary.Fun.Add(txn.Amount)
		case models.CategoryFixed:
			summary.Fixed = summary.Fixed.Add(txn.Amount)
		case models.CategoryFuture:
			summary.Future = summary.Future.Add(txn.Amount)
		case models.CategoryUncategorized:
			// Excluded from every bucket and from the total.
		}
	}

	summary.Total = summary.Fun.Add(summary.Fixed).Add(summary.Future)
	return &summary, nil
}
