package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetWindow is the closed [From, To] interval a summary was computed over.
type BudgetWindow struct {
	From time.Time `json:"from"` // Window start, inclusive
	To   time.Time `json:"to"`   // Window end, inclusive
}

// BudgetSummary holds per-category totals for one account over a window.
// Derived per request, never persisted. Total is exactly Fun+Fixed+Future;
// uncategorized transactions contribute to no bucket and not to Total.
type BudgetSummary struct {
	Fun    decimal.Decimal `json:"fun"`    // Total of Fun-labeled transactions
	Fixed  decimal.Decimal `json:"fixed"`  // Total of Fixed-labeled transactions
	Future decimal.Decimal `json:"future"` // Total of Future-labeled transactions
	Total  decimal.Decimal `json:"total"`  // Sum of the three buckets
	Period BudgetWindow    `json:"period"` // Echo of the requested window
}
