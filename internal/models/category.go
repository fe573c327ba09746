package models

import "strings"

// Category is the closed set of budgeting categories a transaction's
// spending label can resolve to. Anything outside the set, including an
// absent label, resolves to CategoryUncategorized rather than an error.
type Category string

const (
	CategoryFun           Category = "Fun"
	CategoryFixed         Category = "Fixed"
	CategoryFuture        Category = "Future"
	CategoryUncategorized Category = "Uncategorized"
)

// ClassifyCategory maps a free-form spending label onto the category set.
// The label is trimmed and matched case-insensitively. Pure and total:
// every input yields a category, never an error.
func ClassifyCategory(label string) Category {
	switch trimmed := strings.TrimSpace(label); {
	case strings.EqualFold(trimmed, string(CategoryFun)):
		return CategoryFun
	case strings.EqualFold(trimmed, string(CategoryFixed)):
		return CategoryFixed
	case strings.EqualFold(trimmed, string(CategoryFuture)):
		return CategoryFuture
	default:
		return CategoryUncategorized
	}
}
