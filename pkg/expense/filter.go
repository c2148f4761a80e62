package expense

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Filters narrows a ledger snapshot down to the visible subset.
// Month is always applied; Category and Text are skipped when empty.
type Filters struct {
	Month    time.Time
	Category string
	Text     string
}

type FilterResult struct {
	Expenses []Expense
	Total    decimal.Decimal
}

// Filter applies the month, category, and text passes in order over the
// given snapshot and sums the amounts of what survives. Each pass keeps
// the relative order of its input, so the result preserves the snapshot
// ordering. Filter has no hidden state: identical inputs always produce
// identical results.
func Filter(expenses []Expense, f Filters) FilterResult {
	filtered := make([]Expense, 0, len(expenses))
	for _, e := range expenses {
		if e.InMonth(f.Month) {
			filtered = append(filtered, e)
		}
	}

	if f.Category != "" {
		filtered = keepMatching(filtered, func(e Expense) bool {
			return e.Category == f.Category
		})
	}

	if text := strings.TrimSpace(f.Text); text != "" {
		needle := strings.ToLower(text)
		filtered = keepMatching(filtered, func(e Expense) bool {
			return strings.Contains(strings.ToLower(e.Title), needle) ||
				strings.Contains(strings.ToLower(e.Category), needle)
		})
	}

	total := decimal.Zero
	for _, e := range filtered {
		total = total.Add(e.Amount)
	}

	return FilterResult{Expenses: filtered, Total: total}
}

func keepMatching(expenses []Expense, match func(Expense) bool) []Expense {
	kept := make([]Expense, 0, len(expenses))
	for _, e := range expenses {
		if match(e) {
			kept = append(kept, e)
		}
	}
	return kept
}
