package expense

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound          = errors.New("expense not found")
	ErrEmptyTitle        = errors.New("expense title must not be empty")
	ErrNonPositiveAmount = errors.New("expense amount must be positive")
)

// Expense is a single ledger transaction. Date carries calendar-day
// granularity; the time of day is not significant.
type Expense struct {
	ID       uuid.UUID
	Title    string
	Amount   decimal.Decimal
	Category string
	Date     time.Time
}

// InMonth reports whether the expense date falls in the same calendar
// year and month as the given reference date.
func (e Expense) InMonth(month time.Time) bool {
	return e.Date.Year() == month.Year() && e.Date.Month() == month.Month()
}
