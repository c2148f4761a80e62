package event_bus

import (
	"time"

	"github.com/google/uuid"
)

const (
	ExpenseCreatedEvent EventType = "expense.created"
	ExpenseDeletedEvent EventType = "expense.deleted"
)

type ExpenseCreated struct {
	ID       uuid.UUID
	Title    string
	Category string
	Date     time.Time
}

type ExpenseDeleted struct {
	ID uuid.UUID
}
