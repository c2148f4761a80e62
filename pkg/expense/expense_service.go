package expense

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/simplespend/simplespend/internal/event_bus"
)

type Service interface {
	// Create validates and stores a new expense and returns it with its
	// generated identity. Nothing is written when validation fails.
	Create(ctx context.Context, title string, amount decimal.Decimal, category string, date time.Time) (Expense, error)
	List(ctx context.Context) ([]Expense, error)
	Get(ctx context.Context, id uuid.UUID) (Expense, error)
	Update(ctx context.Context, id uuid.UUID, update ExpenseUpdate) (Expense, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteMany(ctx context.Context, ids []uuid.UUID) error
}

// ExpenseUpdate carries partial field changes for an expense. Nil fields
// are left untouched. Edits are applied as-is, mirroring the permissive
// detail view: no validation beyond field types.
type ExpenseUpdate struct {
	Title    *string
	Amount   *decimal.Decimal
	Category *string
	Date     *time.Time
}

type ServiceImpl struct {
	repo ExpenseRepo
	bus  *event_bus.EventBus
}

func NewExpenseService(repo ExpenseRepo, bus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, bus: bus}
}

func (s *ServiceImpl) Create(ctx context.Context, title string, amount decimal.Decimal, category string, date time.Time) (Expense, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Expense{}, ErrEmptyTitle
	}
	if !amount.IsPositive() {
		return Expense{}, ErrNonPositiveAmount
	}

	expense := Expense{
		ID:       uuid.New(),
		Title:    title,
		Amount:   amount,
		Category: category,
		Date:     date,
	}

	if err := s.repo.Store(ctx, expense); err != nil {
		return Expense{}, err
	}

	s.publish(ctx, event_bus.ExpenseCreatedEvent, event_bus.ExpenseCreated{
		ID:       expense.ID,
		Title:    expense.Title,
		Category: expense.Category,
		Date:     expense.Date,
	})

	return expense, nil
}

func (s *ServiceImpl) List(ctx context.Context) ([]Expense, error) {
	return s.repo.GetAll(ctx)
}

func (s *ServiceImpl) Get(ctx context.Context, id uuid.UUID) (Expense, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ServiceImpl) Update(ctx context.Context, id uuid.UUID, update ExpenseUpdate) (Expense, error) {
	expense, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return Expense{}, err
	}

	if update.Title != nil {
		expense.Title = *update.Title
	}
	if update.Amount != nil {
		expense.Amount = *update.Amount
	}
	if update.Category != nil {
		expense.Category = *update.Category
	}
	if update.Date != nil {
		expense.Date = *update.Date
	}

	updated, err := s.repo.Update(ctx, expense)
	if err != nil {
		return Expense{}, err
	}
	if !updated {
		log.Warnf("expense %s disappeared between read and update", id)
		return Expense{}, ErrNotFound
	}

	return expense, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, event_bus.ExpenseDeletedEvent, event_bus.ExpenseDeleted{ID: id})
	return nil
}

func (s *ServiceImpl) DeleteMany(ctx context.Context, ids []uuid.UUID) error {
	if err := s.repo.DeleteMany(ctx, ids); err != nil {
		return err
	}
	for _, id := range ids {
		s.publish(ctx, event_bus.ExpenseDeletedEvent, event_bus.ExpenseDeleted{ID: id})
	}
	return nil
}

// publish notifies subscribers without failing the originating write:
// the record mutation has already been committed at this point.
func (s *ServiceImpl) publish(ctx context.Context, eventType event_bus.EventType, data any) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(event_bus.NewEvent(ctx, eventType, data)); err != nil {
		log.Warnf("failed to publish %s event: %v", eventType, err)
	}
}
