package expense

import (
	"context"
	"sort"

	"github.com/google/uuid"
)

type StubExpenseRepo struct {
	data  map[uuid.UUID]Expense
	order []uuid.UUID
}

func NewStubExpenseRepo() *StubExpenseRepo {
	return &StubExpenseRepo{data: map[uuid.UUID]Expense{}}
}

func (s *StubExpenseRepo) Store(ctx context.Context, expense Expense) error {
	s.data[expense.ID] = expense
	s.order = append(s.order, expense.ID)
	return nil
}

func (s *StubExpenseRepo) FindByID(ctx context.Context, id uuid.UUID) (Expense, error) {
	expense, ok := s.data[id]
	if !ok {
		return Expense{}, ErrNotFound
	}
	return expense, nil
}

func (s *StubExpenseRepo) GetAll(ctx context.Context) ([]Expense, error) {
	expenses := make([]Expense, 0, len(s.data))
	// newest insertion first, like the real repo
	for i := len(s.order) - 1; i >= 0; i-- {
		if expense, ok := s.data[s.order[i]]; ok {
			expenses = append(expenses, expense)
		}
	}
	sort.SliceStable(expenses, func(i, j int) bool {
		return expenses[i].Date.After(expenses[j].Date)
	})
	return expenses, nil
}

func (s *StubExpenseRepo) Update(ctx context.Context, expense Expense) (bool, error) {
	if _, ok := s.data[expense.ID]; !ok {
		return false, nil
	}
	s.data[expense.ID] = expense
	return true, nil
}

func (s *StubExpenseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(s.data, id)
	return nil
}

func (s *StubExpenseRepo) DeleteMany(ctx context.Context, ids []uuid.UUID) error {
	for _, id := range ids {
		delete(s.data, id)
	}
	return nil
}

func (s *StubExpenseRepo) Cleanup() {
	s.data = map[uuid.UUID]Expense{}
	s.order = nil
}
