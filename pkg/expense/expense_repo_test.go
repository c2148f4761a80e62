package expense

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/simplespend/simplespend/internal/test_utils"
)

func setupTestRepository(t *testing.T) (context.Context, *ExpenseRepoImpl) {
	ctx := context.Background()
	db := test_utils.SetupTestDB(t)
	return ctx, NewExpenseRepo(db)
}

func storedExpense(title string, amount string, category string, d time.Time) Expense {
	return Expense{
		ID:       uuid.New(),
		Title:    title,
		Amount:   decimal.RequireFromString(amount),
		Category: category,
		Date:     d,
	}
}

func TestExpenseRepoImpl_StoreAndFindByID(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)
	expense := storedExpense("Groceries", "42.50", "식비", date(2026, time.May, 10))

	// when
	err := repo.Store(ctx, expense)
	require.NoError(t, err)

	// then
	found, err := repo.FindByID(ctx, expense.ID)
	require.NoError(t, err)
	assert.Equal(t, expense.ID, found.ID)
	assert.Equal(t, "Groceries", found.Title)
	assert.True(t, found.Amount.Equal(expense.Amount))
	assert.Equal(t, "식비", found.Category)
	assert.True(t, found.Date.Equal(expense.Date))
}

func TestExpenseRepoImpl_FindByID_NotFound(t *testing.T) {
	ctx, repo := setupTestRepository(t)

	_, err := repo.FindByID(ctx, uuid.New())

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExpenseRepoImpl_GetAll_SortsByDateDescending(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)
	april := storedExpense("April", "1", "기타", date(2026, time.April, 5))
	june := storedExpense("June", "2", "기타", date(2026, time.June, 15))
	may := storedExpense("May", "3", "기타", date(2026, time.May, 20))
	for _, e := range []Expense{april, june, may} {
		require.NoError(t, repo.Store(ctx, e))
	}

	// when
	all, err := repo.GetAll(ctx)

	// then
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, june.ID, all[0].ID)
	assert.Equal(t, may.ID, all[1].ID)
	assert.Equal(t, april.ID, all[2].ID)
}

func TestExpenseRepoImpl_GetAll_NewestInsertionFirstWithinSameDate(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)
	sameDay := date(2026, time.May, 20)
	first := storedExpense("First", "1", "기타", sameDay)
	second := storedExpense("Second", "2", "기타", sameDay)
	require.NoError(t, repo.Store(ctx, first))
	require.NoError(t, repo.Store(ctx, second))

	// when
	all, err := repo.GetAll(ctx)

	// then
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)
	assert.Equal(t, first.ID, all[1].ID)
}

func TestExpenseRepoImpl_Update(t *testing.T) {
	t.Run("should overwrite all fields of an existing expense", func(t *testing.T) {
		// given
		ctx, repo := setupTestRepository(t)
		expense := storedExpense("Groceries", "42.50", "식비", date(2026, time.May, 10))
		require.NoError(t, repo.Store(ctx, expense))

		expense.Title = "Late groceries"
		expense.Amount = decimal.RequireFromString("48.00")
		expense.Date = date(2026, time.May, 11)

		// when
		updated, err := repo.Update(ctx, expense)

		// then
		require.NoError(t, err)
		assert.True(t, updated)
		found, err := repo.FindByID(ctx, expense.ID)
		require.NoError(t, err)
		assert.Equal(t, "Late groceries", found.Title)
		assert.True(t, found.Amount.Equal(expense.Amount))
		assert.True(t, found.Date.Equal(expense.Date))
	})

	t.Run("should report false for an unknown id", func(t *testing.T) {
		ctx, repo := setupTestRepository(t)

		updated, err := repo.Update(ctx, storedExpense("Ghost", "1", "기타", date(2026, time.May, 10)))

		require.NoError(t, err)
		assert.False(t, updated)
	})
}

func TestExpenseRepoImpl_Delete_IsIdempotent(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)
	expense := storedExpense("Groceries", "42.50", "식비", date(2026, time.May, 10))
	require.NoError(t, repo.Store(ctx, expense))

	// when
	firstErr := repo.Delete(ctx, expense.ID)
	secondErr := repo.Delete(ctx, expense.ID)

	// then
	assert.NoError(t, firstErr)
	assert.NoError(t, secondErr)
	_, err := repo.FindByID(ctx, expense.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExpenseRepoImpl_DeleteMany(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)
	keep := storedExpense("Keep", "1", "기타", date(2026, time.May, 1))
	dropA := storedExpense("Drop A", "2", "기타", date(2026, time.May, 2))
	dropB := storedExpense("Drop B", "3", "기타", date(2026, time.May, 3))
	for _, e := range []Expense{keep, dropA, dropB} {
		require.NoError(t, repo.Store(ctx, e))
	}

	// when: one of the ids is already absent
	err := repo.DeleteMany(ctx, []uuid.UUID{dropA.ID, dropB.ID, uuid.New()})

	// then
	require.NoError(t, err)
	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, keep.ID, all[0].ID)
}
