package expense

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

const (
	dateLayout      = "2006-01-02"
	createdAtLayout = "2006-01-02 15:04:05.000000000"
)

type ExpenseRepo interface {
	// Store stores a new Expense to the database
	Store(ctx context.Context, expense Expense) error
	FindByID(ctx context.Context, id uuid.UUID) (Expense, error)
	// GetAll returns all expenses sorted by date descending. Expenses
	// sharing a date come back newest insertion first.
	GetAll(ctx context.Context) ([]Expense, error)
	Update(ctx context.Context, expense Expense) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteMany(ctx context.Context, ids []uuid.UUID) error
}

type ExpenseRepoImpl struct {
	db *sql.DB
}

func NewExpenseRepo(db *sql.DB) *ExpenseRepoImpl {
	return &ExpenseRepoImpl{db: db}
}

func (r *ExpenseRepoImpl) Store(ctx context.Context, expense Expense) error {
	query := `INSERT INTO expense (id, title, amount, category, date, created_at) VALUES (?, ?, ?, ?, ?, ?)`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %w", err)
		log.Error(err)
		return err
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx,
		expense.ID.String(),
		expense.Title,
		expense.Amount.String(),
		expense.Category,
		expense.Date.Format(dateLayout),
		time.Now().UTC().Format(createdAtLayout),
	)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return err
	}

	return nil
}

func (r *ExpenseRepoImpl) FindByID(ctx context.Context, id uuid.UUID) (Expense, error) {
	query := `SELECT id, title, amount, category, date FROM expense WHERE id = ?`

	row := r.db.QueryRowContext(ctx, query, id.String())
	expense, err := scanExpense(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return Expense{}, ErrNotFound
	} else if err != nil {
		err := fmt.Errorf("could not find expense %s: %w", id, err)
		log.Error(err)
		return Expense{}, err
	}

	return expense, nil
}

func (r *ExpenseRepoImpl) GetAll(ctx context.Context) ([]Expense, error) {
	query := `SELECT id, title, amount, category, date FROM expense ORDER BY date DESC, created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query expenses: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var expenses []Expense
	for rows.Next() {
		expense, err := scanExpense(rows.Scan)
		if err != nil {
			err := fmt.Errorf("could not scan expense: %w", err)
			log.Error(err)
			return nil, err
		}
		expenses = append(expenses, expense)
	}

	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}

	return expenses, nil
}

func (r *ExpenseRepoImpl) Update(ctx context.Context, expense Expense) (bool, error) {
	query := `UPDATE expense SET
                  title = ?,
                  amount = ?,
                  category = ?,
                  date = ?
              WHERE id = ?`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %w", err)
		log.Error(err)
		return false, err
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx,
		expense.Title,
		expense.Amount.String(),
		expense.Category,
		expense.Date.Format(dateLayout),
		expense.ID.String(),
	)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}

	return rowsAffected == 1, nil
}

// Delete removes the expense with the given id. Deleting an id that is
// already absent is a no-op, not an error.
func (r *ExpenseRepoImpl) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM expense WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id.String())
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return err
	}
	if rowsAffected == 0 {
		log.Debugf("expense %s already absent, nothing deleted", id)
	}

	return nil
}

// DeleteMany removes all given ids in one statement. Absent ids are ignored.
func (r *ExpenseRepoImpl) DeleteMany(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	query := fmt.Sprintf(`DELETE FROM expense WHERE id IN (%s)`, placeholders)

	args := make([]any, 0, len(ids))
	for _, id := range ids {
		args = append(args, id.String())
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return err
	}

	return nil
}

func scanExpense(scan func(dest ...any) error) (Expense, error) {
	var expense Expense
	var id, amount, date string
	if err := scan(&id, &expense.Title, &amount, &expense.Category, &date); err != nil {
		return Expense{}, err
	}

	parsedID, err := uuid.Parse(id)
	if err != nil {
		return Expense{}, fmt.Errorf("could not parse expense id: %w", err)
	}
	expense.ID = parsedID

	parsedAmount, err := decimal.NewFromString(amount)
	if err != nil {
		return Expense{}, fmt.Errorf("could not parse expense amount: %w", err)
	}
	expense.Amount = parsedAmount

	parsedDate, err := time.Parse(dateLayout, date)
	if err != nil {
		return Expense{}, fmt.Errorf("could not parse expense date: %w", err)
	}
	expense.Date = parsedDate

	return expense, nil
}
