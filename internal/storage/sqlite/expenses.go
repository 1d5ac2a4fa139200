package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage"
)

// CreateExpense persists a new expense to the database.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	// Generate ID if not set
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.Date.IsZero() {
		expense.Date = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO expenses (id, title, amount, payer, category, date) VALUES (?, ?, ?, ?, ?, ?)",
		expense.ID, expense.Title, expense.Amount, expense.Payer, string(expense.Category), toNanos(expense.Date),
	)
	if err != nil {
		return execError("insert expense", err)
	}

	s.Publish(storage.CollectionExpenses)
	return nil
}

// GetExpense retrieves an expense by ID.
func (s *SQLiteStore) GetExpense(ctx context.Context, id string) (*models.Expense, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, title, amount, payer, category, date FROM expenses WHERE id = ?",
		id,
	)
	expense, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.NotFound(storage.CollectionExpenses, id)
	}
	if err != nil {
		return nil, storage.Unavailable("get expense", err)
	}
	return expense, nil
}

// UpdateExpense replaces the editable fields of an existing expense.
func (s *SQLiteStore) UpdateExpense(ctx context.Context, expense *models.Expense) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE expenses SET title = ?, amount = ?, payer = ?, category = ? WHERE id = ?",
		expense.Title, expense.Amount, expense.Payer, string(expense.Category), expense.ID,
	)
	if err != nil {
		return execError("update expense", err)
	}
	if err := rowsAffected(res, storage.CollectionExpenses, expense.ID, "update expense"); err != nil {
		return err
	}

	s.Publish(storage.CollectionExpenses)
	return nil
}

// DeleteExpense removes an expense by ID.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", id)
	if err != nil {
		return execError("delete expense", err)
	}
	if err := rowsAffected(res, storage.CollectionExpenses, id, "delete expense"); err != nil {
		return err
	}

	s.Publish(storage.CollectionExpenses)
	return nil
}

// ListExpenses returns all expenses ordered by date, newest first.
func (s *SQLiteStore) ListExpenses(ctx context.Context) ([]models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, title, amount, payer, category, date FROM expenses ORDER BY date DESC, rowid DESC",
	)
	if err != nil {
		return nil, storage.Unavailable("list expenses", err)
	}
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, storage.Unavailable("scan expense", err)
		}
		expenses = append(expenses, *expense)
	}
	if err := rows.Err(); err != nil {
		return nil, storage.Unavailable("iterate expenses", err)
	}

	return expenses, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanExpense(row scanner) (*models.Expense, error) {
	var (
		expense  models.Expense
		category string
		date     int64
	)
	if err := row.Scan(&expense.ID, &expense.Title, &expense.Amount, &expense.Payer, &category, &date); err != nil {
		return nil, err
	}
	expense.Category = models.Category(category)
	expense.Date = fromNanos(date)
	return &expense, nil
}
