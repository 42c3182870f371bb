package sqlite

import (
	"context"
	"fmt"

	"github.com/GustavoCaso/expensetrace/internal/date"
	"github.com/GustavoCaso/expensetrace/internal/expense"
	"github.com/GustavoCaso/expensetrace/internal/storage"
)

type ErrInsert struct {
	expense expense.Expense
	err     error
}

func (e ErrInsert) Error() string {
	return fmt.Sprintf("error when trying to insert expense\n expense: %+v\n err: %v", e.expense, e.err)
}

func (e ErrInsert) Unwrap() error {
	return e.err
}

// SaveSnapshot deletes every stored row and inserts expenses in order, in a
// single transaction.
func (s *Storage) SaveSnapshot(ctx context.Context, expenses []expense.Expense) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err = tx.ExecContext(ctx, "DELETE FROM expenses"); err != nil {
		return 0, err
	}

	insertStmt, err := tx.PrepareContext(ctx,
		"INSERT INTO expenses(date, amount, category, description) VALUES(?, ?, ?, ?)")
	if err != nil {
		return 0, err
	}
	defer insertStmt.Close()

	var count int64
	for _, ex := range expenses {
		_, err = insertStmt.ExecContext(ctx, ex.Date.String(), ex.Amount, ex.Category, ex.Description)
		if err != nil {
			return 0, ErrInsert{expense: ex, err: err}
		}
		count++
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}

	return count, nil
}

// LoadSnapshot returns the stored expenses ordered as they were saved.
func (s *Storage) LoadSnapshot(ctx context.Context) ([]expense.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT date, amount, category, description FROM expenses ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := []expense.Expense{}

	for rows.Next() {
		var ex expense.Expense
		var rawDate string

		if err := rows.Scan(&rawDate, &ex.Amount, &ex.Category, &ex.Description); err != nil {
			return nil, err
		}

		ex.Date, err = date.Parse(rawDate)
		if err != nil {
			return nil, fmt.Errorf("corrupted snapshot row: %w", err)
		}

		expenses = append(expenses, ex)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(expenses) == 0 {
		return nil, &storage.NotFoundError{}
	}

	return expenses, nil
}

var _ storage.Snapshot = (*Storage)(nil)
