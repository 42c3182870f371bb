package storage

import (
	"context"

	"github.com/GustavoCaso/expensetrace/internal/expense"
)

type NotFoundError struct{}

func (e *NotFoundError) Error() string {
	return "snapshot not found"
}

// Snapshot keeps a full copy of the ledger outside the CSV file.
type Snapshot interface {
	// SaveSnapshot replaces the stored copy with expenses and returns the
	// number of rows written.
	SaveSnapshot(ctx context.Context, expenses []expense.Expense) (int64, error)
	// LoadSnapshot returns the stored copy in its original order, or a
	// *NotFoundError when nothing was saved yet.
	LoadSnapshot(ctx context.Context) ([]expense.Expense, error)

	// Resource managment
	Close() error
}
