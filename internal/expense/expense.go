package expense

import (
	"errors"
	"math"

	"github.com/GustavoCaso/expensetrace/internal/date"
)

// DefaultCategory is assigned when an expense is created without one.
const DefaultCategory = "Uncategorized"

var (
	ErrNegativeAmount = errors.New("amount must not be negative")
	ErrInvalidAmount  = errors.New("amount must be a finite number")
)

type Expense struct {
	Date        date.Date
	Amount      float64
	Category    string
	Description string
}

// New validates amount and fills the default category. Records decoded from
// a file skip this constructor and are taken as they are.
func New(d date.Date, amount float64, category, description string) (Expense, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Expense{}, ErrInvalidAmount
	}
	if amount < 0 {
		return Expense{}, ErrNegativeAmount
	}

	if category == "" {
		category = DefaultCategory
	}

	return Expense{
		Date:        d,
		Amount:      amount,
		Category:    category,
		Description: description,
	}, nil
}
