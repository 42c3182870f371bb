package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/GustavoCaso/expensetrace/internal/expense"
)

const (
	decimalPlaces = 2
	base10        = 10
)

// Header is the first row written by CSV.
var Header = []string{"id", "date", "amount", "category", "description"}

// CSV exports expenses for spreadsheets: a 1-based row id and amounts
// rounded to cents. The output is not meant to be loaded back as a ledger.
func CSV(writer io.Writer, expenses []expense.Expense) error {
	w := csv.NewWriter(writer)

	// Pre-allocate records slice: header + all expense records
	records := make([][]string, 0, len(expenses)+1)
	records = append(records, Header)

	for i, ex := range expenses {
		records = append(records, expenseToCSVRecord(int64(i+1), ex))
	}

	// WriteAll flushes.
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write CSV records: %w", err)
	}

	return nil
}

func expenseToCSVRecord(id int64, ex expense.Expense) []string {
	return []string{
		strconv.FormatInt(id, base10),
		ex.Date.String(),
		strconv.FormatFloat(ex.Amount, 'f', decimalPlaces, 64),
		ex.Category,
		ex.Description,
	}
}
