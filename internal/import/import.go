package importutil

import (
	"encoding/json"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/GustavoCaso/expensetrace/internal/category"
	"github.com/GustavoCaso/expensetrace/internal/date"
	"github.com/GustavoCaso/expensetrace/internal/expense"
	"github.com/GustavoCaso/expensetrace/internal/logger"
	"github.com/GustavoCaso/expensetrace/internal/persist"
)

// jsonExpense is one element of an imported JSON array.
type jsonExpense struct {
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
}

type ImportInfo struct {
	Expenses              []expense.Expense
	ImportWithoutCategory []string
	Skipped               int
}

// Import reads expenses from reader. The format follows the extension of
// filename: ".csv" for ledger files and ".json" for an array of objects.
// Expenses with a blank category get one from matcher, or the default
// category when no rule matches.
func Import(filename string, reader io.Reader, matcher *category.Matcher, logger *logger.Logger) (ImportInfo, error) {
	var info ImportInfo
	var expenses []expense.Expense

	fileFormat := strings.ToLower(path.Ext(filename))

	switch fileFormat {
	case ".csv":
		result, err := persist.Read(reader, persist.WithLogger(logger))
		if err != nil {
			return info, err
		}
		expenses = result.Expenses
		info.Skipped = result.Skipped
	case ".json":
		e := []jsonExpense{}

		if err := json.NewDecoder(reader).Decode(&e); err != nil {
			return info, fmt.Errorf("invalid JSON import: %w", err)
		}

		for i, raw := range e {
			d, err := date.Parse(raw.Date)
			if err != nil {
				logger.Debug("skipping JSON expense", "index", i, "error", err)
				info.Skipped++
				continue
			}
			ex, err := expense.New(d, raw.Amount, raw.Category, raw.Description)
			if err != nil {
				logger.Debug("skipping JSON expense", "index", i, "error", err)
				info.Skipped++
				continue
			}
			// Blank categories are matched below.
			ex.Category = strings.TrimSpace(raw.Category)
			expenses = append(expenses, ex)
		}
	default:
		return info, fmt.Errorf("unsupported file format: %s", fileFormat)
	}

	for i, ex := range expenses {
		if strings.TrimSpace(ex.Category) != "" {
			continue
		}

		name := ""
		if matcher != nil {
			name = matcher.Match(ex.Description)
		}
		if name == "" {
			logger.Debug("expense without category", "description", ex.Description)
			info.ImportWithoutCategory = append(info.ImportWithoutCategory, ex.Description)
			name = expense.DefaultCategory
		}
		expenses[i].Category = name
	}

	info.Expenses = expenses

	return info, nil
}
