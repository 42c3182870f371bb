package list

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/GustavoCaso/expensetrace/internal/cli"
	"github.com/GustavoCaso/expensetrace/internal/config"
	"github.com/GustavoCaso/expensetrace/internal/date"
	"github.com/GustavoCaso/expensetrace/internal/logger"
	"github.com/GustavoCaso/expensetrace/internal/render"
	"github.com/GustavoCaso/expensetrace/internal/store"
	"github.com/GustavoCaso/expensetrace/internal/util"
)

// ErrInvertedRange is returned when the range start is after its end.
var ErrInvertedRange = errors.New("From must be <= To")

type listCommand struct {
	out io.Writer
}

func NewCommand() cli.Command {
	return listCommand{out: os.Stdout}
}

func (c listCommand) Description() string {
	return "List expenses, optionally filtered by date range and category"
}

var from string
var to string
var month int
var year int
var category string

func (c listCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&from, "from", "", "first day of the range (YYYY-MM-DD)")
	fs.StringVar(&to, "to", "", "last day of the range (YYYY-MM-DD)")
	fs.IntVar(&month, "month", -1, "list a single month (1-12)")
	fs.IntVar(&year, "year", -1, "year of -month, or a whole year on its own")
	fs.StringVar(&category, "category", "", "only expenses of this category (case insensitive)")
}

func (c listCommand) Run(s *store.Store, _ *config.Config, logger *logger.Logger) error {
	start, end, ranged, err := dateRange()
	if err != nil {
		return err
	}

	label := "Total"
	source := s

	if category != "" {
		label = "Category total"
		source = store.New()
		source.Replace(s.FilterByCategory(category))
	}

	expenses := source.All()
	if ranged {
		if category == "" {
			label = "Range total"
		}
		expenses = source.FilterByDateRange(start, end)
		logger.Debug("filtering by date range", "from", start.String(), "to", end.String())
	}

	if err := render.Expenses(c.out, label, expenses); err != nil {
		return fmt.Errorf("unable to render expenses: %w", err)
	}

	return nil
}

func dateRange() (date.Date, date.Date, bool, error) {
	switch {
	case from != "" || to != "":
		if from == "" || to == "" {
			return date.Date{}, date.Date{}, false, errors.New("both -from and -to are required")
		}
		start, err := date.Parse(from)
		if err != nil {
			return date.Date{}, date.Date{}, false, err
		}
		end, err := date.Parse(to)
		if err != nil {
			return date.Date{}, date.Date{}, false, err
		}
		if start.After(end) {
			return date.Date{}, date.Date{}, false, ErrInvertedRange
		}
		return start, end, true, nil
	case month > 0:
		start, end, err := util.GetMonthDates(month, year)
		return start, end, err == nil, err
	case year > 0:
		start, end, err := util.GetYearDates(year)
		return start, end, err == nil, err
	}

	return date.Date{}, date.Date{}, false, nil
}
