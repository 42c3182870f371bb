package add

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/GustavoCaso/expensetrace/internal/cli"
	"github.com/GustavoCaso/expensetrace/internal/config"
	"github.com/GustavoCaso/expensetrace/internal/date"
	"github.com/GustavoCaso/expensetrace/internal/expense"
	"github.com/GustavoCaso/expensetrace/internal/logger"
	"github.com/GustavoCaso/expensetrace/internal/persist"
	"github.com/GustavoCaso/expensetrace/internal/store"
)

type addCommand struct {
	out io.Writer
}

func NewCommand() cli.Command {
	return addCommand{out: os.Stdout}
}

func (c addCommand) Description() string {
	return "Add an expense and save it to the data file"
}

var expenseDate string
var amount string
var category string
var description string

func (c addCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&expenseDate, "date", "", "date of the expense (YYYY-MM-DD)")
	fs.StringVar(&amount, "amount", "", "amount spent, zero or greater")
	fs.StringVar(&category, "category", "", "category of the expense (default \""+expense.DefaultCategory+"\")")
	fs.StringVar(&description, "description", "", "free text description")
}

func (c addCommand) Run(s *store.Store, conf *config.Config, logger *logger.Logger) error {
	if expenseDate == "" {
		return errors.New("you must provide the date of the expense")
	}
	if amount == "" {
		return errors.New("you must provide the amount of the expense")
	}

	d, err := date.Parse(expenseDate)
	if err != nil {
		return err
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(amount), 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", amount, expense.ErrInvalidAmount)
	}

	ex, err := expense.New(d, value, category, description)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", amount, err)
	}

	s.Add(ex)

	if err := persist.Save(conf.DataFile, s.All()); err != nil {
		return fmt.Errorf("unable to save the expense: %w", err)
	}

	logger.Debug("expense added", "date", ex.Date.String(), "category", ex.Category, "file", conf.DataFile)

	fmt.Fprintln(c.out, "Added.")

	return nil
}
