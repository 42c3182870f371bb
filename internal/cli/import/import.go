package importcmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/GustavoCaso/expensetrace/internal/category"
	"github.com/GustavoCaso/expensetrace/internal/cli"
	"github.com/GustavoCaso/expensetrace/internal/config"
	importUtil "github.com/GustavoCaso/expensetrace/internal/import"
	"github.com/GustavoCaso/expensetrace/internal/logger"
	"github.com/GustavoCaso/expensetrace/internal/persist"
	"github.com/GustavoCaso/expensetrace/internal/store"
)

type importCommand struct {
	out io.Writer
}

func NewCommand() cli.Command {
	return importCommand{out: os.Stdout}
}

func (c importCommand) Description() string {
	return "Imports expenses from a CSV ledger or a JSON file into the data file"
}

var importFile string

func (c importCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&importFile, "f", "", "file to import (.csv or .json)")
}

func (c importCommand) Run(s *store.Store, conf *config.Config, logger *logger.Logger) error {
	if importFile == "" {
		return errors.New("you must provide a file to import")
	}

	matcher, err := category.NewMatcher(conf.Rules)
	if err != nil {
		return err
	}

	file, err := os.Open(importFile)
	if err != nil {
		return err
	}
	defer file.Close()

	info, err := importUtil.Import(importFile, file, matcher, logger)
	if err != nil {
		return fmt.Errorf("unable to import expenses due to error: %w", err)
	}

	if len(info.Expenses) == 0 {
		fmt.Fprintln(c.out, "No expenses were imported")
		return nil
	}

	for _, ex := range info.Expenses {
		s.Add(ex)
	}

	if err := persist.Save(conf.DataFile, s.All()); err != nil {
		return fmt.Errorf("unable to save imported expenses: %w", err)
	}

	fmt.Fprintf(c.out, "Total expenses imported: %d\n", len(info.Expenses))
	if len(info.ImportWithoutCategory) > 0 {
		fmt.Fprintf(c.out, "The following expenses were imported without a category: %s\n", strings.Join(info.ImportWithoutCategory, ", "))
	}
	if info.Skipped > 0 {
		fmt.Fprintf(c.out, "Skipped %d invalid entries\n", info.Skipped)
	}

	return nil
}
