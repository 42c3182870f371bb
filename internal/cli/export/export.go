package export

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/GustavoCaso/expensetrace/internal/cli"
	"github.com/GustavoCaso/expensetrace/internal/config"
	"github.com/GustavoCaso/expensetrace/internal/export"
	"github.com/GustavoCaso/expensetrace/internal/logger"
	"github.com/GustavoCaso/expensetrace/internal/store"
)

type exportCommand struct {
	out io.Writer
}

func NewCommand() cli.Command {
	return exportCommand{out: os.Stdout}
}

func (c exportCommand) Description() string {
	return "Export the expenses as a spreadsheet friendly CSV"
}

var output string

func (c exportCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&output, "o", "", "file to write the export to (default stdout)")
}

func (c exportCommand) Run(s *store.Store, _ *config.Config, logger *logger.Logger) (err error) {
	writer := c.out

	if output != "" {
		file, createErr := os.Create(output)
		if createErr != nil {
			return fmt.Errorf("unable to create %s: %w", output, createErr)
		}
		defer func() {
			if closeErr := file.Close(); err == nil && closeErr != nil {
				err = closeErr
			}
		}()
		writer = file
	}

	if err := export.CSV(writer, s.All()); err != nil {
		return err
	}

	if output != "" {
		logger.Info("expenses exported", "file", output, "expenses", s.Len())
	}

	return nil
}
