package summary

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/GustavoCaso/expensetrace/internal/cli"
	"github.com/GustavoCaso/expensetrace/internal/config"
	"github.com/GustavoCaso/expensetrace/internal/logger"
	"github.com/GustavoCaso/expensetrace/internal/render"
	"github.com/GustavoCaso/expensetrace/internal/store"
)

type summaryCommand struct {
	out io.Writer
}

func NewCommand() cli.Command {
	return summaryCommand{out: os.Stdout}
}

func (c summaryCommand) Description() string {
	return "Displays the totals by category and the overall total"
}

func (c summaryCommand) SetFlags(_ *flag.FlagSet) {}

func (c summaryCommand) Run(s *store.Store, _ *config.Config, _ *logger.Logger) error {
	if err := render.Summary(c.out, s.All()); err != nil {
		return fmt.Errorf("unable to render summary: %w", err)
	}
	return nil
}
