package search

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

type searchCommand struct {
	out io.Writer
}

func NewCommand() cli.Command {
	return searchCommand{out: os.Stdout}
}

func (c searchCommand) Description() string {
	return "Search expenses by category or description"
}

var keyword string

func (c searchCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&keyword, "k", "", "keyword to use for the search")
}

func (c searchCommand) Run(s *store.Store, _ *config.Config, logger *logger.Logger) error {
	if keyword == "" {
		return fmt.Errorf("you must provide a keyword to use for the search")
	}

	expenses := s.Search(keyword)
	logger.Debug("search finished", "keyword", keyword, "matches", len(expenses))

	if err := render.Expenses(c.out, "Search total", expenses); err != nil {
		return fmt.Errorf("unable to render search results: %w", err)
	}

	return nil
}
