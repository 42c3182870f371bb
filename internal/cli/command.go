package cli

import (
	"flag"

	"github.com/GustavoCaso/expensetrace/internal/config"
	"github.com/GustavoCaso/expensetrace/internal/logger"
	"github.com/GustavoCaso/expensetrace/internal/store"
)

// Command is a subcommand of the expensetrace binary. Run receives the store
// already loaded from conf.DataFile.
type Command interface {
	SetFlags(fset *flag.FlagSet)
	Description() string
	Run(s *store.Store, conf *config.Config, logger *logger.Logger) error
}
