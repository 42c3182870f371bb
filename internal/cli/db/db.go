package db

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/GustavoCaso/expensetrace/internal/cli"
	"github.com/GustavoCaso/expensetrace/internal/config"
	"github.com/GustavoCaso/expensetrace/internal/logger"
	"github.com/GustavoCaso/expensetrace/internal/persist"
	"github.com/GustavoCaso/expensetrace/internal/storage"
	"github.com/GustavoCaso/expensetrace/internal/storage/sqlite"
	"github.com/GustavoCaso/expensetrace/internal/store"
)

type opener func(path string) (storage.Snapshot, error)

func openSQLite(path string) (storage.Snapshot, error) {
	return sqlite.New(path)
}

type dbCommand struct {
	out  io.Writer
	open opener
}

func NewCommand() cli.Command {
	return dbCommand{out: os.Stdout, open: openSQLite}
}

func (c dbCommand) Description() string {
	return "Save the expenses to a SQLite snapshot or restore them from it"
}

var action string
var dbPath string

func (c dbCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&action, "a", "", "action to perform: save or load")
	fs.StringVar(&dbPath, "db", "", "snapshot database (defaults to the configured db)")
}

func (c dbCommand) Run(s *store.Store, conf *config.Config, logger *logger.Logger) error {
	if action != "save" && action != "load" {
		return fmt.Errorf("unsupported action %q: use save or load", action)
	}

	path := dbPath
	if path == "" {
		path = conf.DB
	}

	snapshot, err := c.open(path)
	if err != nil {
		return fmt.Errorf("unable to open snapshot database %s: %w", path, err)
	}
	defer snapshot.Close()

	ctx := context.Background()

	if action == "save" {
		count, err := snapshot.SaveSnapshot(ctx, s.All())
		if err != nil {
			return fmt.Errorf("unable to save snapshot: %w", err)
		}
		logger.Info("snapshot saved", "db", path, "expenses", count)
		fmt.Fprintf(c.out, "Saved %d expenses to %s.\n", count, path)
		return nil
	}

	expenses, err := snapshot.LoadSnapshot(ctx)
	if err != nil {
		var notFound *storage.NotFoundError
		if errors.As(err, &notFound) {
			return fmt.Errorf("no snapshot stored in %s: %w", path, err)
		}
		return fmt.Errorf("unable to load snapshot: %w", err)
	}

	s.Replace(expenses)

	if err := persist.Save(conf.DataFile, s.All()); err != nil {
		return fmt.Errorf("unable to write %s: %w", conf.DataFile, err)
	}

	logger.Info("snapshot loaded", "db", path, "expenses", len(expenses), "file", conf.DataFile)
	fmt.Fprintf(c.out, "Loaded %d expenses from %s.\n", len(expenses), path)

	return nil
}
