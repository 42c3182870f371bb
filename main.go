package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/GustavoCaso/expensetrace/internal/cli"
	"github.com/GustavoCaso/expensetrace/internal/cli/add"
	"github.com/GustavoCaso/expensetrace/internal/cli/db"
	"github.com/GustavoCaso/expensetrace/internal/cli/export"
	importCmd "github.com/GustavoCaso/expensetrace/internal/cli/import"
	"github.com/GustavoCaso/expensetrace/internal/cli/list"
	"github.com/GustavoCaso/expensetrace/internal/cli/report"
	"github.com/GustavoCaso/expensetrace/internal/cli/search"
	"github.com/GustavoCaso/expensetrace/internal/cli/shell"
	"github.com/GustavoCaso/expensetrace/internal/cli/summary"
	"github.com/GustavoCaso/expensetrace/internal/config"
	"github.com/GustavoCaso/expensetrace/internal/logger"
	"github.com/GustavoCaso/expensetrace/internal/persist"
	"github.com/GustavoCaso/expensetrace/internal/store"
	"github.com/GustavoCaso/expensetrace/internal/util"
)

var configPath string

var subcommands = map[string]cli.Command{
	"add":     add.NewCommand(),
	"db":      db.NewCommand(),
	"export":  export.NewCommand(),
	"import":  importCmd.NewCommand(),
	"list":    list.NewCommand(),
	"report":  report.NewCommand(),
	"search":  search.NewCommand(),
	"shell":   shell.NewCommand(),
	"summary": summary.NewCommand(),
}

var subcommandsFlagSets = map[string]*flag.FlagSet{}

func main() {
	if len(os.Args) < 2 {
		fmt.Printf("subcommand is required\n")
		printUsage()

		os.Exit(1)
	}

	for c, cLogic := range subcommands {
		fset := flag.NewFlagSet(c, flag.ExitOnError)
		fset.StringVar(&configPath, "c", "expensetrace.toml", "Configuration file (.toml, .yml or .yaml)")

		cLogic.SetFlags(fset)

		subcommandsFlagSets[c] = fset
	}

	commandName := os.Args[1]
	command, ok := subcommands[commandName]
	if !ok {
		if strings.Contains(commandName, "help") {
			printHelp()

			os.Exit(0)
		}
		log.Fatalf("unsupported comand %s. \nUse 'help' command to print information about supported commands\n", commandName)
	}

	//nolint:errcheck // ExitOnError flag sets exit on parse errors
	subcommandsFlagSets[commandName].Parse(os.Args[2:])

	conf, err := config.Parse(configPath)
	if err != nil {
		log.Fatalf("Unable to parse the configuration: %s", err.Error())
	}

	util.DisableColor(conf.NoColor)

	l := logger.New(conf.Logger).With("command", commandName)

	s := store.New()
	result, err := persist.Load(conf.DataFile, s, persist.WithLogger(l))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		l.Info("data file not found, starting with no expenses", "file", conf.DataFile)
	case err != nil:
		l.Fatal("unable to load the data file", "file", conf.DataFile, "error", err)
	default:
		l.Debug("data file loaded", "file", conf.DataFile, "expenses", result.Loaded, "skipped", result.Skipped)
		if result.Skipped > 0 {
			l.Warn("skipped malformed lines in the data file", "file", conf.DataFile, "skipped", result.Skipped)
		}
	}

	if err := command.Run(s, conf, l); err != nil {
		l.Error(fmt.Sprintf("%s failed", commandName), "error", err)
		os.Exit(1)
	}
}

func printHelp() {
	printUsage()

	names := make([]string, 0, len(subcommands))
	for c := range subcommands {
		names = append(names, c)
	}
	sort.Strings(names)

	for _, c := range names {
		fmt.Printf("subcommmand <%s>: %s\n", c, subcommands[c].Description())
		subcommandsFlagSets[c].PrintDefaults()
		fmt.Println()
		fmt.Println()
	}
}

func printUsage() {
	fmt.Printf("usage: expensetrace <subcommand> [flags]\n\n")
}
