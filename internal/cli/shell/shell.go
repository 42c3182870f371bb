// Package shell implements the interactive menu driven session.
package shell

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/GustavoCaso/expensetrace/internal/cli"
	"github.com/GustavoCaso/expensetrace/internal/config"
	"github.com/GustavoCaso/expensetrace/internal/date"
	"github.com/GustavoCaso/expensetrace/internal/expense"
	"github.com/GustavoCaso/expensetrace/internal/logger"
	"github.com/GustavoCaso/expensetrace/internal/persist"
	"github.com/GustavoCaso/expensetrace/internal/render"
	"github.com/GustavoCaso/expensetrace/internal/store"
)

const menu = `
==== Expense Tracker ====
1) Add expense
2) View all
3) Filter by date range
4) Filter by category
5) Search (category/description)
6) Summary (totals by category & overall)
7) Save to CSV
8) Load from CSV
9) Quit
Choose: `

type shellCommand struct {
	in  io.Reader
	out io.Writer
}

func NewCommand() cli.Command {
	return shellCommand{in: os.Stdin, out: os.Stdout}
}

func (c shellCommand) Description() string {
	return "Start an interactive session over the expenses"
}

func (c shellCommand) SetFlags(_ *flag.FlagSet) {}

// Run serves the menu until the user quits or the input ends.
func (c shellCommand) Run(s *store.Store, conf *config.Config, logger *logger.Logger) error {
	sess := &session{
		scanner: bufio.NewScanner(c.in),
		out:     c.out,
		store:   s,
		conf:    conf,
		logger:  logger,
	}

	err := sess.loop()
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

type session struct {
	scanner *bufio.Scanner
	out     io.Writer
	store   *store.Store
	conf    *config.Config
	logger  *logger.Logger
}

func (s *session) loop() error {
	for {
		fmt.Fprint(s.out, menu)

		choice, err := s.readLine()
		if err != nil {
			return err
		}

		switch strings.TrimSpace(choice) {
		case "1":
			err = s.addExpense()
		case "2":
			err = render.Expenses(s.out, "Total", s.store.All())
		case "3":
			err = s.filterByDateRange()
		case "4":
			err = s.filterByCategory()
		case "5":
			err = s.search()
		case "6":
			err = render.Summary(s.out, s.store.All())
		case "7":
			err = s.save()
		case "8":
			err = s.load()
		case "9", "q", "Q":
			fmt.Fprintln(s.out, "Bye!")
			return nil
		default:
			fmt.Fprintln(s.out, "Invalid choice.")
		}

		if err != nil {
			return err
		}
	}
}

// readLine returns io.EOF once the input is exhausted.
func (s *session) readLine() (string, error) {
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimRight(s.scanner.Text(), "\r"), nil
}

func (s *session) prompt(label string) (string, error) {
	fmt.Fprint(s.out, label)
	return s.readLine()
}

func (s *session) promptDate(label, retry string) (date.Date, error) {
	fmt.Fprint(s.out, label)
	for {
		line, err := s.readLine()
		if err != nil {
			return date.Date{}, err
		}
		d, err := date.Parse(strings.TrimSpace(line))
		if err == nil {
			return d, nil
		}
		s.logger.Debug("rejected date", "input", line, "error", err)
		fmt.Fprint(s.out, retry)
	}
}

func (s *session) promptAmount() (float64, error) {
	fmt.Fprint(s.out, "Enter amount: ")
	for {
		line, err := s.readLine()
		if err != nil {
			return 0, err
		}
		amount, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
		// NaN fails the comparison.
		if err == nil && amount >= 0 && !math.IsInf(amount, 1) {
			return amount, nil
		}
		fmt.Fprint(s.out, "Invalid amount. Try again: ")
	}
}

func (s *session) categoryHint() string {
	categories := config.DefaultCategories
	if s.conf != nil && len(s.conf.Categories) > 0 {
		categories = s.conf.Categories
	}
	return strings.Join(categories, ", ")
}

func (s *session) addExpense() error {
	d, err := s.promptDate("Enter date (YYYY-MM-DD): ", "Invalid date. Try again (YYYY-MM-DD): ")
	if err != nil {
		return err
	}

	amount, err := s.promptAmount()
	if err != nil {
		return err
	}

	category, err := s.prompt(fmt.Sprintf("Enter category (e.g., %s): ", s.categoryHint()))
	if err != nil {
		return err
	}
	description, err := s.prompt("Enter description: ")
	if err != nil {
		return err
	}

	ex, err := expense.New(d, amount, category, description)
	if err != nil {
		return err
	}

	s.store.Add(ex)
	fmt.Fprintln(s.out, "Added.")
	return nil
}

func (s *session) filterByDateRange() error {
	from, err := s.promptDate("From (YYYY-MM-DD): ", "Invalid date. Try again: ")
	if err != nil {
		return err
	}
	to, err := s.promptDate("To (YYYY-MM-DD): ", "Invalid date. Try again: ")
	if err != nil {
		return err
	}

	if from.After(to) {
		fmt.Fprintln(s.out, "From must be <= To.")
		return nil
	}

	return render.Expenses(s.out, "Range total", s.store.FilterByDateRange(from, to))
}

func (s *session) filterByCategory() error {
	category, err := s.prompt("Category: ")
	if err != nil {
		return err
	}
	return render.Expenses(s.out, "Category total", s.store.FilterByCategory(category))
}

func (s *session) search() error {
	query, err := s.prompt("Search text: ")
	if err != nil {
		return err
	}
	return render.Expenses(s.out, "Search total", s.store.Search(query))
}

func (s *session) pathOrDefault(path string) string {
	path = strings.TrimSpace(path)
	if path == "" && s.conf != nil {
		return s.conf.DataFile
	}
	return path
}

func (s *session) save() error {
	path, err := s.prompt("Save CSV path (e.g., expenses.csv): ")
	if err != nil {
		return err
	}
	path = s.pathOrDefault(path)

	if err := persist.Save(path, s.store.All()); err != nil {
		s.logger.Warn("save failed", "path", path, "error", err)
		fmt.Fprintln(s.out, "Failed to save.")
		return nil
	}

	fmt.Fprintln(s.out, "Saved.")
	return nil
}

func (s *session) load() error {
	path, err := s.prompt("Load CSV path: ")
	if err != nil {
		return err
	}
	path = s.pathOrDefault(path)

	result, err := persist.Load(path, s.store, persist.WithLogger(s.logger))
	if err != nil {
		s.logger.Warn("load failed", "path", path, "error", err)
		fmt.Fprintln(s.out, "Failed to load.")
		return nil
	}

	if result.Skipped > 0 {
		s.logger.Info("skipped malformed lines", "path", path, "skipped", result.Skipped)
	}

	fmt.Fprintln(s.out, "Loaded.")
	return nil
}
