package report

import (
	"embed"
	"flag"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
	"text/template"
	"time"

	"github.com/GustavoCaso/expensetrace/internal/cli"
	"github.com/GustavoCaso/expensetrace/internal/config"
	"github.com/GustavoCaso/expensetrace/internal/date"
	"github.com/GustavoCaso/expensetrace/internal/logger"
	internalReport "github.com/GustavoCaso/expensetrace/internal/report"
	"github.com/GustavoCaso/expensetrace/internal/store"
	"github.com/GustavoCaso/expensetrace/internal/util"
)

// content holds our static content.
//
//go:embed templates/*
var content embed.FS

type reportCommand struct {
	out io.Writer
	now func() time.Time
}

func NewCommand() cli.Command {
	return reportCommand{out: os.Stdout, now: time.Now}
}

func (c reportCommand) Description() string {
	return "Displays the expenses information for selected date ranges"
}

var month int
var year int
var verbose bool

func (c reportCommand) SetFlags(fs *flag.FlagSet) {
	fs.IntVar(&month, "month", -1, "what month to use for generating report")
	fs.IntVar(&year, "year", -1, "what year to use for generating report")
	fs.BoolVar(&verbose, "v", false, "show verbose report output")
}

func (c reportCommand) Run(s *store.Store, conf *config.Config, logger *logger.Logger) error {
	var startDate, endDate date.Date
	var reportType string
	var err error

	switch {
	case month == -1 && year == -1:
		// Using default values we display the previous month
		now := c.now()
		previous := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
		reportType = "monthly"
		startDate, endDate, err = util.GetMonthDates(int(previous.Month()), previous.Year())
	case month > 0:
		reportType = "monthly"
		startDate, endDate, err = util.GetMonthDates(month, year)
	case year > 0:
		reportType = "yearly"
		startDate, endDate, err = util.GetYearDates(year)
	default:
		err = fmt.Errorf("invalid report period: month %d year %d", month, year)
	}
	if err != nil {
		return err
	}

	expenses := s.FilterByDateRange(startDate, endDate)
	logger.Debug("generating report", "type", reportType, "from", startDate.String(), "to", endDate.String(), "expenses", len(expenses))

	r := internalReport.Generate(startDate, endDate, expenses, budgets(conf), reportType)
	r.Verbose = verbose

	if err := renderTemplate(c.out, "report.tmpl", r); err != nil {
		return fmt.Errorf("unable to render report: %w", err)
	}

	return nil
}

func budgets(conf *config.Config) map[string]float64 {
	result := map[string]float64{}
	if conf == nil {
		return result
	}
	for name, amount := range conf.Budgets {
		result[strings.ToLower(name)] = amount
	}
	return result
}

func budgetOutput(b internalReport.BudgetInfo) string {
	if b.Status == internalReport.BudgetStatusNoBudget {
		return ""
	}

	text := fmt.Sprintf("  budget %s (%.0f%%)", util.FormatAmount(b.Amount), b.PercentageUsed)
	switch b.Status {
	case internalReport.BudgetStatusOver:
		return util.ColorOutput(text, "red")
	case internalReport.BudgetStatusNear:
		return util.ColorOutput(text, "yellow")
	default:
		return util.ColorOutput(text, "green")
	}
}

var templateFuncs = template.FuncMap{
	"formatAmount": util.FormatAmount,
	"colorOutput":  util.ColorOutput,
	"budget":       budgetOutput,
}

func renderTemplate(out io.Writer, templateName string, value interface{}) error {
	tmpl, err := content.ReadFile(path.Join("templates", templateName))
	if err != nil {
		return err
	}
	t := template.Must(template.New(templateName).Funcs(templateFuncs).Parse(string(tmpl)))
	err = t.Execute(out, value)
	if err != nil {
		return err
	}

	return nil
}
