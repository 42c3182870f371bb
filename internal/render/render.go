// Package render prints expense lists and summaries to the terminal.
package render

import (
	"embed"
	"io"
	"path"
	"text/template"

	"github.com/GustavoCaso/expensetrace/internal/expense"
	"github.com/GustavoCaso/expensetrace/internal/store"
	"github.com/GustavoCaso/expensetrace/internal/util"
)

// content holds our static content.
//
//go:embed templates/*
var content embed.FS

var templateFuncs = template.FuncMap{
	"formatAmount": util.FormatAmount,
	"colorOutput":  util.ColorOutput,
}

type expensesView struct {
	Expenses []expense.Expense
	Label    string
	Total    float64
}

type summaryView struct {
	Categories []store.CategoryTotal
	Total      float64
}

// Expenses writes list as a table followed by "<label>: <total>".
func Expenses(out io.Writer, label string, list []expense.Expense) error {
	return renderTemplate(out, "expenses.tmpl", expensesView{
		Expenses: list,
		Label:    label,
		Total:    store.Total(list),
	})
}

// Summary writes the per category totals of list, ordered by category, and
// the overall total.
func Summary(out io.Writer, list []expense.Expense) error {
	return renderTemplate(out, "summary.tmpl", summaryView{
		Categories: store.TotalsByCategory(list),
		Total:      store.Total(list),
	})
}

func renderTemplate(out io.Writer, templateName string, value interface{}) error {
	tmpl, err := content.ReadFile(path.Join("templates", templateName))
	if err != nil {
		return err
	}
	t := template.Must(template.New(templateName).Funcs(templateFuncs).Parse(string(tmpl)))
	return t.Execute(out, value)
}
