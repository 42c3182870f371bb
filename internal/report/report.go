package report

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/GustavoCaso/expensetrace/internal/date"
	"github.com/GustavoCaso/expensetrace/internal/expense"
)

type BudgetStatus string

const (
	BudgetStatusUnder    BudgetStatus = "under"
	BudgetStatusNear     BudgetStatus = "near"
	BudgetStatusOver     BudgetStatus = "over"
	BudgetStatusNoBudget BudgetStatus = "no_budget"
)

const (
	budgetUnder = 80
	budgetFull  = 100
)

type BudgetInfo struct {
	Amount         float64      // Budget for the period (0 if no budget)
	Remaining      float64      // Can be negative
	PercentageUsed float64      // Percentage of budget used
	Status         BudgetStatus // Color coding status
}

type Category struct {
	Name              string
	Amount            float64
	Expenses          []expense.Expense
	PercentageOfTotal float64
	LastExpense       date.Date
	AvgAmount         float64
	Budget            BudgetInfo
}

type Report struct {
	Title                 string
	Spending              float64
	StartDate             date.Date
	EndDate               date.Date
	AverageSpendingPerDay float64
	Categories            []Category
	Duplicates            []string
	Verbose               bool
}

const (
	percentageOfTotal = 100
	monthsInYear      = 12
)

// Generate builds the report of expenses between startDate and endDate.
// Expenses are expected to be already filtered to that range. budgets holds
// monthly budgets keyed by lowercased category; yearly reports multiply them
// by twelve.
func Generate(
	startDate, endDate date.Date,
	expenses []expense.Expense,
	budgets map[string]float64,
	reportType string,
) Report {
	var report Report

	months := 1
	if reportType != "monthly" {
		months = monthsInYear
	}

	categories, duplicates, spending := Categories(expenses, budgets, months)

	report.Spending = spending
	report.StartDate = startDate
	report.EndDate = endDate
	report.AverageSpendingPerDay = spending / float64(calendarDays(startDate, endDate))
	report.Duplicates = duplicates

	categoriesSlice := make([]Category, 0, len(categories))
	for _, c := range categories {
		categoriesSlice = append(categoriesSlice, c)
	}

	sort.Slice(categoriesSlice, func(i, j int) bool {
		if categoriesSlice[i].Amount == categoriesSlice[j].Amount {
			return categoriesSlice[i].Name < categoriesSlice[j].Name
		}
		return categoriesSlice[i].Amount > categoriesSlice[j].Amount
	})

	report.Categories = categoriesSlice

	if reportType == "monthly" {
		report.Title = fmt.Sprintf("%s %d", time.Month(startDate.Month()).String(), startDate.Year())
	} else {
		report.Title = strconv.Itoa(startDate.Year())
	}

	return report
}

// Categories groups expenses by category ignoring case. The first spelling
// seen names the group.
func Categories(
	expenses []expense.Expense,
	budgets map[string]float64,
	months int,
) (map[string]Category, []string, float64) {
	spending := decimal.Zero
	sums := map[string]decimal.Decimal{}
	categories := make(map[string]Category)
	seen := map[string]bool{}
	duplicates := []string{}

	for _, ex := range expenses {
		key := duplicateKey(ex)
		if !seen[key] {
			seen[key] = true
		} else {
			duplicates = append(duplicates, key)
		}

		amount := decimal.NewFromFloat(ex.Amount)
		spending = spending.Add(amount)

		name := strings.ToLower(ex.Category)
		sums[name] = sums[name].Add(amount)

		addExpenseToCategory(categories, name, ex)
	}

	total := spending.InexactFloat64()

	for key, category := range categories {
		category.Amount = sums[key].InexactFloat64()

		if total > 0 {
			category.PercentageOfTotal = category.Amount * percentageOfTotal / total
		}

		category.LastExpense = category.Expenses[0].Date
		for _, ex := range category.Expenses {
			if ex.Date.After(category.LastExpense) {
				category.LastExpense = ex.Date
			}
		}
		category.AvgAmount = sums[key].Div(decimal.NewFromInt(int64(len(category.Expenses)))).InexactFloat64()

		budget, hasBudget := budgets[key]
		if hasBudget && budget > 0 {
			category.Budget = calculateBudgetInfo(budget*float64(months), category.Amount)
		} else {
			category.Budget = BudgetInfo{
				Status: BudgetStatusNoBudget,
			}
		}

		categories[key] = category
	}

	return categories, duplicates, total
}

func addExpenseToCategory(categories map[string]Category, key string, ex expense.Expense) {
	c, ok := categories[key]
	if ok {
		c.Expenses = append(c.Expenses, ex)
		categories[key] = c
		return
	}

	name := ex.Category
	if name == "" {
		name = expense.DefaultCategory
	}
	categories[key] = Category{
		Name:     name,
		Expenses: []expense.Expense{ex},
	}
}

func duplicateKey(ex expense.Expense) string {
	return fmt.Sprintf("%s %s %s", ex.Date, strconv.FormatFloat(ex.Amount, 'f', -1, 64), ex.Description)
}

const (
	hoursInDay = 24
)

// calendarDays returns the number of days from start to end, both included.
func calendarDays(start, end date.Date) int {
	u1 := time.Date(start.Year(), time.Month(start.Month()), start.Day(), 0, 0, 0, 0, time.UTC)
	u2 := time.Date(end.Year(), time.Month(end.Month()), end.Day(), 0, 0, 0, 0, time.UTC)
	days := int(u2.Sub(u1)/(hoursInDay*time.Hour)) + 1
	if days < 1 {
		return 1
	}
	return days
}

func calculateBudgetInfo(budgetAmount float64, spent float64) BudgetInfo {
	remaining := decimal.NewFromFloat(budgetAmount).Sub(decimal.NewFromFloat(spent)).InexactFloat64()

	percentageUsed := (spent / budgetAmount) * 100 //nolint:mnd // the value is obvious

	var status BudgetStatus
	switch {
	case percentageUsed < budgetUnder:
		status = BudgetStatusUnder
	case percentageUsed <= budgetFull:
		status = BudgetStatusNear
	default:
		status = BudgetStatusOver
	}

	return BudgetInfo{
		Amount:         budgetAmount,
		Remaining:      remaining,
		PercentageUsed: percentageUsed,
		Status:         status,
	}
}
