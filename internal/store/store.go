// Package store keeps the expenses of a session in insertion order and
// answers the queries the CLI needs. Every query returns a new slice, so
// callers can never modify the stored records through a result.
package store

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"

	"github.com/GustavoCaso/expensetrace/internal/date"
	"github.com/GustavoCaso/expensetrace/internal/expense"
	"github.com/GustavoCaso/expensetrace/internal/util"
)

type Store struct {
	expenses []expense.Expense
}

// CategoryTotal is the summed amount of one lowercased category.
type CategoryTotal struct {
	Category string
	Amount   float64
}

func New() *Store {
	return &Store{}
}

// Add appends e after every record already stored.
func (s *Store) Add(e expense.Expense) {
	s.expenses = append(s.expenses, e)
}

func (s *Store) Len() int {
	return len(s.expenses)
}

// All returns a copy of every stored expense.
func (s *Store) All() []expense.Expense {
	return s.filter(func(expense.Expense) bool { return true })
}

// Replace drops the current records and stores a copy of expenses.
func (s *Store) Replace(expenses []expense.Expense) {
	s.expenses = append([]expense.Expense(nil), expenses...)
}

// FilterByDateRange returns the expenses dated from from to to, both
// included. An inverted range matches nothing.
func (s *Store) FilterByDateRange(from, to date.Date) []expense.Expense {
	return s.filter(func(e expense.Expense) bool {
		return e.Date.Within(from, to)
	})
}

// FilterByCategory matches the category ignoring case.
func (s *Store) FilterByCategory(category string) []expense.Expense {
	return s.filter(func(e expense.Expense) bool {
		return util.EqualFold(e.Category, category)
	})
}

// Search returns the expenses whose category or description contains query,
// ignoring case.
func (s *Store) Search(query string) []expense.Expense {
	return s.filter(func(e expense.Expense) bool {
		return util.ContainsFold(e.Category, query) || util.ContainsFold(e.Description, query)
	})
}

func (s *Store) filter(keep func(expense.Expense) bool) []expense.Expense {
	out := []expense.Expense{}
	for _, e := range s.expenses {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// Total sums the amounts of list, which does not need to come from s.
func (s *Store) Total(list []expense.Expense) float64 {
	return Total(list)
}

// TotalsByCategory groups list by lowercased category, sorted by category.
func (s *Store) TotalsByCategory(list []expense.Expense) []CategoryTotal {
	return TotalsByCategory(list)
}

// Total sums the amounts of list. Amounts are added as decimals so totals of
// cent values do not pick up binary rounding noise.
func Total(list []expense.Expense) float64 {
	sum := decimal.Zero
	for _, e := range list {
		sum = sum.Add(decimal.NewFromFloat(e.Amount))
	}
	return sum.InexactFloat64()
}

// TotalsMap groups list by lowercased category.
func TotalsMap(list []expense.Expense) map[string]float64 {
	sums := map[string]decimal.Decimal{}
	for _, e := range list {
		key := strings.ToLower(e.Category)
		sums[key] = sums[key].Add(decimal.NewFromFloat(e.Amount))
	}

	totals := make(map[string]float64, len(sums))
	for k, v := range sums {
		totals[k] = v.InexactFloat64()
	}
	return totals
}

// TotalsByCategory returns TotalsMap as a slice in ascending category order.
func TotalsByCategory(list []expense.Expense) []CategoryTotal {
	totals := TotalsMap(list)

	keys := make([]string, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	result := make([]CategoryTotal, 0, len(keys))
	for _, k := range keys {
		result = append(result, CategoryTotal{Category: k, Amount: totals[k]})
	}
	return result
}
