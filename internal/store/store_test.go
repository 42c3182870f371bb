package store

import (
	"reflect"
	"testing"

	"github.com/GustavoCaso/expensetrace/internal/date"
	"github.com/GustavoCaso/expensetrace/internal/expense"
)

func newExpense(t *testing.T, day string, amount float64, category, description string) expense.Expense {
	t.Helper()
	e, err := expense.New(date.MustParse(day), amount, category, description)
	if err != nil {
		t.Fatalf("expense.New() unexpected error: %v", err)
	}
	return e
}

func setupStore(t *testing.T) *Store {
	t.Helper()
	s := New()
	s.Add(newExpense(t, "2024-01-01", 10, "Food", "Weekly groceries"))
	s.Add(newExpense(t, "2024-01-15", 5.5, "food", "Bakery"))
	s.Add(newExpense(t, "2024-02-01", 20, "Rent", "Monthly payment"))
	return s
}

func descriptions(list []expense.Expense) []string {
	out := []string{}
	for _, e := range list {
		out = append(out, e.Description)
	}
	return out
}

func TestAddPreservesOrder(t *testing.T) {
	s := setupStore(t)
	s.Add(newExpense(t, "2023-12-31", 1, "Food", "Weekly groceries"))

	want := []string{"Weekly groceries", "Bakery", "Monthly payment", "Weekly groceries"}
	if got := descriptions(s.All()); !reflect.DeepEqual(got, want) {
		t.Errorf("All() = %v, want %v", got, want)
	}
	if s.Len() != 4 {
		t.Errorf("Len() = %d, want 4", s.Len())
	}
}

func TestAllReturnsCopy(t *testing.T) {
	s := setupStore(t)

	list := s.All()
	list[0].Category = "Changed"
	list[1].Amount = 999

	again := s.All()
	if again[0].Category != "Food" || again[1].Amount != 5.5 {
		t.Errorf("All() result aliases the stored records: %+v", again)
	}

	filtered := s.FilterByCategory("food")
	filtered[0].Description = "Changed"
	if s.All()[0].Description != "Weekly groceries" {
		t.Error("FilterByCategory() result aliases the stored records")
	}
}

func TestEmptyStore(t *testing.T) {
	s := New()
	if got := s.All(); got == nil || len(got) != 0 {
		t.Errorf("All() = %#v, want empty non-nil slice", got)
	}
	if s.Total(s.All()) != 0 {
		t.Errorf("Total() = %v, want 0", s.Total(s.All()))
	}
	if got := s.TotalsByCategory(s.All()); len(got) != 0 {
		t.Errorf("TotalsByCategory() = %v, want empty", got)
	}
}

func TestFilterByDateRange(t *testing.T) {
	s := setupStore(t)

	tests := []struct {
		name string
		from string
		to   string
		want []string
	}{
		{
			name: "inclusive both ends",
			from: "2024-01-01",
			to:   "2024-01-15",
			want: []string{"Weekly groceries", "Bakery"},
		},
		{
			name: "single day",
			from: "2024-02-01",
			to:   "2024-02-01",
			want: []string{"Monthly payment"},
		},
		{
			name: "everything",
			from: "1900-01-01",
			to:   "2100-12-31",
			want: []string{"Weekly groceries", "Bakery", "Monthly payment"},
		},
		{
			name: "nothing in range",
			from: "2023-01-01",
			to:   "2023-12-31",
			want: []string{},
		},
		{
			name: "inverted range",
			from: "2024-02-01",
			to:   "2024-01-01",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.FilterByDateRange(date.MustParse(tt.from), date.MustParse(tt.to))
			if !reflect.DeepEqual(descriptions(got), tt.want) {
				t.Errorf("FilterByDateRange(%s, %s) = %v, want %v", tt.from, tt.to, descriptions(got), tt.want)
			}
		})
	}
}

func TestFilterByCategory(t *testing.T) {
	s := setupStore(t)

	tests := []struct {
		category string
		want     []string
	}{
		{category: "food", want: []string{"Weekly groceries", "Bakery"}},
		{category: "FOOD", want: []string{"Weekly groceries", "Bakery"}},
		{category: "Food", want: []string{"Weekly groceries", "Bakery"}},
		{category: "rent", want: []string{"Monthly payment"}},
		{category: "fo", want: []string{}},
		{category: "", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			got := s.FilterByCategory(tt.category)
			if !reflect.DeepEqual(descriptions(got), tt.want) {
				t.Errorf("FilterByCategory(%q) = %v, want %v", tt.category, descriptions(got), tt.want)
			}
		})
	}
}

func TestSearch(t *testing.T) {
	s := setupStore(t)

	tests := []struct {
		query string
		want  []string
	}{
		{query: "GROCER", want: []string{"Weekly groceries"}},
		{query: "foo", want: []string{"Weekly groceries", "Bakery"}},
		{query: "month", want: []string{"Monthly payment"}},
		{query: "", want: []string{"Weekly groceries", "Bakery", "Monthly payment"}},
		{query: "travel", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := s.Search(tt.query)
			if !reflect.DeepEqual(descriptions(got), tt.want) {
				t.Errorf("Search(%q) = %v, want %v", tt.query, descriptions(got), tt.want)
			}
		})
	}
}

func TestTotals(t *testing.T) {
	s := setupStore(t)

	if got := s.Total(s.All()); got != 35.5 {
		t.Errorf("Total(all) = %v, want 35.5", got)
	}
	if got := s.Total(s.FilterByCategory("food")); got != 15.5 {
		t.Errorf("Total(food) = %v, want 15.5", got)
	}

	want := []CategoryTotal{
		{Category: "food", Amount: 15.5},
		{Category: "rent", Amount: 20},
	}
	if got := s.TotalsByCategory(s.All()); !reflect.DeepEqual(got, want) {
		t.Errorf("TotalsByCategory() = %v, want %v", got, want)
	}

	wantMap := map[string]float64{"food": 15.5, "rent": 20}
	if got := TotalsMap(s.All()); !reflect.DeepEqual(got, wantMap) {
		t.Errorf("TotalsMap() = %v, want %v", got, wantMap)
	}
}

func TestTotalsByCategoryOrder(t *testing.T) {
	list := []expense.Expense{
		newExpense(t, "2024-01-01", 1, "Travel", ""),
		newExpense(t, "2024-01-01", 1, "bills", ""),
		newExpense(t, "2024-01-01", 1, "Education", ""),
		newExpense(t, "2024-01-01", 1, "", ""),
	}

	got := TotalsByCategory(list)
	keys := []string{}
	for _, c := range got {
		keys = append(keys, c.Category)
	}

	want := []string{"bills", "education", "travel", "uncategorized"}
	if !reflect.DeepEqual(keys, want) {
		t.Errorf("TotalsByCategory() keys = %v, want %v", keys, want)
	}
}

func TestTotalAvoidsBinaryDrift(t *testing.T) {
	list := []expense.Expense{
		newExpense(t, "2024-01-01", 0.1, "a", ""),
		newExpense(t, "2024-01-01", 0.2, "a", ""),
	}
	if got := Total(list); got != 0.3 {
		t.Errorf("Total() = %v, want 0.3", got)
	}
}

func TestReplace(t *testing.T) {
	s := setupStore(t)
	replacement := []expense.Expense{newExpense(t, "2024-05-05", 3, "Gift", "Flowers")}

	s.Replace(replacement)
	replacement[0].Description = "Changed"

	if got := descriptions(s.All()); !reflect.DeepEqual(got, []string{"Flowers"}) {
		t.Errorf("All() after Replace() = %v, want [Flowers]", got)
	}

	s.Replace(nil)
	if s.Len() != 0 {
		t.Errorf("Len() after Replace(nil) = %d, want 0", s.Len())
	}
}
