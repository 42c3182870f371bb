package persist

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/GustavoCaso/expensetrace/internal/date"
	"github.com/GustavoCaso/expensetrace/internal/expense"
	"github.com/GustavoCaso/expensetrace/internal/store"
	"github.com/GustavoCaso/expensetrace/internal/testutil"
)

func sampleExpenses() []expense.Expense {
	return []expense.Expense{
		{Date: date.MustParse("2024-01-15"), Amount: 42.5, Category: "Food", Description: "Groceries"},
		{Date: date.MustParse("2024-02-01"), Amount: 1200, Category: "Rent, Utilities", Description: "Monthly payment"},
		{Date: date.MustParse("2024-02-29"), Amount: 0.3, Category: "Misc", Description: `Hello, "World"`},
		{Date: date.MustParse("2024-03-01"), Amount: 7, Category: "Notes", Description: "first line\nsecond line"},
		{Date: date.MustParse("2024-03-02"), Amount: 0, Category: "Uncategorized", Description: ""},
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, sampleExpenses()[:2])
	if err != nil {
		t.Fatalf("Write() unexpected error: %v", err)
	}

	want := "date,amount,category,description\n" +
		"2024-01-15,42.5,Food,Groceries\n" +
		"2024-02-01,1200,\"Rent, Utilities\",Monthly payment\n"
	if buf.String() != want {
		t.Errorf("Write() = %q, want %q", buf.String(), want)
	}
}

func TestWriteEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, nil); err != nil {
		t.Fatalf("Write() unexpected error: %v", err)
	}
	if buf.String() != "date,amount,category,description\n" {
		t.Errorf("Write() = %q, want only the header", buf.String())
	}
}

func TestRead(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantLoaded  int
		wantSkipped int
	}{
		{
			name:       "header and rows",
			input:      "date,amount,category,description\n2024-01-15,42.50,Food,Groceries\n2024-01-16,3,Food,Coffee\n",
			wantLoaded: 2,
		},
		{
			name:        "no header, one valid and one bad date",
			input:       "2024-01-15,42.50,Food,Groceries\n2024-02-30,10,Food,Bad day\n",
			wantLoaded:  1,
			wantSkipped: 1,
		},
		{
			name:        "non numeric amount and too few fields",
			input:       "date,amount,category,description\n2024-01-15,abc,Food,x\n2024-01-15,1,Food\n2024-01-15,1,Food,ok\n",
			wantLoaded:  1,
			wantSkipped: 2,
		},
		{
			name:       "windows line endings",
			input:      "date,amount,category,description\r\n2024-01-15,42.50,Food,Groceries\r\n",
			wantLoaded: 1,
		},
		{
			name:       "blank lines are ignored",
			input:      "date,amount,category,description\n\n2024-01-15,42.50,Food,Groceries\n\n",
			wantLoaded: 1,
		},
		{
			name:  "empty input",
			input: "",
		},
		{
			name:        "thousands separator in amount",
			input:       "date,amount,category,description\n2024-02-01,\"1,200.00\",\"Rent, Utilities\",Monthly payment\n",
			wantSkipped: 1,
		},
		{
			name:       "quote inside a field does not join lines",
			input:      "date,amount,category,description\n2024-01-01,5,Tech,6\" screen\n2024-01-02,10,Food,Lunch\n2024-01-03,20,Rent,May\n",
			wantLoaded: 3,
		},
		{
			name:        "unterminated quote keeps following records",
			input:       "date,amount,category,description\n2024-01-01,5,Tech,\"open\n2024-01-02,abc,Food,Lunch\n2024-01-03,20,Rent,May\n",
			wantLoaded:  2,
			wantSkipped: 1,
		},
		{
			name:       "closing quote on a later record line",
			input:      "date,amount,category,description\n2024-01-01,5,Tech,\"open\n2024-01-02,10,Food,\"Lunch\"\n",
			wantLoaded: 2,
		},
		{
			name:       "last line without newline",
			input:      "date,amount,category,description\n2024-01-15,42.50,Food,Groceries",
			wantLoaded: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Read(strings.NewReader(tt.input), WithLogger(testutil.TestLogger(t)))
			if err != nil {
				t.Fatalf("Read() unexpected error: %v", err)
			}
			if result.Loaded != tt.wantLoaded {
				t.Errorf("Read().Loaded = %d, want %d", result.Loaded, tt.wantLoaded)
			}
			if len(result.Expenses) != tt.wantLoaded {
				t.Errorf("len(Read().Expenses) = %d, want %d", len(result.Expenses), tt.wantLoaded)
			}
			if result.Skipped != tt.wantSkipped {
				t.Errorf("Read().Skipped = %d, want %d", result.Skipped, tt.wantSkipped)
			}
		})
	}
}

func TestReadQuoteInsideField(t *testing.T) {
	input := "date,amount,category,description\n" +
		"2024-01-01,5,Tech,6\" screen\n" +
		"2024-01-02,10,Food,Lunch\n" +
		"2024-01-03,20,Rent,May\n"

	result, err := Read(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Read() unexpected error: %v", err)
	}

	want := []expense.Expense{
		{Date: date.MustParse("2024-01-01"), Amount: 5, Category: "Tech", Description: "6\" screen"},
		{Date: date.MustParse("2024-01-02"), Amount: 10, Category: "Food", Description: "Lunch"},
		{Date: date.MustParse("2024-01-03"), Amount: 20, Category: "Rent", Description: "May"},
	}
	if !reflect.DeepEqual(result.Expenses, want) {
		t.Errorf("Read().Expenses = %+v, want %+v", result.Expenses, want)
	}
	if result.Skipped != 0 {
		t.Errorf("Read().Skipped = %d, want 0", result.Skipped)
	}
}

func TestReadLongLine(t *testing.T) {
	long := strings.Repeat("x", 2*1024*1024)
	input := "date,amount,category,description\n" +
		"2024-01-01,5,Food,Breakfast\n" +
		"2024-01-02,7,Books," + long + "\n" +
		"2024-01-03,9,Food,Dinner\n"

	result, err := Read(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Read() unexpected error: %v", err)
	}

	if result.Loaded != 3 {
		t.Fatalf("Read().Loaded = %d, want 3", result.Loaded)
	}
	if got := result.Expenses[1].Description; got != long {
		t.Errorf("long description has length %d, want %d", len(got), len(long))
	}
	if got := result.Expenses[2].Description; got != "Dinner" {
		t.Errorf("record after long line has description %q, want %q", got, "Dinner")
	}
}

func TestLoadLongLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.csv")
	content := "date,amount,category,description\n" +
		"2024-01-01,5,Food,Breakfast\n" +
		"2024-01-02,7,Books," + strings.Repeat("y", 2*1024*1024) + "\n" +
		"2024-01-03,9,Food,Dinner\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	s := store.New()
	if _, err := Load(path, s); err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if s.Len() != 3 {
		t.Errorf("store Len() = %d, want 3", s.Len())
	}
}

func TestLenientLoad(t *testing.T) {
	path := testutil.WriteLedger(t, "2024-01-15,42.50,Food,Groceries\n2024-13-01,5,Food,Bad month\n")

	s := store.New()
	result, err := Load(path, s)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if s.Len() != 1 {
		t.Fatalf("store Len() = %d, want 1", s.Len())
	}
	got := s.All()[0]
	want := expense.Expense{Date: date.MustParse("2024-01-15"), Amount: 42.5, Category: "Food", Description: "Groceries"}
	if got != want {
		t.Errorf("loaded expense = %+v, want %+v", got, want)
	}
	if result.Skipped != 1 {
		t.Errorf("Load().Skipped = %d, want 1", result.Skipped)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.csv")

	original := store.New()
	for _, e := range sampleExpenses() {
		original.Add(e)
	}

	if err := Save(path, original.All()); err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}

	loaded := store.New()
	result, err := Load(path, loaded)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if result.Skipped != 0 {
		t.Errorf("Load().Skipped = %d, want 0", result.Skipped)
	}
	if !reflect.DeepEqual(loaded.All(), original.All()) {
		t.Errorf("Load() = %+v, want %+v", loaded.All(), original.All())
	}
}

func TestLoadReplacesStore(t *testing.T) {
	path := testutil.WriteLedger(t, "date,amount,category,description\n2024-01-15,1,Food,Only\n")

	s := store.New()
	s.Add(expense.Expense{Date: date.MustParse("2020-01-01"), Amount: 9, Category: "Old"})
	s.Add(expense.Expense{Date: date.MustParse("2020-01-02"), Amount: 9, Category: "Old"})

	if _, err := Load(path, s); err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if s.Len() != 1 || s.All()[0].Description != "Only" {
		t.Errorf("Load() did not replace the store: %+v", s.All())
	}
}

func TestLoadMissingFile(t *testing.T) {
	s := store.New()
	s.Add(expense.Expense{Date: date.MustParse("2020-01-01"), Amount: 9, Category: "Kept"})

	_, err := Load(filepath.Join(t.TempDir(), "missing.csv"), s)
	if err == nil {
		t.Fatal("Load() expected error for missing file")
	}
	if !errors.Is(err, ErrIO) {
		t.Errorf("Load() error = %v, want ErrIO", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() error = %v, want os.ErrNotExist", err)
	}

	var ioErr *IOError
	if !errors.As(err, &ioErr) || ioErr.Op != "load" {
		t.Errorf("Load() error = %#v, want *IOError with Op load", err)
	}
	if s.Len() != 1 {
		t.Errorf("failed Load() changed the store: %+v", s.All())
	}
}

func TestSaveUnwritablePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "expenses.csv")

	err := Save(path, sampleExpenses())
	if !errors.Is(err, ErrIO) {
		t.Fatalf("Save() error = %v, want ErrIO", err)
	}

	var ioErr *IOError
	if !errors.As(err, &ioErr) || ioErr.Op != "save" || ioErr.Path != path {
		t.Errorf("Save() error = %#v, want *IOError for %s", err, path)
	}
}

func TestSaveTruncates(t *testing.T) {
	path := testutil.WriteLedger(t, strings.Repeat("2024-01-15,1,Food,filler\n", 50))

	if err := Save(path, sampleExpenses()[:1]); err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read saved file: %v", err)
	}
	want := "date,amount,category,description\n2024-01-15,42.5,Food,Groceries\n"
	if string(content) != want {
		t.Errorf("saved file = %q, want %q", string(content), want)
	}
}
