// Package codec converts expenses to and from single lines of the
// comma separated ledger format:
//
//	date,amount,category,description
//	2024-02-01,1200,"Rent, Utilities",Monthly payment
//
// Category and description are quoted RFC4180 style when they contain a
// comma, a quote or a newline.
package codec

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/GustavoCaso/expensetrace/internal/date"
	"github.com/GustavoCaso/expensetrace/internal/expense"
)

// Header is the first line written to every ledger file.
const Header = "date,amount,category,description"

// FieldCount is the number of fields an encoded expense carries.
const FieldCount = 4

const (
	quote     = '"'
	separator = ','
)

var (
	ErrParse         = errors.New("invalid record")
	ErrTooFewFields  = fmt.Errorf("%w: expected %d fields", ErrParse, FieldCount)
	ErrInvalidAmount = fmt.Errorf("%w: amount is not a number", ErrParse)
)

// ParseError reports the field that could not be decoded.
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() []error {
	return []error{ErrParse, e.Err}
}

// EncodeField quotes s when it holds a separator, a quote or a newline.
func EncodeField(s string) string {
	if !strings.ContainsAny(s, ",\"\n") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte(quote)
	for i := 0; i < len(s); i++ {
		if s[i] == quote {
			b.WriteByte(quote)
		}
		b.WriteByte(s[i])
	}
	b.WriteByte(quote)

	return b.String()
}

// DecodeField reverses EncodeField. Values that are not wrapped in quotes
// are returned unchanged.
func DecodeField(s string) string {
	if len(s) < 2 || s[0] != quote || s[len(s)-1] != quote {
		return s
	}

	inner := s[1 : len(s)-1]
	var b strings.Builder
	b.Grow(len(inner))
	for i := 0; i < len(inner); i++ {
		if inner[i] == quote && i+1 < len(inner) && inner[i+1] == quote {
			i++
		}
		b.WriteByte(inner[i])
	}

	return b.String()
}

// SplitRecordLine splits line on separators outside quoted regions. Quotes
// are kept in the returned fields; callers run DecodeField on each one.
func SplitRecordLine(line string) []string {
	fields := []string{}
	inQuotes := false
	start := 0

	for i := 0; i < len(line); i++ {
		switch line[i] {
		case quote:
			inQuotes = !inQuotes
		case separator:
			if !inQuotes {
				fields = append(fields, line[start:i])
				start = i + 1
			}
		}
	}
	fields = append(fields, line[start:])

	for i, f := range fields {
		fields[i] = strings.TrimRight(f, "\r\n")
	}

	return fields
}

// EncodeExpense renders e as a single ledger line without line terminator.
func EncodeExpense(e expense.Expense) string {
	return strings.Join([]string{
		e.Date.String(),
		strconv.FormatFloat(e.Amount, 'f', -1, 64),
		EncodeField(e.Category),
		EncodeField(e.Description),
	}, string(separator))
}

// DecodeExpense builds an expense from the raw fields of a ledger line.
// Fields past the fourth are ignored. The amount sign is not checked.
func DecodeExpense(fields []string) (expense.Expense, error) {
	if len(fields) < FieldCount {
		return expense.Expense{}, &ParseError{
			Field: "record",
			Value: strings.Join(fields, string(separator)),
			Err:   ErrTooFewFields,
		}
	}

	d, err := date.Parse(DecodeField(fields[0]))
	if err != nil {
		return expense.Expense{}, &ParseError{Field: "date", Value: fields[0], Err: err}
	}

	amount, err := parseAmount(DecodeField(fields[1]))
	if err != nil {
		return expense.Expense{}, &ParseError{Field: "amount", Value: fields[1], Err: err}
	}

	return expense.Expense{
		Date:        d,
		Amount:      amount,
		Category:    DecodeField(fields[2]),
		Description: DecodeField(fields[3]),
	}, nil
}

// DecodeLine is SplitRecordLine followed by DecodeExpense.
func DecodeLine(line string) (expense.Expense, error) {
	return DecodeExpense(SplitRecordLine(line))
}

func parseAmount(s string) (float64, error) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, ErrInvalidAmount
	}
	return amount, nil
}

// OpenQuote reports whether line ends inside a quoted field, meaning the
// record continues on the next physical line. Only a quote at the start of
// a field opens one, which is the only shape EncodeField writes; quotes in
// the middle of a field are plain text.
func OpenQuote(line string) bool {
	inQuotes := false
	fieldStart := true

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case inQuotes && c == quote:
			if i+1 < len(line) && line[i+1] == quote {
				i++
				continue
			}
			inQuotes = false
		case !inQuotes && c == quote && fieldStart:
			inQuotes = true
		}
		fieldStart = !inQuotes && c == separator
	}

	return inQuotes
}
