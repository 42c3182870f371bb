// Package date implements a calendar day value used to stamp expenses.
//
// A Date is always a real day on or after 1900-01-01. The only way to obtain
// one is through Parse, New or the month/year helpers, all of which validate.
package date

import (
	"errors"
	"fmt"
)

// Layout is the only textual form accepted and produced for dates.
const Layout = "YYYY-MM-DD"

const (
	minYear    = 1900
	layoutSize = 10
)

// ErrFormat is matched by every error returned when a date cannot be built.
var ErrFormat = errors.New("invalid date")

type FormatError struct {
	Input  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid date %q: %s", e.Input, e.Reason)
}

func (e *FormatError) Unwrap() error {
	return ErrFormat
}

// Date represents a day with no time-of-day or location.
type Date struct {
	y int
	m int
	d int
}

var daysInMonth = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// IsLeap reports whether year has a February 29th.
func IsLeap(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// DaysIn returns the number of days of month in year. It returns 0 for a
// month outside 1-12.
func DaysIn(year, month int) int {
	if month < 1 || month > 12 {
		return 0
	}
	if month == 2 && IsLeap(year) {
		return 29
	}
	return daysInMonth[month-1]
}

// New returns the Date for year, month and day, or a *FormatError when they
// do not name a real calendar day.
func New(year, month, day int) (Date, error) {
	input := fmt.Sprintf("%04d-%02d-%02d", year, month, day)
	if reason := validate(year, month, day); reason != "" {
		return Date{}, &FormatError{Input: input, Reason: reason}
	}
	return Date{y: year, m: month, d: day}, nil
}

func validate(year, month, day int) string {
	switch {
	case year < minYear:
		return fmt.Sprintf("year must be %d or later", minYear)
	case month < 1 || month > 12:
		return "month must be between 01 and 12"
	case day < 1 || day > DaysIn(year, month):
		return fmt.Sprintf("day must be between 01 and %02d", DaysIn(year, month))
	}
	return ""
}

// Parse reads s in the exact YYYY-MM-DD form.
func Parse(s string) (Date, error) {
	if len(s) != layoutSize {
		return Date{}, &FormatError{Input: s, Reason: "expected " + Layout}
	}
	if s[4] != '-' || s[7] != '-' {
		return Date{}, &FormatError{Input: s, Reason: "expected " + Layout}
	}

	year, ok := atoi(s[0:4])
	if !ok {
		return Date{}, &FormatError{Input: s, Reason: "year is not numeric"}
	}
	month, ok := atoi(s[5:7])
	if !ok {
		return Date{}, &FormatError{Input: s, Reason: "month is not numeric"}
	}
	day, ok := atoi(s[8:10])
	if !ok {
		return Date{}, &FormatError{Input: s, Reason: "day is not numeric"}
	}

	if reason := validate(year, month, day); reason != "" {
		return Date{}, &FormatError{Input: s, Reason: reason}
	}

	return Date{y: year, m: month, d: day}, nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// atoi accepts ASCII digits only: no sign, no spaces.
func atoi(s string) (int, bool) {
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

func (d Date) Year() int  { return d.y }
func (d Date) Month() int { return d.m }
func (d Date) Day() int   { return d.d }

// IsZero reports whether d is the zero value, which is not a valid day.
func (d Date) IsZero() bool {
	return d.y == 0 && d.m == 0 && d.d == 0
}

// String formats d as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.y, d.m, d.d)
}

// Format is an alias of String kept for symmetry with Parse.
func (d Date) Format() string {
	return d.String()
}

// Compare returns -1, 0 or +1 depending on whether a is before, equal to or
// after b.
func Compare(a, b Date) int {
	switch {
	case a.y != b.y:
		return sign(a.y - b.y)
	case a.m != b.m:
		return sign(a.m - b.m)
	default:
		return sign(a.d - b.d)
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}

// Before reports whether d is strictly before x.
func (d Date) Before(x Date) bool { return Compare(d, x) < 0 }

// After reports whether d is strictly after x.
func (d Date) After(x Date) bool { return Compare(d, x) > 0 }

// Equal reports whether d and x are the same day.
func (d Date) Equal(x Date) bool { return Compare(d, x) == 0 }

// Within reports whether from <= d <= to.
func (d Date) Within(from, to Date) bool {
	return Compare(from, d) <= 0 && Compare(d, to) <= 0
}
