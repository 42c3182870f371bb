package util

import (
	"fmt"
	"time"

	"github.com/GustavoCaso/expensetrace/internal/date"
)

// GetMonthDates returns the first and last day of month. A year of zero or
// less means the current year.
func GetMonthDates(month int, year int) (date.Date, date.Date, error) {
	if year <= 0 {
		year = time.Now().Year()
	}

	first, err := date.New(year, month, 1)
	if err != nil {
		return date.Date{}, date.Date{}, fmt.Errorf("invalid month %d: %w", month, err)
	}

	last, err := date.New(year, month, date.DaysIn(year, month))
	if err != nil {
		return date.Date{}, date.Date{}, err
	}

	return first, last, nil
}

// GetYearDates returns January 1st and December 31st of year.
func GetYearDates(year int) (date.Date, date.Date, error) {
	first, err := date.New(year, 1, 1)
	if err != nil {
		return date.Date{}, date.Date{}, fmt.Errorf("invalid year %d: %w", year, err)
	}

	last, err := date.New(year, 12, 31)
	if err != nil {
		return date.Date{}, date.Date{}, err
	}

	return first, last, nil
}
