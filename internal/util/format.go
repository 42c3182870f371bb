package util

import (
	"fmt"
	"math"
	"strings"
)

const (
	centsPerUnit  = 100
	thousandValue = 1000
)

// FormatMoney renders an amount of cents with the given thousands and
// decimal separators, e.g. 123456 -> "1.234,56" for ".", ",".
func FormatMoney(value int64, thousand, decimal string) string {
	sign := ""
	if value < 0 {
		value *= -1
		sign = "-"
	}

	fraction := value % centsPerUnit
	value /= centsPerUnit

	groups := []string{}
	for value >= thousandValue {
		groups = append([]string{fmt.Sprintf("%03d", value%thousandValue)}, groups...)
		value /= thousandValue
	}
	groups = append([]string{fmt.Sprintf("%d", value)}, groups...)

	return fmt.Sprintf("%s%s%s%02d", sign, strings.Join(groups, thousand), decimal, fraction)
}

// FormatAmount renders a floating point amount rounded to cents, using ","
// for thousands and "." for decimals.
func FormatAmount(amount float64) string {
	return FormatMoney(int64(math.Round(amount*centsPerUnit)), ",", ".")
}
