// Package core provides the ledger domain model and the pure computations
// over it: amount parsing, summaries, category analysis and budgeting tips.
//
// This file contains the functions that turn user or file input into
// amounts and amounts back into display strings.
package core

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a decimal numeral to a float64 amount.
//
// Surrounding whitespace is ignored. A single leading "+" is allowed; a minus
// sign is not, so the result is always non-negative. Values such as "NaN" or
// "Inf", which strconv would happily accept, are rejected.
//
// Examples:
//
//	ParseAmount("12.34") -> 12.34, nil
//	ParseAmount("1000")  -> 1000, nil
//	ParseAmount("+5")    -> 5, nil
//	ParseAmount("-1")    -> 0, ErrInvalidAmount
//	ParseAmount("abc")   -> 0, ErrInvalidAmount
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	digits := strings.TrimPrefix(s, "+")
	if digits == "" || strings.HasPrefix(digits, "+") || strings.HasPrefix(digits, "-") {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	d, err := decimal.NewFromString(digits)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	f, _ := d.Float64()
	if err := ValidateAmount(f); err != nil {
		return 0, fmt.Errorf("%w: %q", err, s)
	}
	return f, nil
}

// FormatCurrency renders an amount with a dollar sign and two decimals,
// e.g. 1100 -> "$1100.00" and -100 -> "$-100.00". Rounding works on the
// binary value, so 0.125 renders as "$0.12".
func FormatCurrency(a float64) string {
	return fmt.Sprintf("$%.2f", a)
}
