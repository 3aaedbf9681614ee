// Package valueobject contains domain value objects for the budget insights service.
package valueobject

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrNotCurrencyLike is returned when a value has no numeric content after coercion.
var ErrNotCurrencyLike = errors.New("value is not currency-like")

// ParseCurrencyLike coerces a loosely typed currency value into a decimal.
//
// Every character other than ASCII digits, '.' and '-' is stripped before parsing, so
// "$1,200.50" becomes 1200.50 and "-€5" becomes -5. Thousands separators written as
// commas are therefore dropped; a comma used as a decimal separator is dropped too
// ("12,34" parses as 1234). An empty remainder or one that is still not a number
// (e.g. "1.2.3", "5-") yields ErrNotCurrencyLike.
func ParseCurrencyLike(raw string) (decimal.Decimal, error) {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" || cleaned == "-" || cleaned == "." {
		return decimal.Zero, ErrNotCurrencyLike
	}

	value, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, ErrNotCurrencyLike
	}
	return value, nil
}

// ParseCurrencyLikeOrZero is ParseCurrencyLike with invalid values treated as zero.
func ParseCurrencyLikeOrZero(raw string) decimal.Decimal {
	value, err := ParseCurrencyLike(raw)
	if err != nil {
		return decimal.Zero
	}
	return value
}
