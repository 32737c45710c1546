package types

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Prices are persisted as integer cents and rendered as decimal strings with
// exactly two fractional digits, so currency values never round-trip through
// binary floats.

// FormatCents renders integer cents as a decimal string, e.g. 950 -> "9.50".
func FormatCents(cents int64) string {
	return decimal.NewFromInt(cents).Shift(-2).StringFixed(2)
}

// ParseDecimalString converts a decimal string with up to two fractional
// digits into integer cents: "9" -> 900, "9.5" -> 950, "9.50" -> 950. More
// than two fractional digits is an error.
func ParseDecimalString(value string) (int64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, fmt.Errorf("empty decimal string")
	}

	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return 0, fmt.Errorf("invalid decimal string %q", value)
	}

	cents := d.Shift(2)
	if !cents.IsInteger() {
		return 0, fmt.Errorf("%q has more than two fractional digits", value)
	}
	if !cents.BigInt().IsInt64() {
		return 0, fmt.Errorf("%q is out of range", value)
	}
	return cents.IntPart(), nil
}
