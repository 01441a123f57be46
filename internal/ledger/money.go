package ledger

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	maxCents = decimal.NewFromInt(math.MaxInt64)
	minCents = decimal.NewFromInt(math.MinInt64)
)

// ParseAmount converts a decimal string such as "1,250.50" into minor units (cents).
// More than two decimal places is rejected rather than rounded.
func ParseAmount(s string) (int64, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if clean == "" {
		return 0, Invalid("amount", "is required")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, Invalid("amount", "%q is not a number", s)
	}

	cents := d.Shift(2)
	if !cents.IsInteger() {
		return 0, Invalid("amount", "%q has more than two decimal places", s)
	}

	if cents.GreaterThan(maxCents) || cents.LessThan(minCents) {
		return 0, Invalid("amount", "is too large")
	}

	return cents.IntPart(), nil
}

// FormatAmount renders minor units as a fixed two-decimal string.
func FormatAmount(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}
