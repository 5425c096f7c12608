package types

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Money values travel through the system as unrounded decimals. Rounding to
// two places happens only here, at the serialization edge, so repeated
// additions never compound rounding error.

// FormatAmount renders a decimal amount with two fractional digits.
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// ParseAmount converts a raw decimal string into a Money amount.
func ParseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", raw, err)
	}
	return amount, nil
}

// ParseRate converts a raw tax-rate string (e.g. "0.16") into a decimal.
func ParseRate(raw string) (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid rate %q: %w", raw, err)
	}
	if rate.IsNegative() {
		return decimal.Zero, fmt.Errorf("rate %q cannot be negative", raw)
	}
	return rate, nil
}
