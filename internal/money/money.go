package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Amounts travel over the wire as strings ("30.00") and live in the database
// as int64 cents, matching numeric(12,2) exactly. Parsing goes through
// decimal so "0.1" style inputs never pick up binary-float error.

// MaxCent caps a single amount at 10 million, same limit for every operation.
const MaxCent int64 = 10_000_000_00

var hundred = decimal.NewFromInt(100)

// Parse converts a positive two-decimal amount string to cents.
func Parse(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return fromDecimal(d)
}

// ParseSigned converts an amount string to cents, allowing negative values.
// Used for balance adjustments, where the sign is the direction.
func ParseSigned(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if d.IsNegative() {
		cents, err := fromDecimal(d.Neg())
		if err != nil {
			return 0, err
		}
		return -cents, nil
	}
	return fromDecimal(d)
}

func fromDecimal(d decimal.Decimal) (int64, error) {
	if d.Exponent() < -2 {
		return 0, fmt.Errorf("amount %s has more than two decimal places", d)
	}
	if !d.IsPositive() {
		return 0, fmt.Errorf("amount must be positive, got %s", d)
	}
	cents := d.Mul(hundred).IntPart()
	if cents >= MaxCent {
		return 0, fmt.Errorf("amount too large, got %s", d)
	}
	return cents, nil
}

// Format renders cents as a two-decimal string, e.g. 1234 -> "12.34".
func Format(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}
