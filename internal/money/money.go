// Package money represents monetary values as fixed-point minor units.
package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalid is returned when a value cannot be interpreted as an amount.
var ErrInvalid = errors.New("invalid amount")

// MaxAmount is the largest magnitude an Amount may hold. It leaves enough
// headroom below int64 that totals and deltas of valid amounts cannot wrap.
const MaxAmount Amount = 1_000_000_000_000_000

var (
	hundred   = decimal.NewFromInt(100)
	maxAmount = decimal.NewFromInt(int64(MaxAmount))
)

// Amount is a signed monetary value in cents.
type Amount int64

// Cents builds an Amount from a whole number of cents.
func Cents(c int64) Amount {
	return Amount(c)
}

// FromDecimal rounds d to two decimal places, half away from zero.
func FromDecimal(d decimal.Decimal) (Amount, error) {
	cents := d.Mul(hundred).Round(0)
	if cents.Abs().GreaterThan(maxAmount) {
		return 0, fmt.Errorf("%w: %s out of range", ErrInvalid, d.String())
	}

	return Amount(cents.IntPart()), nil
}

// Parse reads a user-entered amount. Both "12.34" and "12,34" are accepted.
func Parse(s string) (Amount, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if clean == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalid)
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalid, s)
	}

	return FromDecimal(d)
}

// Decimal returns the amount in major units.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.New(int64(a), -2)
}

// Abs returns the magnitude of a.
func (a Amount) Abs() Amount {
	if a < 0 {
		return -a
	}

	return a
}

// String formats the amount with exactly two decimals, e.g. "4.50".
func (a Amount) String() string {
	return a.Decimal().StringFixed(2)
}

// Format prefixes the currency symbol, keeping the sign in front: "-$6.50".
func (a Amount) Format(symbol string) string {
	if a < 0 {
		return "-" + symbol + a.Abs().String()
	}

	return symbol + a.String()
}

// MarshalJSON encodes the amount as a plain JSON number in major units.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal().String()), nil
}

// UnmarshalJSON accepts a JSON number or numeric string. null leaves the amount at zero.
func (a *Amount) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalid, data)
	}

	v, err := FromDecimal(d)
	if err != nil {
		return err
	}

	*a = v

	return nil
}
