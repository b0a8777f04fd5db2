// Package money provides the single fixed-point monetary value type used
// throughout the ledger and reporting engine. Every amount carries exactly
// two fractional digits; any operation that can lose precision rounds
// half-up at the boundary, so call sites never make rounding decisions.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// scale is the number of fractional digits every Money value carries.
const scale = 2

// Money is a signed fixed-point amount with two fractional digits.
// The zero value is 0.00 and ready to use.
type Money struct {
	dec decimal.Decimal
}

// Zero is the 0.00 amount.
var Zero = Money{}

// FromDecimal rounds d half-up to two fractional digits and returns it as
// Money. Ties go toward positive infinity for negative amounts too:
// -0.125 rounds to -0.12, not -0.13.
func FromDecimal(d decimal.Decimal) Money {
	return Money{dec: roundHalfUp(d, scale)}
}

var half = decimal.New(5, -1)

// roundHalfUp rounds to places fractional digits with ties toward positive
// infinity. decimal.Round rounds ties away from zero, which differs on
// negative amounts.
func roundHalfUp(d decimal.Decimal, places int32) decimal.Decimal {
	return d.Shift(places).Add(half).Floor().Shift(-places)
}

// FromString parses a decimal string such as "193.33" into Money.
// Inputs with more than two fractional digits are rejected rather than
// silently rounded: stored amounts must already be exact.
func FromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	if d.Exponent() < -scale {
		return Money{}, fmt.Errorf("amount %q has more than %d decimal places", s, scale)
	}
	return Money{dec: d}, nil
}

// MustParse parses s or panics. For constants in tests and defaults only.
func MustParse(s string) Money {
	m, err := FromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

// FromInt returns n whole currency units as Money.
func FromInt(n int64) Money {
	return Money{dec: decimal.NewFromInt(n)}
}

// Decimal returns the underlying decimal value.
func (m Money) Decimal() decimal.Decimal { return m.dec }

// Add returns m + o. Exact, no rounding.
func (m Money) Add(o Money) Money { return Money{dec: m.dec.Add(o.dec)} }

// Sub returns m - o. Exact, no rounding.
func (m Money) Sub(o Money) Money { return Money{dec: m.dec.Sub(o.dec)} }

// Neg returns -m.
func (m Money) Neg() Money { return Money{dec: m.dec.Neg()} }

// Mul returns m scaled by d, rounded to two fractional digits.
func (m Money) Mul(d decimal.Decimal) Money {
	return FromDecimal(m.dec.Mul(d))
}

// Div returns m divided by d, rounded to two fractional digits.
func (m Money) Div(d decimal.Decimal) Money {
	return FromDecimal(m.dec.DivRound(d, scale+2))
}

// DivInt returns m divided by n, rounded to two fractional digits.
func (m Money) DivInt(n int64) Money {
	return m.Div(decimal.NewFromInt(n))
}

// Cmp compares m and o: -1 if m < o, 0 if equal, +1 if m > o.
func (m Money) Cmp(o Money) int { return m.dec.Cmp(o.dec) }

// Equal reports whether m and o represent the same amount.
func (m Money) Equal(o Money) bool { return m.dec.Equal(o.dec) }

// LessThan reports whether m < o.
func (m Money) LessThan(o Money) bool { return m.dec.LessThan(o.dec) }

// IsZero reports whether m is 0.00.
func (m Money) IsZero() bool { return m.dec.IsZero() }

// IsNegative reports whether m < 0.
func (m Money) IsNegative() bool { return m.dec.IsNegative() }

// IsPositive reports whether m > 0.
func (m Money) IsPositive() bool { return m.dec.IsPositive() }

// String formats m with exactly two fractional digits, e.g. "193.33".
func (m Money) String() string { return m.dec.StringFixed(scale) }

// Sum adds a sequence of amounts.
func Sum(amounts ...Money) Money {
	total := Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// Percent returns part/whole*100 rounded half-up to two fractional digits,
// or zero when whole is zero. Used for margin and profitability percentages.
func Percent(part, whole Money) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	quotient := part.dec.Mul(decimal.NewFromInt(100)).DivRound(whole.dec, scale+4)
	return roundHalfUp(quotient, scale)
}
