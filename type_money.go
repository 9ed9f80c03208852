package carteira

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// BRL is the currency every ledger amount is denominated in.
const BRL = "BRL"

// Money represents a monetary value in BRL.
//
// The value is kept as an exact decimal for the whole computation chain;
// rounding to the currency fraction happens only on display and on persist.
type Money struct {
	value decimal.Decimal // as major unit value
}

// M is a convenient factory for Money.
func M[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) Money {
	return Money{value: newDecimal(value)}
}

// currency returns the BRL currency metadata (symbol, fraction, formatting).
func (m Money) currency() *money.Currency {
	// the Money constructor guarantees a non-nil currency.
	return money.New(0, BRL).Currency()
}

// String formats the value with the BRL currency formatter (e.g. "R$1.234,56").
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Round(int32(cur.Fraction)).Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

// SignedString returns the formatted value with an explicit sign, and "-" for zero.
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

// Round returns the value rounded to the currency fraction (2 digits for BRL).
// It is applied only to final reported figures, never to intermediates.
func (m Money) Round() Money {
	return Money{value: m.value.Round(int32(m.currency().Fraction))}
}

// Decimal returns the underlying exact decimal value.
func (m Money) Decimal() decimal.Decimal { return m.value }

func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool           { return m.value.LessThan(n.value) }
func (m Money) LessThanOrEqual(n Money) bool    { return m.value.LessThanOrEqual(n.value) }
func (m Money) GreaterThan(n Money) bool        { return m.value.GreaterThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }
func (m Money) Neg() Money                      { return Money{value: m.value.Neg()} }
func (m Money) Abs() Money                      { return Money{value: m.value.Abs()} }

// binary operators.
func (m Money) Add(n Money) Money       { return Money{value: m.value.Add(n.value)} }
func (m Money) Sub(n Money) Money       { return Money{value: m.value.Sub(n.value)} }
func (m Money) Mul(q Quantity) Money    { return Money{value: m.value.Mul(q.value)} }
func (m Money) Div(q Quantity) Money    { return Money{value: m.value.Div(q.value)} }
func (m Money) MulRate(r decimal.Decimal) Money {
	return Money{value: m.value.Mul(r)}
}

// Min returns the smaller of m and n.
func (m Money) Min(n Money) Money {
	if m.LessThan(n) {
		return m
	}
	return n
}

// MarshalJSON persists the value as a plain decimal number.
func (m Money) MarshalJSON() ([]byte, error) {
	return m.value.MarshalJSON()
}

// UnmarshalJSON reads the value from a plain decimal number.
func (m *Money) UnmarshalJSON(data []byte) error {
	return m.value.UnmarshalJSON(data)
}
