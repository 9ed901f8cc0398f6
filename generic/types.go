/*
Package generic provides the domain-agnostic building blocks of the salary engine.

PURPOSE:
  Holds the pieces every payroll variant leans on but that know nothing about
  employment categories: exact money arithmetic, the error taxonomy, and the
  coercion helpers that turn loosely typed input into validated values.

KEY CONCEPTS IN THIS FILE (types.go):
  - Money: a currency amount backed by decimal.Decimal
  - Round: quantization to cents using round-half-up

DESIGN PRINCIPLES:
  1. Precision: money never passes through float64 in arithmetic
  2. Immutability: every operation returns a new Money
  3. Wire format: money is emitted as a bare JSON number with two decimals

USAGE:
  rate := generic.MustMoney("20.00")
  pay := rate.MulInt(180).Add(generic.MustMoney("25.00").MulInt(20))
  pay.Round().String() // "4100.00"

SEE ALSO:
  - errors.go: Error taxonomy
  - coerce.go: Input coercion
*/
package generic

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// MONEY - Fixed-point currency amount
// =============================================================================

// CentPlaces is the number of decimal places money is quantized to.
const CentPlaces int32 = 2

type Money struct {
	value decimal.Decimal
}

// ZeroMoney is 0.00.
var ZeroMoney = Money{value: decimal.Zero}

// NewMoney parses a decimal string such as "1234.56".
func NewMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid money %q: %w", s, err)
	}
	return Money{value: d}, nil
}

// MustMoney parses s or panics. Use for compile-time constants only.
func MustMoney(s string) Money {
	m, err := NewMoney(s)
	if err != nil {
		panic(err)
	}
	return m
}

func MoneyFromInt(v int64) Money               { return Money{value: decimal.NewFromInt(v)} }
func MoneyFromDecimal(d decimal.Decimal) Money { return Money{value: d} }

func (m Money) Decimal() decimal.Decimal    { return m.value }
func (m Money) Add(o Money) Money           { return Money{value: m.value.Add(o.value)} }
func (m Money) Sub(o Money) Money           { return Money{value: m.value.Sub(o.value)} }
func (m Money) Mul(d decimal.Decimal) Money { return Money{value: m.value.Mul(d)} }
func (m Money) MulInt(n int) Money          { return Money{value: m.value.Mul(decimal.NewFromInt(int64(n)))} }
func (m Money) IsZero() bool                { return m.value.IsZero() }
func (m Money) IsNegative() bool            { return m.value.IsNegative() }
func (m Money) GreaterThan(o Money) bool    { return m.value.GreaterThan(o.value) }
func (m Money) LessThan(o Money) bool       { return m.value.LessThan(o.value) }
func (m Money) Equal(o Money) bool          { return m.value.Equal(o.value) }

// Round quantizes to cents. Halves round away from zero, which is
// round-half-up for the non-negative amounts payroll produces.
func (m Money) Round() Money {
	return Money{value: m.value.Round(CentPlaces)}
}

// String returns the amount with exactly two decimals.
func (m Money) String() string {
	return m.value.StringFixed(CentPlaces)
}

// MarshalJSON emits a bare number, never a quoted string.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts both 12.5 and "12.5".
func (m *Money) UnmarshalJSON(b []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return err
	}
	m.value = d
	return nil
}

// =============================================================================
// RATE - Dimensionless multiplier (commission percentages)
// =============================================================================

type Rate struct {
	value decimal.Decimal
}

// MustRate parses s or panics. Use for compile-time constants only.
func MustRate(s string) Rate {
	return Rate{value: decimal.RequireFromString(s)}
}

func (r Rate) Decimal() decimal.Decimal { return r.value }
func (r Rate) String() string           { return r.value.String() }

// MarshalJSON emits a bare number, like Money.
func (r Rate) MarshalJSON() ([]byte, error) {
	return []byte(r.value.String()), nil
}
