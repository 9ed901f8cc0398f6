package generic

import (
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	errNotInteger = errors.New("must be an integer")
	errFractional = errors.New("must be an integer or an integer-valued number")
	errNotNumeric = errors.New("must be a number or a numeric string")
	errOverflow   = errors.New("out of range")
)

// MaxExponent bounds the decimal exponent accepted from input, in both
// directions. Rescaling a decimal costs time proportional to the exponent,
// so "1e10000000" must be refused before any arithmetic touches it.
const MaxExponent = 28

// maxWholeExponent is the largest exponent that can still fit an int64.
const maxWholeExponent = 18

func checkExponent(d decimal.Decimal) error {
	if exp := d.Exponent(); exp > MaxExponent || exp < -MaxExponent {
		return errOverflow
	}
	return nil
}

// WholeNumber converts Go integer kinds, integer-valued floats, json.Number
// and decimal.Decimal to int64. Strings are never accepted.
func WholeNumber(v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint:
		return uintToInt64(uint64(n))
	case uint8:
		return int64(n), nil
	case uint16:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case uint64:
		return uintToInt64(n)
	case float32:
		return floatToInt64(float64(n))
	case float64:
		return floatToInt64(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
		d, err := decimal.NewFromString(n.String())
		if err != nil {
			return 0, errNotInteger
		}
		return decimalToInt64(d)
	case decimal.Decimal:
		return decimalToInt64(n)
	default:
		return 0, errNotInteger
	}
}

func uintToInt64(u uint64) (int64, error) {
	if u > math.MaxInt64 {
		return 0, errOverflow
	}
	return int64(u), nil
}

func floatToInt64(f float64) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Trunc(f) != f {
		return 0, errFractional
	}
	if f > math.MaxInt64 || f < math.MinInt64 {
		return 0, errOverflow
	}
	return int64(f), nil
}

func decimalToInt64(d decimal.Decimal) (int64, error) {
	if d.Exponent() > maxWholeExponent || d.Exponent() < -MaxExponent {
		return 0, errOverflow
	}
	if !d.Equal(d.Truncate(0)) {
		return 0, errFractional
	}
	if !d.BigInt().IsInt64() {
		return 0, errOverflow
	}
	return d.IntPart(), nil
}

// DecimalValue converts numbers and numeric strings to decimal.Decimal.
// Floats go through their shortest decimal representation, so 5000.1
// becomes exactly 5000.1. Exponents beyond MaxExponent are rejected.
func DecimalValue(v any) (decimal.Decimal, error) {
	d, err := decimalValue(v)
	if err != nil {
		return decimal.Zero, err
	}
	if err := checkExponent(d); err != nil {
		return decimal.Zero, err
	}
	return d, nil
}

func decimalValue(v any) (decimal.Decimal, error) {
	switch n := v.(type) {
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		if err != nil {
			return decimal.Zero, errNotNumeric
		}
		return d, nil
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		if err != nil {
			return decimal.Zero, errNotNumeric
		}
		return d, nil
	case decimal.Decimal:
		return n, nil
	case Money:
		return n.Decimal(), nil
	case float32:
		return floatToDecimal(float64(n))
	case float64:
		return floatToDecimal(n)
	case bool:
		return decimal.Zero, errNotNumeric
	}
	i, err := WholeNumber(v)
	if err != nil {
		return decimal.Zero, errNotNumeric
	}
	return decimal.NewFromInt(i), nil
}

func floatToDecimal(f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, errNotNumeric
	}
	return decimal.NewFromFloat(f), nil
}

// Truthy reports whether v counts as "yes": non-zero numbers, non-empty
// strings and collections, non-nil pointers, and true.
func Truthy(v any) bool {
	switch b := v.(type) {
	case nil:
		return false
	case bool:
		return b
	case string:
		return b != ""
	case json.Number:
		d, err := decimal.NewFromString(b.String())
		return err != nil || !d.IsZero()
	case decimal.Decimal:
		return !b.IsZero()
	case Money:
		return !b.IsZero()
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	case reflect.Slice, reflect.Map, reflect.Array, reflect.Chan:
		return rv.Len() > 0
	case reflect.Pointer, reflect.Interface, reflect.Func:
		return !rv.IsNil()
	default:
		return true
	}
}
