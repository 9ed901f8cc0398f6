package payroll

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/warp/salary-engine/generic"
)

// =============================================================================
// FIELD VALIDATION
// =============================================================================

// NormalizeName trims v, collapses inner whitespace and title-cases every
// word. Applying it to its own output returns the same string.
func NormalizeName(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", &generic.ValidationError{Field: "name", Value: v, Reason: "must be a string"}
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return "", &generic.ValidationError{Field: "name", Value: v, Reason: "must not be empty or blank"}
	}
	// Casers keep state, so each call gets its own.
	lower := cases.Lower(language.Und)
	title := cases.Title(language.Und)
	for i, w := range words {
		w = lower.String(w)
		r, size := utf8.DecodeRuneInString(w)
		words[i] = title.String(string(r)) + w[size:]
	}
	return strings.Join(words, " "), nil
}

// ValidateHours accepts integers and integer-valued reals, never strings.
func ValidateHours(v any) (int, error) {
	return nonNegativeInt("hours", v)
}

// ValidateProjects follows the same rules as ValidateHours.
func ValidateProjects(v any) (int, error) {
	return nonNegativeInt("projects", v)
}

// ValidateSales accepts numbers and numeric strings. Unlike hours, "5000.50"
// is a valid sales figure.
func ValidateSales(v any) (generic.Money, error) {
	d, err := generic.DecimalValue(v)
	if err != nil {
		return generic.Money{}, &generic.ValidationError{Field: "sales", Value: v, Reason: err.Error()}
	}
	if d.IsNegative() {
		return generic.Money{}, &generic.ValidationError{Field: "sales", Value: v, Reason: "must not be negative"}
	}
	return generic.MoneyFromDecimal(d), nil
}

func nonNegativeInt(field string, v any) (int, error) {
	n, err := generic.WholeNumber(v)
	if err != nil {
		return 0, &generic.ValidationError{Field: field, Value: v, Reason: err.Error()}
	}
	if n < 0 {
		return 0, &generic.ValidationError{Field: field, Value: v, Reason: "must not be negative"}
	}
	return int(n), nil
}
