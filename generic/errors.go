/*
errors.go - Centralized error types for the salary engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Domain packages return these (or wrap them) so callers can branch with
  errors.Is / errors.As.

ERROR CATEGORIES:
  1. Validation errors - A field violates its invariant (constructor level)
  2. Factory errors    - Unknown employee type, missing required field
  3. Archive errors    - Duplicate payslip ID

PROPAGATION:
  Validation errors always reach the direct caller of a constructor.
  The factory's Create swallows every failure into a logged nil result so a
  batch of mixed input does not abort; Build returns them for callers that
  need the reason (HTTP API, CLI).

SEE ALSO:
  - payroll/validate.go: Produces ValidationError
  - factory/employee.go: Produces TypeNotFoundError and MissingFieldError
*/
package generic

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrValidation is wrapped by every field-level validation failure.
	ErrValidation = errors.New("validation failed")

	// ErrTypeNotFound is returned when no constructor is registered for a type tag.
	ErrTypeNotFound = errors.New("employee type not registered")

	// ErrMissingField is returned when a type requires a field the caller did not supply.
	ErrMissingField = errors.New("required field missing")

	// ErrUnknownFormat is returned when a report format is not supported.
	ErrUnknownFormat = errors.New("unknown report format")

	// ErrDuplicatePayslip is returned when a payslip ID is already archived.
	ErrDuplicatePayslip = errors.New("payslip already archived")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ValidationError describes which field was rejected and why.
type ValidationError struct {
	Field  string // e.g. "name", "hours", "sales"
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s (%v): %s", e.Field, e.Value, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// TypeNotFoundError names the tag that had no registration.
type TypeNotFoundError struct {
	Tag string
}

func (e *TypeNotFoundError) Error() string {
	return fmt.Sprintf("employee type not registered: %q", e.Tag)
}

func (e *TypeNotFoundError) Unwrap() error {
	return ErrTypeNotFound
}

// MissingFieldError names the field a type requires.
type MissingFieldError struct {
	Type  string
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("field %q is required for type %q", e.Field, e.Type)
}

func (e *MissingFieldError) Unwrap() error {
	return ErrMissingField
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsValidation returns true if the error came from field validation.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsNotFound returns true if the error indicates an unregistered type.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrTypeNotFound)
}

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrMissingField) ||
		errors.Is(err, ErrUnknownFormat)
}
