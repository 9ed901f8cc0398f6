// Package payroll implements the salary model: one variant per employment
// category, each with validated fields and its own pay formula.
package payroll

import "github.com/warp/salary-engine/generic"

// =============================================================================
// EMPLOYMENT CATEGORIES
// =============================================================================

// Kind is the display name of an employment category. It is what reports
// print as "Cargo" and what snapshots carry under the "type" key.
type Kind string

const (
	KindIntern      Kind = "Estagiario"
	KindPermanent   Kind = "Efetivo"
	KindSalesperson Kind = "Vendedor"
	KindFreelancer  Kind = "Freelancer"
)

// =============================================================================
// EMPLOYEE - Capability set shared by every variant
// =============================================================================

// Employee is implemented by each employment category. Implementations are
// immutable; the With* methods on the concrete types return validated copies.
type Employee interface {
	Name() string
	Hours() int
	OnVacation() bool
	Kind() Kind

	// MonthlyPay is the category formula before the vacation bonus.
	MonthlyPay() generic.Money

	// VacationBonus is the category add-on, zero when not on vacation.
	VacationBonus() generic.Money

	Snapshot() Snapshot
}

// TotalPay is MonthlyPay plus VacationBonus, quantized to cents with
// round-half-up.
func TotalPay(e Employee) generic.Money {
	return e.MonthlyPay().Add(e.VacationBonus()).Round()
}

// Fields carries raw, unvalidated input for a constructor. A nil field means
// the caller did not supply it.
type Fields struct {
	Name       any
	Hours      any
	OnVacation any
	Sales      any
	Projects   any
}
