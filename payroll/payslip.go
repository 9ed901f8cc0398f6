/*
payslip.go - Archived calculations and the archive interface

PURPOSE:
  A Payslip freezes one calculation: the derived money values plus the full
  snapshot. Employees themselves are never stored; they are rebuilt from
  the snapshot through the factory when needed.

APPEND-ONLY CONTRACT:
  PayslipStore has no Update or Delete. A corrected calculation is a new
  payslip with a new ID. Saving an ID twice fails with
  generic.ErrDuplicatePayslip.

IMPLEMENTATIONS:
  - store/sqlite/sqlite.go: SQLite file or ":memory:"
  - store/memory/memory.go: In-process maps, for tests and throwaway runs

SEE ALSO:
  - snapshot.go: What is stored
  - factory/employee.go: FromSnapshot
*/
package payroll

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/warp/salary-engine/generic"
)

// Payslip is a stored calculation.
type Payslip struct {
	ID            string
	Type          string
	Name          string
	Hours         int
	OnVacation    bool
	MonthlyPay    generic.Money
	VacationBonus generic.Money
	TotalPay      generic.Money
	Snapshot      Snapshot
	CreatedAt     time.Time
}

// NewPayslip captures e with a fresh ID.
func NewPayslip(e Employee) Payslip {
	return Payslip{
		ID:            uuid.NewString(),
		Type:          string(e.Kind()),
		Name:          e.Name(),
		Hours:         e.Hours(),
		OnVacation:    e.OnVacation(),
		MonthlyPay:    e.MonthlyPay(),
		VacationBonus: e.VacationBonus(),
		TotalPay:      TotalPay(e),
		Snapshot:      e.Snapshot(),
		CreatedAt:     time.Now().UTC(),
	}
}

// PayslipStore persists payslips.
type PayslipStore interface {
	// SavePayslip appends p. A zero CreatedAt is set to now.
	SavePayslip(ctx context.Context, p Payslip) error

	// GetPayslip returns nil, nil when id is unknown.
	GetPayslip(ctx context.Context, id string) (*Payslip, error)

	// ListPayslips returns newest first. limit <= 0 means all.
	ListPayslips(ctx context.Context, limit int) ([]Payslip, error)
}
