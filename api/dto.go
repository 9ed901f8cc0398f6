/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. Employee input fields
  are typed `any` on purpose: validation (and its error messages) belongs to
  the payroll constructors, not to the JSON decoder. Requests are decoded
  with UseNumber so sales figures reach the decimal code untouched.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

SEE ALSO:
  - handlers.go: Uses these types
  - payroll/snapshot.go: Employee JSON shape
*/
package api

import (
	"github.com/warp/salary-engine/factory"
	"github.com/warp/salary-engine/generic"
	"github.com/warp/salary-engine/payroll"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// CalculateRequest is one employee to calculate.
type CalculateRequest struct {
	Type       string `json:"type"`
	Name       any    `json:"name"`
	Hours      any    `json:"hours"`
	Sales      any    `json:"sales,omitempty"`
	Projects   any    `json:"projects,omitempty"`
	OnVacation any    `json:"on_vacation,omitempty"`
	Format     string `json:"format,omitempty"` // "json" (default) or "text"
	Save       bool   `json:"save,omitempty"`   // archive the payslip
}

func (r CalculateRequest) record() factory.Record {
	return factory.Record{
		Type: r.Type,
		Fields: payroll.Fields{
			Name:       r.Name,
			Hours:      r.Hours,
			Sales:      r.Sales,
			Projects:   r.Projects,
			OnVacation: r.OnVacation,
		},
	}
}

// CalculateResponse wraps the employee snapshot.
type CalculateResponse struct {
	PayslipID string           `json:"payslip_id,omitempty"`
	Employee  payroll.Snapshot `json:"employee"`
}

// BatchRequest calculates many employees; bad records do not fail the batch.
type BatchRequest struct {
	Employees []CalculateRequest `json:"employees"`
	Save      bool               `json:"save,omitempty"`
}

// BatchResultDTO is the outcome for one record, by position.
type BatchResultDTO struct {
	Index     int               `json:"index"`
	PayslipID string            `json:"payslip_id,omitempty"`
	Employee  *payroll.Snapshot `json:"employee,omitempty"`
	Error     string            `json:"error,omitempty"`
}

// BatchResponse summarises a batch.
type BatchResponse struct {
	Created int              `json:"created"`
	Failed  int              `json:"failed"`
	Results []BatchResultDTO `json:"results"`
}

// TypesResponse lists registered employee type tags and report formats.
type TypesResponse struct {
	Types   []string `json:"types"`
	Formats []string `json:"formats"`
}

// PayslipDTO is an archived payslip.
type PayslipDTO struct {
	ID         string           `json:"id"`
	Type       string           `json:"type"`
	Name       string           `json:"name"`
	Hours      int              `json:"hours"`
	OnVacation bool             `json:"on_vacation"`
	TotalPay   generic.Money    `json:"total_pay"`
	CreatedAt  string           `json:"created_at"`
	Employee   payroll.Snapshot `json:"employee"`
}

func toPayslipDTO(p payroll.Payslip) PayslipDTO {
	return PayslipDTO{
		ID:         p.ID,
		Type:       p.Type,
		Name:       p.Name,
		Hours:      p.Hours,
		OnVacation: p.OnVacation,
		TotalPay:   p.TotalPay,
		CreatedAt:  p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		Employee:   p.Snapshot,
	}
}

// ErrorResponse is returned for all errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
