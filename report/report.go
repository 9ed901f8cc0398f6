/*
Package report renders payroll employees as text or JSON.

PURPOSE:
  Both renderers read an employee's Snapshot and never touch the concrete
  variant, so a category registered at runtime renders without changes here.
  Renderers are read-only views.

FORMATS:
  text: pt-BR payslip, currency as "R$ 1.234.567,89"
  json: the snapshot as an object, money as plain numbers

USAGE:
  r, err := report.ForFormat("text")
  out, err := r.Render(employee)

SEE ALSO:
  - payroll/snapshot.go: Snapshot keys
*/
package report

import (
	"fmt"
	"strings"

	"github.com/warp/salary-engine/generic"
	"github.com/warp/salary-engine/payroll"
)

// Renderer turns an employee into a report.
type Renderer interface {
	Render(e payroll.Employee) (string, error)
}

const (
	FormatText = "text"
	FormatJSON = "json"
)

// ParseFormat trims and lower-cases format. An empty name stays empty so
// callers can pick their own default.
func ParseFormat(format string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(format)); f {
	case FormatText, FormatJSON, "":
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", generic.ErrUnknownFormat, format)
	}
}

// ForFormat returns a renderer with default settings. Empty means text.
func ForFormat(format string) (Renderer, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}
	if f == FormatJSON {
		return NewJSONRenderer(), nil
	}
	return NewTextRenderer(), nil
}

// Formats lists the supported format names.
func Formats() []string {
	return []string{FormatText, FormatJSON}
}
