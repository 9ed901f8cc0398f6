/*
Package factory creates payroll employees from a type tag and raw input.

PURPOSE:
  Maps case-insensitive type tags to constructors so callers (HTTP API, CLI,
  CSV batches) never switch on employment categories themselves. New
  categories are added with Register; nothing in the factory changes.

REGISTRY:
  tag (lowercased) -> Registration{Kind, Constructor, Required}

  Built-in tags:
    estagiario, intern       -> payroll.Intern
    efetivo, permanent       -> payroll.Permanent
    vendedor, salesperson    -> payroll.Salesperson  (requires "sales")
    freelancer               -> payroll.Freelancer   (requires "projects")

ERROR POLICY:
  Build returns the failure (TypeNotFoundError, MissingFieldError or the
  constructor's ValidationError). Create logs it and returns nil, so a batch
  of mixed input keeps going. Registering a nil constructor panics: that is
  a programming error, not bad input.

USAGE:
  f := factory.NewEmployeeFactory(logger)
  e := f.Create("vendedor", payroll.Fields{Name: "Ana", Hours: 40, Sales: "5000"})
  if e == nil {
      // logged already
  }

SEE ALSO:
  - payroll/employee.go: Constructors
  - generic/errors.go: Error taxonomy
  - factory/csv.go: Batch input
*/
package factory

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/warp/salary-engine/generic"
	"github.com/warp/salary-engine/payroll"
)

// Field names checked by Registration.Required.
const (
	FieldSales    = "sales"
	FieldProjects = "projects"
)

// Constructor builds an employee from validated-on-entry raw fields.
type Constructor func(f payroll.Fields) (payroll.Employee, error)

// Registration describes one employee type.
type Registration struct {
	Kind        payroll.Kind
	Constructor Constructor
	Required    []string // optional Fields that must be non-nil
}

// Record is one row of batch input.
type Record struct {
	Type   string
	Fields payroll.Fields
}

// EmployeeFactory is safe for concurrent use. Registration is expected at
// startup; lookups take a read lock.
type EmployeeFactory struct {
	mu    sync.RWMutex
	types map[string]Registration
	log   *zap.Logger
}

// NewEmployeeFactory returns a factory with the built-in types registered.
// A nil logger discards output.
func NewEmployeeFactory(logger *zap.Logger) *EmployeeFactory {
	if logger == nil {
		logger = zap.NewNop()
	}
	f := &EmployeeFactory{
		types: make(map[string]Registration),
		log:   logger.Named("factory"),
	}
	registerBuiltins(f)
	return f
}

func registerBuiltins(f *EmployeeFactory) {
	intern := Registration{
		Kind: payroll.KindIntern,
		Constructor: func(in payroll.Fields) (payroll.Employee, error) {
			return payroll.NewIntern(in.Name, in.Hours, in.OnVacation)
		},
	}
	permanent := Registration{
		Kind: payroll.KindPermanent,
		Constructor: func(in payroll.Fields) (payroll.Employee, error) {
			return payroll.NewPermanent(in.Name, in.Hours, in.OnVacation)
		},
	}
	salesperson := Registration{
		Kind: payroll.KindSalesperson,
		Constructor: func(in payroll.Fields) (payroll.Employee, error) {
			return payroll.NewSalesperson(in.Name, in.Hours, in.Sales, in.OnVacation)
		},
		Required: []string{FieldSales},
	}
	freelancer := Registration{
		Kind: payroll.KindFreelancer,
		Constructor: func(in payroll.Fields) (payroll.Employee, error) {
			return payroll.NewFreelancer(in.Name, in.Hours, in.Projects, in.OnVacation)
		},
		Required: []string{FieldProjects},
	}

	f.Register("estagiario", intern)
	f.Register("intern", intern)
	f.Register("efetivo", permanent)
	f.Register("permanent", permanent)
	f.Register("vendedor", salesperson)
	f.Register("salesperson", salesperson)
	f.Register("freelancer", freelancer)
}

// Register adds or replaces a type. Panics on a blank tag, a nil
// constructor or a Required entry that is not an optional field name.
func (f *EmployeeFactory) Register(tag string, r Registration) {
	key := normalizeTag(tag)
	if key == "" {
		panic("factory: blank employee type tag")
	}
	if r.Constructor == nil {
		panic(fmt.Sprintf("factory: nil constructor for employee type %q", tag))
	}
	for _, field := range r.Required {
		if field != FieldSales && field != FieldProjects {
			panic(fmt.Sprintf("factory: employee type %q requires unknown field %q", tag, field))
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.types[key] = r
}

// Lookup returns the registration for tag.
func (f *EmployeeFactory) Lookup(tag string) (Registration, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	r, ok := f.types[normalizeTag(tag)]
	return r, ok
}

// Types returns the registered tags, sorted.
func (f *EmployeeFactory) Types() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	tags := make([]string, 0, len(f.types))
	for t := range f.types {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

// Build validates and constructs, returning the reason on failure.
func (f *EmployeeFactory) Build(tag string, in payroll.Fields) (payroll.Employee, error) {
	r, ok := f.Lookup(tag)
	if !ok {
		return nil, &generic.TypeNotFoundError{Tag: tag}
	}
	for _, field := range r.Required {
		if !present(in, field) {
			return nil, &generic.MissingFieldError{Type: string(r.Kind), Field: field}
		}
	}
	e, err := r.Constructor(in)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", r.Kind, err)
	}
	return e, nil
}

// Create is Build with failures logged and swallowed. Callers must check
// for nil.
func (f *EmployeeFactory) Create(tag string, in payroll.Fields) payroll.Employee {
	e, err := f.Build(tag, in)
	if err != nil {
		f.log.Error("employee not created",
			zap.String("type", tag),
			zap.Any("name", in.Name),
			zap.Error(err),
		)
		return nil
	}
	return e
}

// CreateBatch creates every record it can. Failed records are logged and
// left out; the order of the rest is kept.
func (f *EmployeeFactory) CreateBatch(records []Record) []payroll.Employee {
	out := make([]payroll.Employee, 0, len(records))
	for _, rec := range records {
		if e := f.Create(rec.Type, rec.Fields); e != nil {
			out = append(out, e)
		}
	}
	return out
}

// FromSnapshot rebuilds an employee from a snapshot's type and input keys.
// Derived keys (pay, rates) are ignored and recomputed.
func (f *EmployeeFactory) FromSnapshot(s payroll.Snapshot) (payroll.Employee, error) {
	tag := s.String(payroll.KeyType)
	in := payroll.Fields{}
	in.Name, _ = s.Get(payroll.KeyName)
	in.Hours, _ = s.Get(payroll.KeyHours)
	in.OnVacation, _ = s.Get(payroll.KeyOnVacation)
	in.Sales, _ = s.Get(payroll.KeySales)
	in.Projects, _ = s.Get(payroll.KeyProjects)
	return f.Build(tag, in)
}

func normalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

func present(in payroll.Fields, field string) bool {
	switch field {
	case FieldSales:
		return in.Sales != nil
	case FieldProjects:
		return in.Projects != nil
	default:
		return false
	}
}
