package factory_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/warp/salary-engine/factory"
	"github.com/warp/salary-engine/generic"
	"github.com/warp/salary-engine/payroll"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func newObservedFactory(t *testing.T) (*factory.EmployeeFactory, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.ErrorLevel)
	return factory.NewEmployeeFactory(zap.New(core)), logs
}

func lastLogError(t *testing.T, logs *observer.ObservedLogs) string {
	t.Helper()
	entries := logs.All()
	require.NotEmpty(t, entries, "expected an error log entry")
	fields := entries[len(entries)-1].ContextMap()
	msg, _ := fields["error"].(string)
	return msg
}

// dummy is a category registered at runtime.
type dummy struct {
	name       string
	hours      int
	onVacation bool
}

func (d *dummy) Name() string       { return d.name }
func (d *dummy) Hours() int         { return d.hours }
func (d *dummy) OnVacation() bool   { return d.onVacation }
func (d *dummy) Kind() payroll.Kind { return "Dummy" }
func (d *dummy) MonthlyPay() generic.Money {
	return generic.MustMoney("1.00").MulInt(d.hours)
}
func (d *dummy) VacationBonus() generic.Money {
	if d.onVacation {
		return generic.MustMoney("123.00")
	}
	return generic.ZeroMoney
}
func (d *dummy) Snapshot() payroll.Snapshot {
	return payroll.NewSnapshot(payroll.Field{Key: payroll.KeyName, Value: d.name})
}

// =============================================================================
// BUILT-IN TYPES
// =============================================================================

func TestCreate_BuiltInTypes(t *testing.T) {
	f, logs := newObservedFactory(t)

	est := f.Create("estagiario", payroll.Fields{Name: "Pedro Teste", Hours: 50})
	require.IsType(t, &payroll.Intern{}, est)
	assert.Equal(t, 50, est.Hours())

	efet := f.Create("EFETIVO", payroll.Fields{Name: "João Exemplo", Hours: 200})
	require.IsType(t, &payroll.Permanent{}, efet)

	vend := f.Create("Vendedor", payroll.Fields{Name: "Ana Teste", Hours: 40, Sales: 3000})
	require.IsType(t, &payroll.Salesperson{}, vend)
	assert.True(t, generic.MustMoney("3000").Equal(vend.(*payroll.Salesperson).Sales()))

	freel := f.Create("freelancer", payroll.Fields{Name: "Bia Teste", Hours: 100, Projects: 2})
	require.IsType(t, &payroll.Freelancer{}, freel)
	assert.Equal(t, 2, freel.(*payroll.Freelancer).Projects())

	assert.Zero(t, logs.Len())
}

func TestCreate_EnglishAliases(t *testing.T) {
	f := factory.NewEmployeeFactory(nil)
	e := f.Create("Salesperson", payroll.Fields{Name: "ana", Hours: 80, Sales: "5000"})
	require.NotNil(t, e)
	assert.Equal(t, payroll.KindSalesperson, e.Kind())
	assert.Equal(t, "1450.00", payroll.TotalPay(e).String())
}

// =============================================================================
// FAILURES ARE LOGGED, NOT RAISED
// =============================================================================

func TestCreate_UnknownType(t *testing.T) {
	f, logs := newObservedFactory(t)

	e := f.Create("gerente", payroll.Fields{Name: "X", Hours: 0})

	assert.Nil(t, e)
	assert.Contains(t, lastLogError(t, logs), "not registered")

	_, err := f.Build("gerente", payroll.Fields{Name: "X", Hours: 0})
	assert.ErrorIs(t, err, generic.ErrTypeNotFound)
	assert.True(t, generic.IsNotFound(err))
}

func TestCreate_SalespersonWithoutSales(t *testing.T) {
	f, logs := newObservedFactory(t)

	e := f.Create("vendedor", payroll.Fields{Name: "Ana", Hours: 40})

	assert.Nil(t, e)
	assert.Contains(t, lastLogError(t, logs), `"sales"`)

	_, err := f.Build("vendedor", payroll.Fields{Name: "Ana", Hours: 40})
	var missing *generic.MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "sales", missing.Field)
}

func TestCreate_FreelancerWithoutProjects(t *testing.T) {
	f, logs := newObservedFactory(t)

	assert.Nil(t, f.Create("freelancer", payroll.Fields{Name: "Teste", Hours: 50}))
	assert.Contains(t, lastLogError(t, logs), `"projects"`)
}

func TestCreate_ValidationErrorSwallowed(t *testing.T) {
	f, logs := newObservedFactory(t)

	assert.NotPanics(t, func() {
		assert.Nil(t, f.Create("efetivo", payroll.Fields{Name: "  ", Hours: 10}))
	})
	assert.Equal(t, 1, logs.Len())

	_, err := f.Build("efetivo", payroll.Fields{Name: "Ana", Hours: -1})
	assert.True(t, generic.IsValidation(err))
}

// =============================================================================
// OPEN REGISTRY
// =============================================================================

func TestRegister_CustomType(t *testing.T) {
	f := factory.NewEmployeeFactory(nil)
	f.Register("Dummy", factory.Registration{
		Kind: "Dummy",
		Constructor: func(in payroll.Fields) (payroll.Employee, error) {
			name, err := payroll.NormalizeName(in.Name)
			if err != nil {
				return nil, err
			}
			hours, err := payroll.ValidateHours(in.Hours)
			if err != nil {
				return nil, err
			}
			return &dummy{name: name, hours: hours, onVacation: generic.Truthy(in.OnVacation)}, nil
		},
	})

	e := f.Create("dummy", payroll.Fields{Name: "teste dummy", Hours: 10, OnVacation: true})
	require.NotNil(t, e)
	assert.Equal(t, "Teste Dummy", e.Name())
	assert.Equal(t, "10.00", e.MonthlyPay().Round().String())
	assert.Equal(t, "133.00", payroll.TotalPay(e).String())
	assert.Contains(t, f.Types(), "dummy")
}

func TestRegister_NilConstructorPanics(t *testing.T) {
	f := factory.NewEmployeeFactory(nil)
	assert.Panics(t, func() { f.Register("broken", factory.Registration{}) })
	assert.Panics(t, func() {
		f.Register("  ", factory.Registration{Constructor: func(payroll.Fields) (payroll.Employee, error) { return nil, nil }})
	})
}

func TestRegister_UnknownRequiredFieldPanics(t *testing.T) {
	// GIVEN a registration requiring a field the factory cannot check
	f := factory.NewEmployeeFactory(nil)
	build := func(payroll.Fields) (payroll.Employee, error) { return nil, nil }

	// THEN registering it fails loudly instead of never enforcing it
	assert.PanicsWithValue(t,
		`factory: employee type "gerente" requires unknown field "bonus"`,
		func() {
			f.Register("gerente", factory.Registration{Constructor: build, Required: []string{"bonus"}})
		})
	_, ok := f.Lookup("gerente")
	assert.False(t, ok)

	// AND the known optional fields are still accepted
	assert.NotPanics(t, func() {
		f.Register("comissionado", factory.Registration{
			Constructor: build,
			Required:    []string{factory.FieldSales, factory.FieldProjects},
		})
	})
}

func TestTypes_Sorted(t *testing.T) {
	f := factory.NewEmployeeFactory(nil)
	assert.Equal(t, []string{
		"efetivo", "estagiario", "freelancer", "intern", "permanent", "salesperson", "vendedor",
	}, f.Types())
}

// =============================================================================
// BATCH AND ROUND TRIP
// =============================================================================

func TestCreateBatch_SkipsFailures(t *testing.T) {
	f, logs := newObservedFactory(t)

	out := f.CreateBatch([]factory.Record{
		{Type: "estagiario", Fields: payroll.Fields{Name: "João Silva", Hours: 160, OnVacation: true}},
		{Type: "efetivo", Fields: payroll.Fields{Name: "Maria Souza", Hours: 200}},
		{Type: "vendedor", Fields: payroll.Fields{Name: "Carlos Lima", Hours: 180, Sales: 15000.0}},
		{Type: "freelancer", Fields: payroll.Fields{Name: "Ana Costa", Hours: 120, Projects: 4}},
		{Type: "gerente", Fields: payroll.Fields{Name: "Teste Inválido", Hours: 0}},
	})

	require.Len(t, out, 4)
	assert.Equal(t, "Ana Costa", out[3].Name())
	assert.Equal(t, 1, logs.Len())
}

func TestFromSnapshot_ReproducesTotalPay(t *testing.T) {
	f := factory.NewEmployeeFactory(nil)
	inputs := []factory.Record{
		{Type: "estagiario", Fields: payroll.Fields{Name: "João", Hours: 120, OnVacation: true}},
		{Type: "efetivo", Fields: payroll.Fields{Name: "Maria", Hours: 213}},
		{Type: "vendedor", Fields: payroll.Fields{Name: "Carlos", Hours: 37, Sales: "10333.33", OnVacation: true}},
		{Type: "freelancer", Fields: payroll.Fields{Name: "Ana", Hours: 101, Projects: 7}},
	}

	for _, in := range inputs {
		orig, err := f.Build(in.Type, in.Fields)
		require.NoError(t, err)

		// Through JSON and back, as a stored structured report would be.
		b, err := json.Marshal(orig.Snapshot())
		require.NoError(t, err)
		var snap payroll.Snapshot
		require.NoError(t, json.Unmarshal(b, &snap))

		rebuilt, err := f.FromSnapshot(snap)
		require.NoError(t, err, in.Type)
		assert.True(t, payroll.TotalPay(orig).Equal(payroll.TotalPay(rebuilt)), in.Type)
		assert.Equal(t, orig.Kind(), rebuilt.Kind())
	}
}

// =============================================================================
// CSV
// =============================================================================

func TestLoadCSV(t *testing.T) {
	f, logs := newObservedFactory(t)
	csv := strings.Join([]string{
		"type,name,hours,sales,projects,on_vacation",
		"estagiario,joão silva,160,,,false",
		"vendedor,Ana Silva,80,5000.00,,sim",
		"freelancer,Pedro,120,,3,",
		"vendedor,Sem Vendas,40,,,",
		"efetivo,Horas Ruins,dez,,,",
	}, "\n")

	records, err := factory.LoadCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, records, 5)

	out := f.CreateBatch(records)
	require.Len(t, out, 3)
	assert.Equal(t, "João Silva", out[0].Name())
	assert.True(t, out[1].OnVacation())
	assert.Equal(t, "2250.00", payroll.TotalPay(out[1]).String())
	assert.Equal(t, "1000.00", payroll.TotalPay(out[2]).String())
	assert.Equal(t, 2, logs.Len())
}
