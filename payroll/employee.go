package payroll

import "github.com/warp/salary-engine/generic"

// base holds the validated fields every category shares. Variants embed it
// and supply MonthlyPay, VacationBonus, Kind and Snapshot.
type base struct {
	name       string
	hours      int
	onVacation bool
}

func newBase(name, hours, onVacation any) (base, error) {
	n, err := NormalizeName(name)
	if err != nil {
		return base{}, err
	}
	h, err := ValidateHours(hours)
	if err != nil {
		return base{}, err
	}
	return base{name: n, hours: h, onVacation: generic.Truthy(onVacation)}, nil
}

func (b base) Name() string     { return b.name }
func (b base) Hours() int       { return b.hours }
func (b base) OnVacation() bool { return b.onVacation }

func (b base) bonusIfOnVacation(amount generic.Money) generic.Money {
	if b.onVacation {
		return amount
	}
	return generic.ZeroMoney
}

// =============================================================================
// INTERN
// =============================================================================

var (
	InternHourlyRate    = generic.MustMoney("10.00")
	InternVacationBonus = generic.MustMoney("200.00")
)

type Intern struct {
	base
}

var _ Employee = (*Intern)(nil)

func NewIntern(name, hours, onVacation any) (*Intern, error) {
	b, err := newBase(name, hours, onVacation)
	if err != nil {
		return nil, err
	}
	return &Intern{base: b}, nil
}

func (i *Intern) Kind() Kind                   { return KindIntern }
func (i *Intern) MonthlyPay() generic.Money    { return InternHourlyRate.MulInt(i.hours) }
func (i *Intern) VacationBonus() generic.Money { return i.bonusIfOnVacation(InternVacationBonus) }

func (i *Intern) Snapshot() Snapshot {
	return baseSnapshot(i).With("hourly_rate", InternHourlyRate)
}

func (i *Intern) WithHours(hours any) (*Intern, error) {
	return NewIntern(i.name, hours, i.onVacation)
}

func (i *Intern) WithOnVacation(onVacation any) *Intern {
	c := *i
	c.onVacation = generic.Truthy(onVacation)
	return &c
}

// =============================================================================
// PERMANENT - Overtime above a monthly threshold
// =============================================================================

const PermanentHoursThreshold = 180

var (
	PermanentHourlyRate    = generic.MustMoney("20.00")
	PermanentOvertimeRate  = generic.MustMoney("25.00")
	PermanentVacationBonus = generic.MustMoney("1000.00")
)

type Permanent struct {
	base
}

var _ Employee = (*Permanent)(nil)

func NewPermanent(name, hours, onVacation any) (*Permanent, error) {
	b, err := newBase(name, hours, onVacation)
	if err != nil {
		return nil, err
	}
	return &Permanent{base: b}, nil
}

func (p *Permanent) Kind() Kind { return KindPermanent }

func (p *Permanent) MonthlyPay() generic.Money {
	if p.hours <= PermanentHoursThreshold {
		return PermanentHourlyRate.MulInt(p.hours)
	}
	regular := PermanentHourlyRate.MulInt(PermanentHoursThreshold)
	return regular.Add(PermanentOvertimeRate.MulInt(p.hours - PermanentHoursThreshold))
}

func (p *Permanent) VacationBonus() generic.Money {
	return p.bonusIfOnVacation(PermanentVacationBonus)
}

func (p *Permanent) Snapshot() Snapshot {
	return baseSnapshot(p).
		With("hourly_rate", PermanentHourlyRate).
		With("overtime_rate", PermanentOvertimeRate).
		With("hours_threshold", PermanentHoursThreshold)
}

func (p *Permanent) WithHours(hours any) (*Permanent, error) {
	return NewPermanent(p.name, hours, p.onVacation)
}

func (p *Permanent) WithOnVacation(onVacation any) *Permanent {
	c := *p
	c.onVacation = generic.Truthy(onVacation)
	return &c
}

// =============================================================================
// SALESPERSON - Hourly base plus commission
// =============================================================================

var (
	SalespersonHourlyRate     = generic.MustMoney("15.00")
	SalespersonCommissionRate = generic.MustRate("0.05")
	SalespersonSalesBonus     = generic.MustMoney("500.00")
	SalespersonBonusThreshold = generic.MustMoney("10000.00")
	SalespersonVacationBonus  = generic.MustMoney("800.00")
)

type Salesperson struct {
	base
	sales generic.Money
}

var _ Employee = (*Salesperson)(nil)

func NewSalesperson(name, hours, sales, onVacation any) (*Salesperson, error) {
	b, err := newBase(name, hours, onVacation)
	if err != nil {
		return nil, err
	}
	s, err := ValidateSales(sales)
	if err != nil {
		return nil, err
	}
	return &Salesperson{base: b, sales: s}, nil
}

func (s *Salesperson) Kind() Kind           { return KindSalesperson }
func (s *Salesperson) Sales() generic.Money { return s.sales }

// MonthlyPay pays the sales bonus only strictly above the threshold.
func (s *Salesperson) MonthlyPay() generic.Money {
	pay := SalespersonHourlyRate.MulInt(s.hours).
		Add(s.sales.Mul(SalespersonCommissionRate.Decimal()))
	if s.sales.GreaterThan(SalespersonBonusThreshold) {
		pay = pay.Add(SalespersonSalesBonus)
	}
	return pay
}

func (s *Salesperson) VacationBonus() generic.Money {
	return s.bonusIfOnVacation(SalespersonVacationBonus)
}

func (s *Salesperson) Snapshot() Snapshot {
	return baseSnapshot(s).
		With(KeySales, s.sales).
		With("hourly_rate", SalespersonHourlyRate).
		With("commission_rate", SalespersonCommissionRate).
		With("sales_bonus", SalespersonSalesBonus).
		With("bonus_threshold", SalespersonBonusThreshold)
}

func (s *Salesperson) WithHours(hours any) (*Salesperson, error) {
	return NewSalesperson(s.name, hours, s.sales, s.onVacation)
}

func (s *Salesperson) WithSales(sales any) (*Salesperson, error) {
	return NewSalesperson(s.name, s.hours, sales, s.onVacation)
}

func (s *Salesperson) WithOnVacation(onVacation any) *Salesperson {
	c := *s
	c.onVacation = generic.Truthy(onVacation)
	return &c
}

// =============================================================================
// FREELANCER - Paid per project, no vacation bonus
// =============================================================================

const FreelancerHoursBonusThreshold = 100

var (
	FreelancerPaymentPerProject = generic.MustMoney("300.00")
	FreelancerHoursBonus        = generic.MustMoney("100.00")
)

type Freelancer struct {
	base
	projects int
}

var _ Employee = (*Freelancer)(nil)

func NewFreelancer(name, hours, projects, onVacation any) (*Freelancer, error) {
	b, err := newBase(name, hours, onVacation)
	if err != nil {
		return nil, err
	}
	p, err := ValidateProjects(projects)
	if err != nil {
		return nil, err
	}
	return &Freelancer{base: b, projects: p}, nil
}

func (f *Freelancer) Kind() Kind    { return KindFreelancer }
func (f *Freelancer) Projects() int { return f.projects }

func (f *Freelancer) MonthlyPay() generic.Money {
	pay := FreelancerPaymentPerProject.MulInt(f.projects)
	if f.hours > FreelancerHoursBonusThreshold {
		pay = pay.Add(FreelancerHoursBonus)
	}
	return pay
}

// VacationBonus is always zero, on vacation or not.
func (f *Freelancer) VacationBonus() generic.Money { return generic.ZeroMoney }

func (f *Freelancer) Snapshot() Snapshot {
	return baseSnapshot(f).
		With(KeyProjects, f.projects).
		With("payment_per_project", FreelancerPaymentPerProject).
		With("hours_bonus", FreelancerHoursBonus).
		With("hours_bonus_threshold", FreelancerHoursBonusThreshold)
}

func (f *Freelancer) WithHours(hours any) (*Freelancer, error) {
	return NewFreelancer(f.name, hours, f.projects, f.onVacation)
}

func (f *Freelancer) WithProjects(projects any) (*Freelancer, error) {
	return NewFreelancer(f.name, f.hours, projects, f.onVacation)
}

func (f *Freelancer) WithOnVacation(onVacation any) *Freelancer {
	c := *f
	c.onVacation = generic.Truthy(onVacation)
	return &c
}
