package report

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/warp/salary-engine/generic"
	"github.com/warp/salary-engine/payroll"
)

// TextRenderer prints a fixed-layout payslip.
type TextRenderer struct {
	Header    string
	Separator string
	Currency  string
}

func NewTextRenderer() *TextRenderer {
	return &TextRenderer{
		Header:    "RELATÓRIO SALARIAL",
		Separator: strings.Repeat("-", 40),
		Currency:  "R$",
	}
}

// Render prints the common lines, then sales or projects when the snapshot
// carries them, then the total and the separator.
func (r *TextRenderer) Render(e payroll.Employee) (string, error) {
	s := e.Snapshot()

	lines := []string{
		r.Header,
		"Nome: " + s.String(payroll.KeyName),
		"Cargo: " + s.String(payroll.KeyType),
		"Horas trabalhadas: " + s.String(payroll.KeyHours) + "h",
		"Férias: " + yesNo(s.Bool(payroll.KeyOnVacation)),
	}

	if sales, ok := s.Money(payroll.KeySales); ok {
		lines = append(lines, "Vendas: "+r.FormatMoney(sales))
	}
	if s.Has(payroll.KeyProjects) {
		lines = append(lines, "Projetos concluídos: "+s.String(payroll.KeyProjects))
	}

	total, ok := s.Money(payroll.KeyTotalPay)
	if !ok {
		total = payroll.TotalPay(e)
	}
	lines = append(lines, "Salário total: "+r.FormatMoney(total), r.Separator)

	return strings.Join(lines, "\n"), nil
}

// FormatMoney prefixes the currency symbol to FormatBRL.
func (r *TextRenderer) FormatMoney(m generic.Money) string {
	if r.Currency == "" {
		return FormatBRL(m)
	}
	return r.Currency + " " + FormatBRL(m)
}

// FormatBRL formats m with "." grouping thousands and "," before the cents,
// e.g. 1234567.89 -> "1.234.567,89". Amounts that fit an int64 go through the
// pt-BR locale printer; wider ones are grouped from the digit string. The
// cents are always taken from the decimal string, never from a float.
func FormatBRL(m generic.Money) string {
	rounded := m.Round()
	fixed := strings.TrimPrefix(rounded.String(), "-")
	intPart, cents, _ := strings.Cut(fixed, ".")

	var grouped string
	if whole := rounded.Decimal().Abs().Truncate(0); whole.BigInt().IsInt64() {
		p := message.NewPrinter(language.BrazilianPortuguese)
		grouped = p.Sprintf("%d", whole.IntPart())
	} else {
		grouped = groupThousands(intPart, ".")
	}

	out := grouped + "," + cents
	if rounded.IsNegative() {
		out = "-" + out
	}
	return out
}

// groupThousands inserts sep every three digits from the right.
func groupThousands(digits, sep string) string {
	head := len(digits) % 3
	if head == 0 {
		head = 3
	}
	var b strings.Builder
	b.WriteString(digits[:head])
	for i := head; i < len(digits); i += 3 {
		b.WriteString(sep)
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

func yesNo(b bool) string {
	if b {
		return "Sim"
	}
	return "Não"
}
