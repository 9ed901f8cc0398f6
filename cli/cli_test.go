package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/warp/salary-engine/cli"
	"github.com/warp/salary-engine/generic"
)

// run executes the command tree with a config path that does not exist, so
// defaults apply.
func run(t *testing.T, stdin string, args ...string) (string, *observer.ObservedLogs, error) {
	t.Helper()
	core, logs := observer.New(zap.InfoLevel)

	cmd := cli.NewRootCommand(zap.New(core))
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.yaml")}, args...))

	err := cmd.Execute()
	return out.String(), logs, err
}

func TestCalc_Text(t *testing.T) {
	// GIVEN an intern on vacation
	// WHEN calc runs with the default format
	out, _, err := run(t, "", "calc", "--type", "estagiario", "--name", "joão silva", "--hours", "160", "--vacation")

	// THEN the pt-BR report is printed
	require.NoError(t, err)
	assert.Contains(t, out, "Nome: João Silva")
	assert.Contains(t, out, "Férias: Sim")
	assert.Contains(t, out, "Salário total: R$ 1.800,00")
}

func TestCalc_JSON(t *testing.T) {
	out, _, err := run(t, "", "calc", "-t", "vendedor", "-n", "Ana", "--hours", "40", "--sales", "20000", "-f", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"total_pay": 2100.00`)
}

func TestCalc_Errors(t *testing.T) {
	_, _, err := run(t, "", "calc", "-t", "vendedor", "-n", "Ana", "--hours", "40")
	assert.ErrorIs(t, err, generic.ErrMissingField)

	_, _, err = run(t, "", "calc", "-t", "efetivo", "-n", "Ana", "--hours", "10.5")
	assert.True(t, generic.IsValidation(err))

	_, _, err = run(t, "", "calc", "-t", "gerente", "-n", "Ana")
	assert.True(t, generic.IsNotFound(err))

	_, _, err = run(t, "", "calc", "-t", "efetivo", "-n", "Ana", "-f", "pdf")
	assert.ErrorIs(t, err, generic.ErrUnknownFormat)
}

func TestBatch_SkipsBadRows(t *testing.T) {
	// GIVEN a CSV with one unknown type and one negative hours value
	csv := `type,name,hours,sales,projects,on_vacation
estagiario,João Silva,160,,,sim
gerente,Teste,10,,,
efetivo,Maria,-5,,,
freelancer,Pedro,120,,3,false
`
	path := filepath.Join(t.TempDir(), "employees.csv")
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o600))

	// WHEN batch runs
	out, logs, err := run(t, "", "batch", path)

	// THEN the valid rows print and the bad ones are logged
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "RELATÓRIO SALARIAL"))
	assert.Contains(t, out, "Salário total: R$ 1.000,00")
	assert.Equal(t, 2, logs.FilterMessage("employee not created").Len())

	done := logs.FilterMessage("batch finished").All()
	require.Len(t, done, 1)
	assert.Equal(t, int64(2), done[0].ContextMap()["skipped"])
}

func TestBatch_Stdin(t *testing.T) {
	out, _, err := run(t, "type,name,hours,sales,projects,on_vacation\nvendedor,Ana,80,5000.00,,\n", "batch", "-", "-f", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"sales": 5000.00`)
}

func TestTypes(t *testing.T) {
	out, _, err := run(t, "", "types")
	require.NoError(t, err)
	assert.Contains(t, out, "vendedor")
	assert.Contains(t, out, "[sales]")
}
