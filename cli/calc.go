package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/warp/salary-engine/payroll"
)

func newCalcCommand(e *env) *cobra.Command {
	var (
		kind, name, hours string
		sales, projects   string
		vacation          bool
		format            string
	)

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculate one employee's pay",
		Example: `  payslip calc --type estagiario --name "joão silva" --hours 160 --vacation
  payslip calc --type freelancer --name "Maria" --hours 120 --projects 3 --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := e.renderer(format)
			if err != nil {
				return err
			}

			in := payroll.Fields{
				Name:       name,
				Hours:      json.Number(hours),
				OnVacation: vacation,
			}
			// Unset flags stay nil so the factory reports them missing.
			if cmd.Flags().Changed("sales") {
				in.Sales = sales
			}
			if cmd.Flags().Changed("projects") {
				in.Projects = json.Number(projects)
			}

			emp, err := e.factory.Build(kind, in)
			if err != nil {
				return err
			}
			out, err := r.Render(emp)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&kind, "type", "t", "", "employee type (see 'payslip types')")
	f.StringVarP(&name, "name", "n", "", "employee name")
	f.StringVar(&hours, "hours", "0", "hours worked this month")
	f.StringVar(&sales, "sales", "", "sales volume (salesperson)")
	f.StringVar(&projects, "projects", "", "completed projects (freelancer)")
	f.BoolVar(&vacation, "vacation", false, "employee is on vacation")
	f.StringVarP(&format, "format", "f", "", "text or json (default from config)")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}
