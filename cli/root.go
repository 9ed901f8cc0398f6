/*
root.go - payslip command line

PURPOSE:
  Offline front end to the same factory and renderers the HTTP server uses.
  Prints payslips for one employee (calc) or a CSV file (batch).

COMMANDS:
  payslip calc --type vendedor --name "Ana Silva" --hours 80 --sales 5000
  payslip batch employees.csv --format json
  payslip types

SEE ALSO:
  - factory/csv.go: Batch file layout
  - config/config.go: Settings shared with the server
*/
package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/warp/salary-engine/config"
	"github.com/warp/salary-engine/factory"
	"github.com/warp/salary-engine/logging"
	"github.com/warp/salary-engine/report"
)

// env is what every subcommand needs, built once before it runs.
type env struct {
	cfg     *config.Config
	log     *zap.Logger
	factory *factory.EmployeeFactory
}

// NewRootCommand builds the command tree. logger may be nil, in which case
// one is built from the loaded config.
func NewRootCommand(logger *zap.Logger) *cobra.Command {
	e := &env{}
	var configPath string

	root := &cobra.Command{
		Use:           "payslip",
		Short:         "Calculate employee salaries",
		Long:          `Payslip calculates monthly pay for interns, permanent staff, salespeople and freelancers.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			e.cfg = cfg

			if logger == nil {
				logger, err = logging.New(cfg.Log.Level, cfg.Log.Development)
				if err != nil {
					return err
				}
			}
			e.log = logger
			e.factory = factory.NewEmployeeFactory(logger)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "salary.yaml", "YAML config file")

	root.AddCommand(newCalcCommand(e))
	root.AddCommand(newBatchCommand(e))
	root.AddCommand(newTypesCommand(e))
	return root
}

// renderer picks the format from the flag, falling back to config.
func (e *env) renderer(format string) (report.Renderer, error) {
	if format == "" {
		format = e.cfg.Report.Format
	}
	r, err := report.ForFormat(format)
	if err != nil {
		return nil, err
	}
	if t, ok := r.(*report.TextRenderer); ok && e.cfg.Report.Currency != "" {
		t.Currency = e.cfg.Report.Currency
	}
	return r, nil
}
