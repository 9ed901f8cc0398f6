package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/warp/salary-engine/factory"
)

func newBatchCommand(e *env) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "batch FILE.csv",
		Short: "Print payslips for every valid row of a CSV file",
		Long: `Reads type,name,hours,sales,projects,on_vacation rows ("-" reads stdin).
Rows that fail validation are logged and skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := e.renderer(format)
			if err != nil {
				return err
			}

			var in io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				file, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open batch file: %w", err)
				}
				defer file.Close()
				in = file
			}

			records, err := factory.LoadCSV(in)
			if err != nil {
				return err
			}

			employees := e.factory.CreateBatch(records)
			for _, emp := range employees {
				out, err := r.Render(emp)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
			}

			e.log.Info("batch finished",
				zap.Int("rows", len(records)),
				zap.Int("created", len(employees)),
				zap.Int("skipped", len(records)-len(employees)))
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "text or json (default from config)")
	return cmd
}
