package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTypesCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List registered employee types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-14s %-12s %s\n", "TAG", "KIND", "REQUIRES")
			for _, tag := range e.factory.Types() {
				reg, _ := e.factory.Lookup(tag)
				fmt.Fprintf(out, "%-14s %-12s %v\n", tag, reg.Kind, reg.Required)
			}
			return nil
		},
	}
}
