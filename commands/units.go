package commands

import (
	"github.com/spf13/cobra"

	"budgetsummary/services"
)

// NewUnitsCommand returns the "units" subcommand.
func NewUnitsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "units",
		Short: "List the material units",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, u := range services.UnitOptions {
				marker := " "
				if u.Value == services.DefaultUnit {
					marker = "*"
				}
				cmd.Printf("%s %-8s %s\n", marker, u.Value, u.Label)
			}
		},
	}
}
