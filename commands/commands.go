// Package commands adds the budget subcommands to the PocketBase CLI.
package commands

import (
	"github.com/pocketbase/pocketbase"
	"github.com/spf13/cobra"

	"budgetsummary/config"
)

// Register attaches every budget subcommand to the app's root command.
func Register(app *pocketbase.PocketBase, cfg config.Config) {
	app.RootCmd.AddCommand(
		NewExportCommand(app, cfg),
		NewUnitsCommand(),
		NewExportsCommand(app, cfg),
	)
}

// sourceCLI tags export log entries written by the command line.
const sourceCLI = "cli"

func stringFlag(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}
