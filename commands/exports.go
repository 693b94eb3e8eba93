package commands

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/tools/types"
	"github.com/spf13/cobra"

	"budgetsummary/collections"
	"budgetsummary/config"
	"budgetsummary/services"
)

// NewExportsCommand returns the "exports" subcommand, which prints the most
// recent export log entries.
func NewExportsCommand(app *pocketbase.PocketBase, cfg config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exports",
		Short: "Show recently generated budget documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			limit, _ := cmd.Flags().GetInt("limit")

			collections.Setup(app)
			entries, err := services.ListBudgetExports(app, limit)
			if err != nil {
				return fmt.Errorf("failed to list exports: %w", err)
			}

			if len(entries) == 0 {
				cmd.Println("No exports recorded")
				return nil
			}
			for _, e := range entries {
				cmd.Printf("%-32s %-4s %-2s %12s %8s  %s\n",
					e.FileName, e.Format, e.Language,
					services.FormatMoney(e.GrandTotal),
					humanize.Bytes(uint64(e.SizeBytes)),
					createdAgo(e.Created))
			}
			cmd.Printf("\nTotal: %d exports\n", len(entries))
			return nil
		},
	}
	cmd.Flags().IntP("limit", "n", cfg.ExportListLimit, "Maximum number of entries (0 for all)")
	return cmd
}

func createdAgo(created string) string {
	dt, err := types.ParseDateTime(created)
	if err != nil || dt.IsZero() {
		return created
	}
	return humanize.Time(dt.Time())
}
