package commands

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/pocketbase/pocketbase"
	"github.com/spf13/cobra"

	"budgetsummary/collections"
	"budgetsummary/config"
	"budgetsummary/services"
)

// NewExportCommand returns the "export" subcommand, which renders a budget
// file (.json or .toml) to a document in the output directory. app may be
// nil, in which case nothing is recorded.
func NewExportCommand(app *pocketbase.PocketBase, cfg config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [budget-file]",
		Short: "Generate a budget document from a JSON or TOML file",
		Long: `Reads a budget from a .json or .toml file and writes the budget
summary document as <project>_<lang>.<format> into the output directory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, app, args[0])
		},
	}

	cmd.Flags().StringP("lang", "l", string(cfg.Language), "Document language (es or en)")
	cmd.Flags().StringP("format", "f", string(cfg.Format), "Output format (docx, xlsx or pdf)")
	cmd.Flags().StringP("out", "o", cfg.OutputDir, "Output directory")
	cmd.Flags().StringP("materials", "m", "", "Replace the materials with the rows of a .csv or .xlsx sheet")
	cmd.Flags().Bool("record", cfg.RecordExports, "Record the export in the export log")
	return cmd
}

func runExport(cmd *cobra.Command, app *pocketbase.PocketBase, path string) error {
	lang, err := services.ParseLanguage(stringFlag(cmd, "lang"))
	if err != nil {
		return err
	}
	format, err := services.ParseExportFormat(stringFlag(cmd, "format"))
	if err != nil {
		return err
	}

	in, err := services.LoadBudgetInput(path)
	if err != nil {
		return fmt.Errorf("failed to load budget: %w", err)
	}

	if sheet := stringFlag(cmd, "materials"); sheet != "" {
		materials, err := importMaterials(cmd, sheet)
		if err != nil {
			return err
		}
		in.Materials = materials
	}

	budget := in.ToBudget()
	saver := services.DirSaver{Dir: stringFlag(cmd, "out")}
	artifact, err := services.GenerateBudgetDocument(context.Background(), budget, lang, format, saver)
	if err != nil {
		return fmt.Errorf("failed to export budget: %w", err)
	}

	cmd.Printf("Wrote %s (%s)\n", saver.Path(artifact.FileName), humanize.Bytes(uint64(len(artifact.Data))))
	cmd.Printf("  Materials: %s\n", services.FormatMoney(artifact.Totals.Materials))
	cmd.Printf("  Labor:     %s\n", services.FormatMoney(artifact.Totals.Labor))
	cmd.Printf("  Diets:     %s\n", services.FormatMoney(artifact.Totals.Diet))
	cmd.Printf("  Total:     %s\n", services.FormatMoney(artifact.Totals.Grand))

	if record, _ := cmd.Flags().GetBool("record"); record && app != nil {
		collections.Setup(app)
		if _, err := services.RecordBudgetExport(app, artifact, budget.Project.ProjectName, sourceCLI); err != nil {
			log.Printf("export: failed to record %s: %v", artifact.FileName, err)
		}
	}
	return nil
}

func importMaterials(cmd *cobra.Command, path string) ([]services.MaterialInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open materials: %w", err)
	}
	defer f.Close()

	result, err := services.ImportMaterials(f, path)
	if err != nil {
		return nil, fmt.Errorf("failed to import materials: %w", err)
	}
	for _, e := range result.Errors {
		cmd.PrintErrf("  row %d: %s: %s\n", e.Row, e.Field, e.Message)
	}
	cmd.Printf("Imported %d of %d material rows\n", len(result.Materials), result.TotalRows)
	return result.Materials, nil
}
