package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/furnace-rank/pkg/core/loader"
	"github.com/jakechorley/furnace-rank/pkg/core/services"
)

// ImportCmd creates the import command
func ImportCmd(app *AppContext) *cobra.Command {
	var table string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Copy a CSV or XLSX trial file into the PostgreSQL trials table",
		Long: `Validate a CSV or XLSX trial file and copy its rows into PostgreSQL under a new import ID.
Pending migrations are applied first. Nothing is written when the file fails validation.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := loader.FileSource(args[0], app.Sheet)
			if err != nil {
				return err
			}

			if table == "" {
				table = app.Cfg.Source.Table
			}

			database, err := openDatabase(app)
			if err != nil {
				return err
			}
			defer database.Close()

			app.Logger.Debug("import command", zap.String("file", args[0]), zap.String("table", table))

			result, err := services.ImportTrials(app.Ctx, src, app.Cfg.Columns, database, table, app.Logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\nImported %d trials from %s into %s\n", result.Count, result.Source, result.Table)
			fmt.Fprintf(out, "Import ID: %s\n\n", result.ImportID)

			return nil
		},
	}

	cmd.Flags().StringVar(&table, "table", "", "Destination table (defaults to source.table from the config)")

	return cmd
}
