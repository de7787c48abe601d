package commands

import (
	"github.com/spf13/cobra"

	"github.com/jakechorley/furnace-rank/pkg/core/services"
)

// SteelsCmd creates the steels command
func SteelsCmd(app *AppContext) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "steels",
		Short: "List the distinct steel types in the trial source",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(output); err != nil {
				return err
			}

			src, closeSource, err := OpenSource(app)
			if err != nil {
				return err
			}
			defer closeSource()

			steels, err := services.ListSteels(app.Ctx, src, app.Cfg.Columns, app.Logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if output == OutputJSON {
				if steels == nil {
					steels = []string{}
				}
				return writeJSON(out, map[string][]string{"steels": steels})
			}

			RenderSteels(out, steels)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", OutputText, "Output format: text or json")

	return cmd
}
