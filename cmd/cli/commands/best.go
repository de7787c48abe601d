package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/furnace-rank/pkg/api"
	"github.com/jakechorley/furnace-rank/pkg/core/services"
)

// BestCmd creates the best command
func BestCmd(app *AppContext) *cobra.Command {
	var (
		steel  string
		output string
	)

	cmd := &cobra.Command{
		Use:   "best",
		Short: "Show the best furnace for each steel type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(output); err != nil {
				return err
			}

			weights, err := WeightsFromFlags(cmd.Flags(), app.Cfg.Weights)
			if err != nil {
				return err
			}

			src, closeSource, err := OpenSource(app)
			if err != nil {
				return err
			}
			defer closeSource()

			app.Logger.Debug("best command", zap.String("steel", steel))

			result, err := services.RankFurnaces(app.Ctx, src, app.Cfg.Columns, weights, services.RankOptions{Steel: steel}, app.Logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if output == OutputJSON {
				return writeJSON(out, api.NewBestRankingView(result))
			}

			if steel == services.AllSteels {
				fmt.Fprintf(out, "\nBest furnace per steel (weights %s)\n\n", formatWeights(result.Weights))
			} else {
				fmt.Fprintf(out, "\nBest furnace for steel %s (weights %s)\n\n", steel, formatWeights(result.Weights))
			}
			RenderBest(out, result.Best, result.Weights)
			if result.Summary != "" {
				fmt.Fprintf(out, "\n%s\n", result.Summary)
			}
			fmt.Fprintln(out)

			return nil
		},
	}

	cmd.Flags().StringVar(&steel, "steel", services.AllSteels, "Only show this steel type and print a summary line")
	cmd.Flags().StringVarP(&output, "output", "o", OutputText, "Output format: text or json")
	AddWeightFlags(cmd.Flags())

	return cmd
}
