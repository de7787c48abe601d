package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/furnace-rank/pkg/api"
	"github.com/jakechorley/furnace-rank/pkg/core/scoring"
	"github.com/jakechorley/furnace-rank/pkg/core/services"
)

// ScoreCmd creates the score command
func ScoreCmd(app *AppContext) *cobra.Command {
	var (
		steel  string
		top    int
		order  string
		output string
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score every furnace/steel trial",
		Long: `Score every furnace/steel trial and print the normalized components and final score.
Scores are always computed over the whole dataset; --steel and --top only select the rows shown.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(output); err != nil {
				return err
			}
			if order != SortBySteel && order != SortByScore {
				return fmt.Errorf("sort must be %q or %q, got %q", SortBySteel, SortByScore, order)
			}
			if top < 0 {
				return fmt.Errorf("top must be a non-negative integer, got %d", top)
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

			app.Logger.Debug("score command", zap.String("steel", steel), zap.Int("top", top), zap.String("sort", order))

			result, err := services.RankFurnaces(app.Ctx, src, app.Cfg.Columns, weights, services.RankOptions{Steel: steel, Top: top}, app.Logger)
			if err != nil {
				return err
			}

			if order == SortBySteel {
				result.Scored = scoring.SortBySteelThenScore(result.Scored)
			}

			out := cmd.OutOrStdout()
			if output == OutputJSON {
				return writeJSON(out, api.NewRankingView(result))
			}

			fmt.Fprintf(out, "\nScores from %s (%d of %d trials; weights %s)\n\n",
				result.Source, len(result.Scored), result.Total, formatWeights(result.Weights))
			RenderScores(out, result.Scored)
			if result.Summary != "" {
				fmt.Fprintf(out, "\n%s\n", result.Summary)
			}
			fmt.Fprintln(out)

			return nil
		},
	}

	cmd.Flags().StringVar(&steel, "steel", services.AllSteels, "Only show trials of this steel type")
	cmd.Flags().IntVar(&top, "top", 0, "Show at most this many rows (0 for all)")
	cmd.Flags().StringVar(&order, "sort", SortBySteel, "Row order: steel (steel ascending, then score) or score (score descending)")
	cmd.Flags().StringVarP(&output, "output", "o", OutputText, "Output format: text or json")
	AddWeightFlags(cmd.Flags())

	return cmd
}
