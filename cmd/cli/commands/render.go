package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/jakechorley/furnace-rank/pkg/core/model"
	"github.com/jakechorley/furnace-rank/pkg/core/scoring"
)

// formatNum prints a value with three decimals, or "-" when undefined
func formatNum(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "-"
	}
	return fmt.Sprintf("%.3f", v)
}

// formatWeights prints the weights in flag order
func formatWeights(w model.Weights) string {
	return fmt.Sprintf("elong=%.2f res=%.2f ced=%.2f time=%.2f", w.Elongation, w.Resistance, w.Yield, w.Time)
}

// labelWidths returns the column widths for the steel and furnace columns
func labelWidths(rows []model.ScoredTrial) (int, int) {
	steelWidth, furnaceWidth := len("STEEL"), len("FURNACE")
	for _, r := range rows {
		if len(r.SteelType) > steelWidth {
			steelWidth = len(r.SteelType)
		}
		if len(r.FurnaceID) > furnaceWidth {
			furnaceWidth = len(r.FurnaceID)
		}
	}
	return steelWidth + 2, furnaceWidth + 2
}

// RenderScores writes the scored table with each normalized component
func RenderScores(w io.Writer, rows []model.ScoredTrial) {
	steelWidth, furnaceWidth := labelWidths(rows)

	fmt.Fprintf(w, "%-*s%-*s%8s%8s%8s%8s%8s\n", steelWidth, "STEEL", furnaceWidth, "FURNACE", "ELONG", "RES", "CED", "TIME", "SCORE")
	fmt.Fprintln(w, strings.Repeat("-", steelWidth+furnaceWidth+40))
	for _, r := range rows {
		fmt.Fprintf(w, "%-*s%-*s%8s%8s%8s%8s%8s\n",
			steelWidth, r.SteelType,
			furnaceWidth, r.FurnaceID,
			formatNum(r.ElongNorm),
			formatNum(r.ResNorm),
			formatNum(r.CedNorm),
			formatNum(r.TimeNorm),
			formatNum(r.Score),
		)
	}
}

// RenderBest writes one line per steel type with its best furnace and score terms
func RenderBest(w io.Writer, best []model.ScoredTrial, weights model.Weights) {
	steelWidth, furnaceWidth := labelWidths(best)

	fmt.Fprintf(w, "%-*s%-*s%8s   %s\n", steelWidth, "STEEL", furnaceWidth, "FURNACE", "SCORE", "TERMS")
	fmt.Fprintln(w, strings.Repeat("-", steelWidth+furnaceWidth+50))
	for _, r := range best {
		terms := make([]string, 0, 4)
		for _, c := range scoring.Breakdown(r, weights) {
			terms = append(terms, fmt.Sprintf("%s %s", c.Name, formatNum(c.Weighted)))
		}
		fmt.Fprintf(w, "%-*s%-*s%8s   %s\n",
			steelWidth, r.SteelType,
			furnaceWidth, r.FurnaceID,
			formatNum(r.Score),
			strings.Join(terms, ", "),
		)
	}
}

// RenderSteels writes one steel type per line
func RenderSteels(w io.Writer, steels []string) {
	for _, s := range steels {
		fmt.Fprintln(w, s)
	}
}

// writeJSON writes v as indented JSON
func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}
