package scoring

import (
	"github.com/jakechorley/furnace-rank/pkg/core/model"
)

// Component names reported by Breakdown
const (
	ComponentElongation = "elongation"
	ComponentResistance = "resistance"
	ComponentYield      = "yield"
	ComponentTime       = "time"
)

// Compute scores every trial against the whole dataset.
//
// Column statistics (ratio medians, minimums and maximums) are gathered for the full
// set before any row is mapped, so a row's score depends on the dataset as a whole but
// not on row order. The input slice is never modified.
func Compute(trials []model.Trial, weights model.Weights) []model.ScoredTrial {
	n := len(trials)

	// First pass: gather columns
	elongMean := make([]float64, n)
	elongStd := make([]float64, n)
	resMean := make([]float64, n)
	resStd := make([]float64, n)
	cedMean := make([]float64, n)
	cedStd := make([]float64, n)
	netTime := make([]float64, n)
	for i, t := range trials {
		elongMean[i], elongStd[i] = t.ElongationMean, t.ElongationStd
		resMean[i], resStd[i] = t.ResistanceMean, t.ResistanceStd
		cedMean[i], cedStd[i] = t.YieldMean, t.YieldStd
		netTime[i] = t.NetTimeMean
	}

	elongRaw := Ratios(elongMean, elongStd)
	resRaw := Ratios(resMean, resStd)
	cedRaw := Ratios(cedMean, cedStd)

	elongNorm := MinMax(elongRaw)
	resNorm := MinMax(resRaw)
	cedNorm := MinMax(cedRaw)
	timeNorm := Invert(MinMax(netTime))

	// Second pass: assemble rows
	scored := make([]model.ScoredTrial, n)
	for i, t := range trials {
		scored[i] = model.ScoredTrial{
			Trial:        t,
			ElongPerfRaw: elongRaw[i],
			ResPerfRaw:   resRaw[i],
			CedPerfRaw:   cedRaw[i],
			ElongNorm:    elongNorm[i],
			ResNorm:      resNorm[i],
			CedNorm:      cedNorm[i],
			TimeNorm:     timeNorm[i],
			Score:        weights.Score(elongNorm[i], resNorm[i], cedNorm[i], timeNorm[i]),
		}
	}

	return scored
}

// ComponentResult captures one weighted term of a trial's score
type ComponentResult struct {
	Name     string  `json:"name"`
	Value    float64 `json:"value"`
	Weight   float64 `json:"weight"`
	Weighted float64 `json:"weighted"`
}

// Breakdown returns the four weighted terms that add up to a scored trial's score
func Breakdown(st model.ScoredTrial, weights model.Weights) []ComponentResult {
	components := []ComponentResult{
		{Name: ComponentElongation, Value: st.ElongNorm, Weight: weights.Elongation},
		{Name: ComponentResistance, Value: st.ResNorm, Weight: weights.Resistance},
		{Name: ComponentYield, Value: st.CedNorm, Weight: weights.Yield},
		{Name: ComponentTime, Value: st.TimeNorm, Weight: weights.Time},
	}
	for i := range components {
		components[i].Weighted = components[i].Value * components[i].Weight
	}
	return components
}
