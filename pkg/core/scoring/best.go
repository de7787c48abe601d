package scoring

import (
	"math"
	"sort"

	"github.com/jakechorley/furnace-rank/pkg/core/model"
)

// BestPerGroup selects the highest scoring trial for each steel type.
//
// Rows are visited in input order and a group's leader is only replaced by a strictly
// greater score, so ties go to the first row seen. A NaN score never wins over a
// number. The result is ordered by steel type ascending.
func BestPerGroup(scored []model.ScoredTrial) []model.ScoredTrial {
	bestIdx := make(map[string]int)
	var steels []string

	for i, st := range scored {
		cur, ok := bestIdx[st.SteelType]
		if !ok {
			bestIdx[st.SteelType] = i
			steels = append(steels, st.SteelType)
			continue
		}
		if beats(st.Score, scored[cur].Score) {
			bestIdx[st.SteelType] = i
		}
	}

	sort.Strings(steels)

	best := make([]model.ScoredTrial, 0, len(steels))
	for _, steel := range steels {
		best = append(best, scored[bestIdx[steel]])
	}
	return best
}

// beats reports whether candidate should replace the current leader
func beats(candidate, current float64) bool {
	if math.IsNaN(candidate) {
		return false
	}
	if math.IsNaN(current) {
		return true
	}
	return candidate > current
}
