package scoring

import (
	"sort"

	"github.com/jakechorley/furnace-rank/pkg/core/model"
)

// FilterSteel returns the trials of a single steel type, keeping their order
func FilterSteel(scored []model.ScoredTrial, steel string) []model.ScoredTrial {
	var out []model.ScoredTrial
	for _, st := range scored {
		if st.SteelType == steel {
			out = append(out, st)
		}
	}
	return out
}

// SortByScore returns a copy ordered by score descending. Equal scores keep input order.
func SortByScore(scored []model.ScoredTrial) []model.ScoredTrial {
	out := append([]model.ScoredTrial(nil), scored...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// SortBySteelThenScore returns a copy ordered by steel type ascending, then score descending
func SortBySteelThenScore(scored []model.ScoredTrial) []model.ScoredTrial {
	out := append([]model.ScoredTrial(nil), scored...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].SteelType != out[j].SteelType {
			return out[i].SteelType < out[j].SteelType
		}
		return out[i].Score > out[j].Score
	})
	return out
}
