package api

import (
	"math"

	"github.com/jakechorley/furnace-rank/pkg/core/model"
	"github.com/jakechorley/furnace-rank/pkg/core/scoring"
	"github.com/jakechorley/furnace-rank/pkg/core/services"
)

// TrialView is the JSON form of a scored trial. Undefined numbers encode as null.
type TrialView struct {
	SteelType      string   `json:"steel_type"`
	FurnaceID      string   `json:"furnace_id"`
	ElongationMean *float64 `json:"elongation_mean"`
	ElongationStd  *float64 `json:"elongation_std"`
	ResistanceMean *float64 `json:"resistance_mean"`
	ResistanceStd  *float64 `json:"resistance_std"`
	YieldMean      *float64 `json:"yield_mean"`
	YieldStd       *float64 `json:"yield_std"`
	NetTimeMean    *float64 `json:"net_time_mean"`
	ElongPerfRaw   *float64 `json:"elong_perf_raw"`
	ResPerfRaw     *float64 `json:"res_perf_raw"`
	CedPerfRaw     *float64 `json:"ced_perf_raw"`
	ElongNorm      *float64 `json:"elong_norm"`
	ResNorm        *float64 `json:"res_norm"`
	CedNorm        *float64 `json:"ced_norm"`
	TimeNorm       *float64 `json:"time_norm"`
	Score          *float64 `json:"score"`
}

// ComponentView is the JSON form of one weighted score term
type ComponentView struct {
	Name     string   `json:"name"`
	Value    *float64 `json:"value"`
	Weight   float64  `json:"weight"`
	Weighted *float64 `json:"weighted"`
}

// BestView is a steel's best furnace together with the terms of its score
type BestView struct {
	TrialView
	Components []ComponentView `json:"components"`
}

// RankingView is the JSON form of a ranking run
type RankingView struct {
	RunID   string        `json:"run_id"`
	Source  string        `json:"source"`
	Steel   string        `json:"steel,omitempty"`
	Weights model.Weights `json:"weights"`
	Steels  []string      `json:"steels"`
	Total   int           `json:"total"`
	Scores  []TrialView   `json:"scores"`
	Best    []BestView    `json:"best"`
	Summary string        `json:"summary,omitempty"`
}

// BestRankingView is the JSON form of a ranking run reporting only the best furnaces
type BestRankingView struct {
	RunID   string        `json:"run_id"`
	Source  string        `json:"source"`
	Steel   string        `json:"steel,omitempty"`
	Weights model.Weights `json:"weights"`
	Best    []BestView    `json:"best"`
	Summary string        `json:"summary,omitempty"`
}

// num maps undefined values to nil, since JSON has no NaN
func num(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// NewTrialView converts a scored trial
func NewTrialView(st model.ScoredTrial) TrialView {
	return TrialView{
		SteelType:      st.SteelType,
		FurnaceID:      st.FurnaceID,
		ElongationMean: num(st.ElongationMean),
		ElongationStd:  num(st.ElongationStd),
		ResistanceMean: num(st.ResistanceMean),
		ResistanceStd:  num(st.ResistanceStd),
		YieldMean:      num(st.YieldMean),
		YieldStd:       num(st.YieldStd),
		NetTimeMean:    num(st.NetTimeMean),
		ElongPerfRaw:   num(st.ElongPerfRaw),
		ResPerfRaw:     num(st.ResPerfRaw),
		CedPerfRaw:     num(st.CedPerfRaw),
		ElongNorm:      num(st.ElongNorm),
		ResNorm:        num(st.ResNorm),
		CedNorm:        num(st.CedNorm),
		TimeNorm:       num(st.TimeNorm),
		Score:          num(st.Score),
	}
}

// NewBestView converts a best-per-steel row and breaks down its score
func NewBestView(st model.ScoredTrial, weights model.Weights) BestView {
	breakdown := scoring.Breakdown(st, weights)
	components := make([]ComponentView, len(breakdown))
	for i, c := range breakdown {
		components[i] = ComponentView{
			Name:     c.Name,
			Value:    num(c.Value),
			Weight:   c.Weight,
			Weighted: num(c.Weighted),
		}
	}
	return BestView{TrialView: NewTrialView(st), Components: components}
}

// NewRankingView converts a ranking result
func NewRankingView(result *services.RankResult) RankingView {
	scores := make([]TrialView, len(result.Scored))
	for i, st := range result.Scored {
		scores[i] = NewTrialView(st)
	}

	best := make([]BestView, len(result.Best))
	for i, st := range result.Best {
		best[i] = NewBestView(st, result.Weights)
	}

	steels := result.Steels
	if steels == nil {
		steels = []string{}
	}

	return RankingView{
		RunID:   result.RunID.String(),
		Source:  result.Source,
		Steel:   result.Steel,
		Weights: result.Weights,
		Steels:  steels,
		Total:   result.Total,
		Scores:  scores,
		Best:    best,
		Summary: result.Summary,
	}
}

// NewBestRankingView converts a ranking result, leaving out the scored rows
func NewBestRankingView(result *services.RankResult) BestRankingView {
	view := NewRankingView(result)
	return BestRankingView{
		RunID:   view.RunID,
		Source:  view.Source,
		Steel:   view.Steel,
		Weights: view.Weights,
		Best:    view.Best,
		Summary: view.Summary,
	}
}
