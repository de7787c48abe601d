package model

// Field keys used in `tab` struct tags and in column mappings
const (
	FieldSteelType      = "steel_type"
	FieldFurnaceID      = "furnace_id"
	FieldElongationMean = "elongation_mean"
	FieldElongationStd  = "elongation_std"
	FieldResistanceMean = "resistance_mean"
	FieldResistanceStd  = "resistance_std"
	FieldYieldMean      = "yield_mean"
	FieldYieldStd       = "yield_std"
	FieldNetTimeMean    = "net_time_mean"
)

// RequiredFields lists the field keys every trial source must provide, in reporting order
var RequiredFields = []string{
	FieldSteelType,
	FieldFurnaceID,
	FieldElongationMean,
	FieldElongationStd,
	FieldResistanceMean,
	FieldResistanceStd,
	FieldYieldMean,
	FieldYieldStd,
	FieldNetTimeMean,
}

// Trial is one measured furnace/steel combination.
// Numeric fields hold NaN when the source cell was empty.
type Trial struct {
	SteelType      string  `tab:"steel_type" json:"steel_type"`
	FurnaceID      string  `tab:"furnace_id" json:"furnace_id"`
	ElongationMean float64 `tab:"elongation_mean" json:"elongation_mean"`
	ElongationStd  float64 `tab:"elongation_std" json:"elongation_std"`
	ResistanceMean float64 `tab:"resistance_mean" json:"resistance_mean"`
	ResistanceStd  float64 `tab:"resistance_std" json:"resistance_std"`
	YieldMean      float64 `tab:"yield_mean" json:"yield_mean"`
	YieldStd       float64 `tab:"yield_std" json:"yield_std"`
	NetTimeMean    float64 `tab:"net_time_mean" json:"net_time_mean"`
}

// Dataset is an ordered set of trials read from a single source
type Dataset struct {
	Source string
	Trials []Trial
}

// Len returns the number of trials in the dataset
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Trials)
}

// SteelTypes returns the distinct steel types in ascending order
func (d *Dataset) SteelTypes() []string {
	if d == nil {
		return nil
	}
	return DistinctSteelTypes(d.Trials)
}

// ScoredTrial is a trial augmented with its quality ratios, normalized components and final score
type ScoredTrial struct {
	Trial

	ElongPerfRaw float64 `json:"elong_perf_raw"`
	ResPerfRaw   float64 `json:"res_perf_raw"`
	CedPerfRaw   float64 `json:"ced_perf_raw"`

	ElongNorm float64 `json:"elong_norm"`
	ResNorm   float64 `json:"res_norm"`
	CedNorm   float64 `json:"ced_norm"`
	TimeNorm  float64 `json:"time_norm"`

	Score float64 `json:"score"`
}
