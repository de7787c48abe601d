package model

import "sort"

// Columns maps each required field to the header label used by the source
type Columns struct {
	SteelType      string `yaml:"steelType" validate:"required"`
	FurnaceID      string `yaml:"furnaceID" validate:"required"`
	ElongationMean string `yaml:"elongationMean" validate:"required"`
	ElongationStd  string `yaml:"elongationStd" validate:"required"`
	ResistanceMean string `yaml:"resistanceMean" validate:"required"`
	ResistanceStd  string `yaml:"resistanceStd" validate:"required"`
	YieldMean      string `yaml:"yieldMean" validate:"required"`
	YieldStd       string `yaml:"yieldStd" validate:"required"`
	NetTimeMean    string `yaml:"netTimeMean" validate:"required"`
}

// DefaultColumns returns the labels used by the furnace measurement workbook
func DefaultColumns() Columns {
	return Columns{
		SteelType:      "RH-Acero",
		FurnaceID:      "RH- Horno",
		ElongationMean: "elong_mean",
		ElongationStd:  "elong_std",
		ResistanceMean: "res_mean",
		ResistanceStd:  "res_std",
		YieldMean:      "ced_mean",
		YieldStd:       "ced_std",
		NetTimeMean:    "t_neto_mean",
	}
}

// Labels returns the field key to header label mapping
func (c Columns) Labels() map[string]string {
	return map[string]string{
		FieldSteelType:      c.SteelType,
		FieldFurnaceID:      c.FurnaceID,
		FieldElongationMean: c.ElongationMean,
		FieldElongationStd:  c.ElongationStd,
		FieldResistanceMean: c.ResistanceMean,
		FieldResistanceStd:  c.ResistanceStd,
		FieldYieldMean:      c.YieldMean,
		FieldYieldStd:       c.YieldStd,
		FieldNetTimeMean:    c.NetTimeMean,
	}
}

// RequiredLabels returns the header labels for RequiredFields, in the same order
func (c Columns) RequiredLabels() []string {
	labels := c.Labels()
	out := make([]string, 0, len(RequiredFields))
	for _, field := range RequiredFields {
		out = append(out, labels[field])
	}
	return out
}

// DistinctSteelTypes returns the distinct steel types of the given trials in ascending order
func DistinctSteelTypes(trials []Trial) []string {
	seen := make(map[string]bool)
	var steels []string
	for _, t := range trials {
		if !seen[t.SteelType] {
			seen[t.SteelType] = true
			steels = append(steels, t.SteelType)
		}
	}
	sort.Strings(steels)
	return steels
}
