package model

import (
	"fmt"
	"math"
)

// Weights are the relative importance of each normalized component in the final score.
// They are free parameters: nothing requires them to sum to 1 or to be non-negative.
type Weights struct {
	Elongation float64 `yaml:"elongation" json:"elongation"`
	Resistance float64 `yaml:"resistance" json:"resistance"`
	Yield      float64 `yaml:"yield" json:"yield"`
	Time       float64 `yaml:"time" json:"time"`
}

// DefaultWeights returns the weighting used when none is configured
func DefaultWeights() Weights {
	return Weights{
		Elongation: 0.4,
		Resistance: 0.3,
		Yield:      0.1,
		Time:       0.2,
	}
}

// Sum returns the total of all weights
func (w Weights) Sum() float64 {
	return w.Elongation + w.Resistance + w.Yield + w.Time
}

// Score combines the four normalized components linearly
func (w Weights) Score(elong, res, ced, time float64) float64 {
	return w.Elongation*elong + w.Resistance*res + w.Yield*ced + w.Time*time
}

// Validate rejects NaN and infinite weights, which would make every score undefined
func (w Weights) Validate() error {
	named := []struct {
		name  string
		value float64
	}{
		{"elongation", w.Elongation},
		{"resistance", w.Resistance},
		{"yield", w.Yield},
		{"time", w.Time},
	}
	for _, n := range named {
		if math.IsNaN(n.value) || math.IsInf(n.value, 0) {
			return fmt.Errorf("%s weight must be a finite number, got %v", n.name, n.value)
		}
	}
	return nil
}
