package commands

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/jakechorley/furnace-rank/pkg/core/model"
)

// Output formats
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Row orderings for the score command
const (
	SortBySteel = "steel"
	SortByScore = "score"
)

const (
	flagElongation = "w-elong"
	flagResistance = "w-res"
	flagYield      = "w-ced"
	flagTime       = "w-time"
)

// AddWeightFlags registers the weight override flags
func AddWeightFlags(fs *pflag.FlagSet) {
	defaults := model.DefaultWeights()
	fs.Float64(flagElongation, defaults.Elongation, "Weight of the elongation quality component")
	fs.Float64(flagResistance, defaults.Resistance, "Weight of the resistance quality component")
	fs.Float64(flagYield, defaults.Yield, "Weight of the yield (cedencia) quality component")
	fs.Float64(flagTime, defaults.Time, "Weight of the processing time component")
}

// WeightsFromFlags starts from base and applies only the weight flags set on the command line
func WeightsFromFlags(fs *pflag.FlagSet, base model.Weights) (model.Weights, error) {
	weights := base
	targets := map[string]*float64{
		flagElongation: &weights.Elongation,
		flagResistance: &weights.Resistance,
		flagYield:      &weights.Yield,
		flagTime:       &weights.Time,
	}

	var err error
	fs.Visit(func(f *pflag.Flag) {
		dst, ok := targets[f.Name]
		if !ok || err != nil {
			return
		}
		*dst, err = fs.GetFloat64(f.Name)
	})
	if err != nil {
		return model.Weights{}, fmt.Errorf("invalid weight flag: %w", err)
	}
	if err := weights.Validate(); err != nil {
		return model.Weights{}, fmt.Errorf("invalid weight flag: %w", err)
	}

	return weights, nil
}

// checkOutput validates the --output flag value
func checkOutput(output string) error {
	if output != OutputText && output != OutputJSON {
		return fmt.Errorf("output must be %q or %q, got %q", OutputText, OutputJSON, output)
	}
	return nil
}
