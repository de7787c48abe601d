package scoring

import (
	"math"
	"sort"
)

// defined reports whether v carries a usable value
func defined(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Ratio divides each mean by its standard deviation.
// A row whose std is zero, or whose result is not finite, is undefined (NaN).
func Ratio(means, stds []float64) []float64 {
	out := make([]float64, len(means))
	for i := range means {
		if i >= len(stds) || stds[i] == 0 {
			out[i] = math.NaN()
			continue
		}
		r := means[i] / stds[i]
		if !defined(r) {
			r = math.NaN()
		}
		out[i] = r
	}
	return out
}

// Median returns the median of the defined values, averaging the two middle values
// for an even count. It returns NaN when no value is defined.
func Median(values []float64) float64 {
	sorted := make([]float64, 0, len(values))
	for _, v := range values {
		if defined(v) {
			sorted = append(sorted, v)
		}
	}
	if len(sorted) == 0 {
		return math.NaN()
	}
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// ImputeMedian returns a copy of values with every undefined entry replaced by the
// median of the defined entries. The median is computed once, before any replacement.
// A column with no defined entries is returned unchanged.
func ImputeMedian(values []float64) []float64 {
	median := Median(values)

	out := make([]float64, len(values))
	for i, v := range values {
		if defined(v) {
			out[i] = v
		} else {
			out[i] = median
		}
	}
	return out
}

// Ratios computes mean/std per row and fills undefined rows with the column median
func Ratios(means, stds []float64) []float64 {
	return ImputeMedian(Ratio(means, stds))
}
