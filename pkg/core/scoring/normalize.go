package scoring

// Neutral is the normalized value used when a column carries no discriminating signal
const Neutral = 0.5

// MinMax rescales values to [0,1] using the column's minimum and maximum.
// A column that is constant or has no defined values maps entirely to Neutral,
// and undefined entries in an otherwise usable column also map to Neutral.
func MinMax(values []float64) []float64 {
	// First pass: column statistics
	var lo, hi float64
	found := false
	for _, v := range values {
		if !defined(v) {
			continue
		}
		if !found {
			lo, hi = v, v
			found = true
			continue
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	out := make([]float64, len(values))

	if !found || lo == hi {
		for i := range out {
			out[i] = Neutral
		}
		return out
	}

	// Second pass: rescale
	span := hi - lo
	for i, v := range values {
		if !defined(v) {
			out[i] = Neutral
			continue
		}
		out[i] = (v - lo) / span
	}
	return out
}

// Invert flips the polarity of normalized values so that lower raw values score higher
func Invert(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = 1 - v
	}
	return out
}
