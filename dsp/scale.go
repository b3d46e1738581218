package dsp

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// DBEpsilon keeps DB away from log(0).
const DBEpsilon = 1e-12

// DB rescales magnitudes to 20*log10(m/max + DBEpsilon). The peak maps to
// 0 dB. A silent spectrum maps to the floor.
func DB(mags []float64) []float64 {
	if len(mags) == 0 {
		return []float64{}
	}
	return DBRef(mags, floats.Max(mags))
}

// DBRef is DB against a given peak, for magnitudes cut from a longer
// spectrum.
func DBRef(mags []float64, peak float64) []float64 {
	out := make([]float64, len(mags))

	for i, m := range mags {
		ratio := 0.0
		if peak > 0 {
			ratio = m / peak
		}
		out[i] = 20 * math.Log10(ratio+DBEpsilon)
	}

	return out
}
