// Package analysis holds the checks and derived series that sit beside the
// spectral pipeline.
package analysis

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/skilab/skifft/input"
)

// Gravity calibration bounds in g. A sensor at rest reads a norm of 1.
const (
	HealthLow  = 0.9
	HealthHigh = 1.1
)

// HealthReport summarizes how far readings stray from 1 g.
type HealthReport struct {
	Total       int
	OutOfBounds int
	Ratio       float64 // OutOfBounds / Total
	MeanNorm    float64
	StdNorm     float64
}

func (hr HealthReport) String() string {
	return fmt.Sprintf("%d out of %d samples are out of bounds (%.2f%%), norm %.4f ± %.4f g",
		hr.OutOfBounds, hr.Total, hr.Ratio*100, hr.MeanNorm, hr.StdNorm)
}

// CheckHealth counts the readings whose norm lies outside [low, high].
func CheckHealth(t input.Table, low, high float64) HealthReport {
	hr := HealthReport{Total: t.Len()}
	if hr.Total == 0 {
		return hr
	}

	norms := make([]float64, t.Len())
	for i, r := range t {
		norms[i] = r.Norm()
		if norms[i] < low || norms[i] > high {
			hr.OutOfBounds++
		}
	}

	hr.Ratio = float64(hr.OutOfBounds) / float64(hr.Total)
	hr.MeanNorm, hr.StdNorm = stat.MeanStdDev(norms, nil)

	return hr
}
