package analysis

import (
	"github.com/pkg/errors"

	"github.com/skilab/skifft/input"
)

// DriftCutoff is the high-pass corner in Hz used to keep integrated
// series from drifting.
const DriftCutoff = 0.1

// Displacement holds per-axis velocity (m/s) and displacement (m) series.
type Displacement struct {
	Velocity [input.AxisCount][]float64
	Position [input.AxisCount][]float64
}

// Columns returns the displacement in AxisLabels order.
func (d Displacement) Columns() [][]float64 {
	return d.Position[:]
}

// CumTrapz integrates y sampled every dx with the trapezoidal rule. The
// result starts at 0 and has the length of y.
func CumTrapz(y []float64, dx float64) []float64 {
	out := make([]float64, len(y))
	for i := 1; i < len(y); i++ {
		out[i] = out[i-1] + dx*(y[i]+y[i-1])/2
	}
	return out
}

// ComputeDisplacement integrates the acceleration of t twice, high-pass
// filtering after each integration.
func ComputeDisplacement(t input.Table, rate, cutoff float64) (Displacement, error) {
	var d Displacement

	if rate <= 0 {
		return d, errors.Errorf("sample rate must be > 0, got %g", rate)
	}

	hp, err := ButterHighpass(cutoff, rate)
	if err != nil {
		return d, errors.Wrap(err, "displacement")
	}

	dt := 1 / rate

	for idx := 0; idx < input.AxisCount; idx++ {
		accel := make([]float64, t.Len())
		for i, r := range t {
			accel[i] = r.SI()[idx]
		}

		d.Velocity[idx] = hp.FiltFilt(CumTrapz(accel, dt))
		d.Position[idx] = hp.FiltFilt(CumTrapz(d.Velocity[idx], dt))
	}

	return d, nil
}
