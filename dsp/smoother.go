package dsp

import (
	"github.com/pconstantinou/savitzkygolay"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// SavGolConfig configures a Savitzky-Golay smoother. Every field is
// required.
type SavGolConfig struct {
	WindowLength *int // samples per local fit
	PolyOrder    *int // order of the local polynomial
	Axis         *int // 0 smooths each axis over time, 1 smooths across axes
}

// processFunc fits ys sampled at xs.
type processFunc func(ys, xs []float64) ([]float64, error)

// SavGol smooths with a local polynomial regression.
type SavGol struct {
	windowLength int
	polyOrder    int
	axis         int
}

// NewSavGol validates cfg and returns the filter.
func NewSavGol(cfg SavGolConfig) (*SavGol, error) {
	var missing []string
	if cfg.WindowLength == nil {
		missing = append(missing, "window_length")
	}
	if cfg.PolyOrder == nil {
		missing = append(missing, "polyorder")
	}
	if cfg.Axis == nil {
		missing = append(missing, "axis")
	}
	if err := missingParams("savgol", missing...); err != nil {
		return nil, err
	}

	sg := &SavGol{
		windowLength: *cfg.WindowLength,
		polyOrder:    *cfg.PolyOrder,
		axis:         *cfg.Axis,
	}

	switch {
	case sg.windowLength < 1:
		return nil, invalidParam("savgol", "window_length must be positive, got %d", sg.windowLength)
	case sg.polyOrder < 0 || sg.polyOrder >= sg.windowLength:
		return nil, invalidParam("savgol", "polyorder must be within [0, window_length), got %d", sg.polyOrder)
	case sg.axis != 0 && sg.axis != 1:
		return nil, invalidParam("savgol", "axis must be 0 or 1, got %d", sg.axis)
	}

	return sg, nil
}

func (sg *SavGol) Name() string {
	return "savgol"
}

func (sg *SavGol) Params() map[string]interface{} {
	return map[string]interface{}{
		"window_length": sg.windowLength,
		"polyorder":     sg.polyOrder,
		"axis":          sg.axis,
	}
}

func (sg *SavGol) Apply(axes [][]float64) ([][]float64, error) {
	process, err := sg.processor()
	if err != nil {
		return nil, err
	}

	if sg.axis == 0 {
		out := make([][]float64, len(axes))
		for idx := range axes {
			if out[idx], err = sg.smooth(process, axes[idx]); err != nil {
				return nil, err
			}
		}
		return out, nil
	}

	return sg.across(process, axes)
}

func (sg *SavGol) processor() (processFunc, error) {
	if sg.windowLength%2 == 0 {
		return newEvenSavGol(sg.windowLength, sg.polyOrder)
	}

	filter, err := savitzkygolay.NewFilter(sg.windowLength, 0, sg.polyOrder)
	if err != nil {
		return nil, errors.Wrap(err, "savgol: failed to build filter")
	}
	return filter.Process, nil
}

// newEvenSavGol smooths with an even window. The window has no center
// sample, so an interior output i is the local fit evaluated at i+0.5 over
// ys[i-w/2+1 : i+w/2+1]. The first and last w/2 outputs come from a single
// fit over the first or last w values.
func newEvenSavGol(window, order int) (processFunc, error) {
	pos := float64(window)/2 - 0.5

	positions := make([]float64, window)
	for k := range positions {
		positions[k] = float64(k) - pos
	}

	weights, err := fitWeights(positions, order)
	if err != nil {
		return nil, err
	}

	edge := make([]float64, window)
	for k := range edge {
		edge[k] = float64(k)
	}

	half := window / 2

	return func(ys, _ []float64) ([]float64, error) {
		n := len(ys)
		if n < window {
			return nil, errors.Errorf("%d values shorter than window %d", n, window)
		}

		out := make([]float64, n)
		for i := half; i < n-half; i++ {
			start := i - half + 1
			sum := 0.0
			for k, w := range weights {
				sum += w * ys[start+k]
			}
			out[i] = sum
		}

		head, err := polyFit(edge, ys[:window], order)
		if err != nil {
			return nil, err
		}
		tail, err := polyFit(edge, ys[n-window:], order)
		if err != nil {
			return nil, err
		}

		for i := 0; i < half; i++ {
			out[i] = polyEval(head, edge[i])
			out[n-half+i] = polyEval(tail, edge[window-half+i])
		}

		return out, nil
	}, nil
}

func vandermonde(xs []float64, order int) *mat.Dense {
	a := mat.NewDense(len(xs), order+1, nil)
	for i, x := range xs {
		p := 1.0
		for j := 0; j <= order; j++ {
			a.Set(i, j, p)
			p *= x
		}
	}
	return a
}

// fitWeights returns w such that dot(w, ys) is the least squares
// polynomial through (xs, ys) evaluated at 0.
func fitWeights(xs []float64, order int) ([]float64, error) {
	a := vandermonde(xs, order)

	w := make([]float64, len(xs))
	unit := make([]float64, len(xs))
	for k := range xs {
		unit[k] = 1

		var c mat.VecDense
		if err := c.SolveVec(a, mat.NewVecDense(len(unit), unit)); err != nil {
			return nil, errors.Wrap(err, "savgol: singular fit")
		}
		w[k] = c.AtVec(0)

		unit[k] = 0
	}

	return w, nil
}

func polyFit(xs, ys []float64, order int) ([]float64, error) {
	var c mat.VecDense
	if err := c.SolveVec(vandermonde(xs, order), mat.NewVecDense(len(ys), ys)); err != nil {
		return nil, errors.Wrap(err, "savgol: edge fit")
	}
	return mat.Col(nil, 0, &c), nil
}

func polyEval(coeffs []float64, x float64) float64 {
	v := 0.0
	for j := len(coeffs) - 1; j >= 0; j-- {
		v = v*x + coeffs[j]
	}
	return v
}

// across smooths the values of every sample over the axes.
func (sg *SavGol) across(process processFunc, axes [][]float64) ([][]float64, error) {
	out := copyAxes(axes)
	if len(axes) == 0 {
		return out, nil
	}

	n := len(axes[0])
	for idx := range axes {
		if len(axes[idx]) != n {
			return nil, errors.New("savgol: axes differ in length")
		}
	}

	row := make([]float64, len(axes))
	for i := 0; i < n; i++ {
		for idx := range axes {
			row[idx] = axes[idx][i]
		}

		smoothed, err := sg.smooth(process, row)
		if err != nil {
			return nil, err
		}

		for idx := range axes {
			out[idx][i] = smoothed[idx]
		}
	}

	return out, nil
}

func (sg *SavGol) smooth(process processFunc, ys []float64) ([]float64, error) {
	if len(ys) < sg.windowLength {
		return nil, errors.Errorf("savgol: %d values shorter than window_length %d",
			len(ys), sg.windowLength)
	}

	xs := make([]float64, len(ys))
	for i := range xs {
		xs[i] = float64(i)
	}

	out, err := process(ys, xs)
	if err != nil {
		return nil, errors.Wrap(err, "savgol")
	}

	if len(out) != len(ys) {
		return nil, errors.Errorf("savgol: got %d values back for %d", len(out), len(ys))
	}

	return out, nil
}
