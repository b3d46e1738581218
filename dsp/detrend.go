package dsp

import (
	"gonum.org/v1/gonum/stat"

	"github.com/skilab/skifft/dsp/window"
)

// DetrendTaper removes the linear trend of every axis and tapers it with a
// window spanning the whole record.
type DetrendTaper struct {
	Window     window.Function
	windowName string
}

// NewDetrendTaper returns a detrend filter tapering with a Hann window.
func NewDetrendTaper() *DetrendTaper {
	return &DetrendTaper{Window: window.Hann, windowName: "hann"}
}

// NewDetrendTaperWindow returns a detrend filter tapering with the named
// window.
func NewDetrendTaperWindow(name string) (*DetrendTaper, error) {
	fn := window.ByName(name)
	if fn == nil {
		return nil, invalidParam("detrend", "unknown window %q", name)
	}
	return &DetrendTaper{Window: fn, windowName: name}, nil
}

func (dt *DetrendTaper) Name() string {
	return "detrend"
}

func (dt *DetrendTaper) Params() map[string]interface{} {
	return map[string]interface{}{
		"detrend": "linear",
		"window":  dt.windowName,
	}
}

func (dt *DetrendTaper) Apply(axes [][]float64) ([][]float64, error) {
	out := make([][]float64, len(axes))
	for idx := range axes {
		out[idx] = Detrend(axes[idx])
		if dt.Window != nil {
			dt.Window(out[idx])
		}
	}
	return out, nil
}

// Detrend returns series minus its least squares line.
func Detrend(series []float64) []float64 {
	out := make([]float64, len(series))

	switch len(series) {
	case 0:
		return out
	case 1:
		return out
	}

	xs := make([]float64, len(series))
	for i := range xs {
		xs[i] = float64(i)
	}

	alpha, beta := stat.LinearRegression(xs, series, nil, false)

	for i, y := range series {
		out[i] = y - (alpha + beta*xs[i])
	}

	return out
}
