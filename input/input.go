// Package input holds decoded accelerometer readings and the registry of
// file sources able to produce them.
package input

import (
	"math"

	"github.com/pkg/errors"
)

// GToMS2 converts g to m/s².
const GToMS2 = 9.81

// AxisCount is the number of axes in a reading.
const AxisCount = 3

// AxisLabels names the axes in column order.
var AxisLabels = [AxisCount]string{"x", "y", "z"}

// ErrInvalidRange is returned for a range outside 2, 4, 8 and 16 g.
var ErrInvalidRange = errors.New("invalid range")

// Range is the configured full-scale measurement range in g.
type Range int

// Supported ranges
const (
	Range2G  Range = 2
	Range4G  Range = 4
	Range8G  Range = 8
	Range16G Range = 16
)

// LSB per g for each range
var sensitivities = map[Range]float64{
	Range2G:  16384,
	Range4G:  8192,
	Range8G:  4096,
	Range16G: 2048,
}

// Valid reports whether r is one of the supported ranges.
func (r Range) Valid() bool {
	_, ok := sensitivities[r]
	return ok
}

// Sensitivity returns the scale factor in LSB per g.
func (r Range) Sensitivity() (float64, error) {
	s, ok := sensitivities[r]
	if !ok {
		return 0, errors.Wrapf(ErrInvalidRange, "%d g is not one of 2, 4, 8 or 16", int(r))
	}
	return s, nil
}

// Reading is one decoded sample in g.
type Reading struct {
	X float64
	Y float64
	Z float64
}

// SI returns the reading in m/s².
func (r Reading) SI() [AxisCount]float64 {
	return [AxisCount]float64{r.X * GToMS2, r.Y * GToMS2, r.Z * GToMS2}
}

// Axis returns the value of axis idx (0 x, 1 y, 2 z).
func (r Reading) Axis(idx int) float64 {
	switch idx {
	case 0:
		return r.X
	case 1:
		return r.Y
	default:
		return r.Z
	}
}

// Norm is the length of the acceleration vector in g.
func (r Reading) Norm() float64 {
	return math.Sqrt(r.X*r.X + r.Y*r.Y + r.Z*r.Z)
}

// Table is an ordered run of readings sampled at a fixed interval.
type Table []Reading

// Len returns the number of readings.
func (t Table) Len() int {
	return len(t)
}

// Axis extracts a single axis as a series.
func (t Table) Axis(idx int) []float64 {
	out := make([]float64, len(t))
	for i := range t {
		out[i] = t[i].Axis(idx)
	}
	return out
}

// Axes returns every axis as its own series, in AxisLabels order.
func (t Table) Axes() [][]float64 {
	out := make([][]float64, AxisCount)
	for idx := range out {
		out[idx] = t.Axis(idx)
	}
	return out
}

// FromAxes builds a table from per-axis series of equal length.
func FromAxes(axes [][]float64) (Table, error) {
	if len(axes) != AxisCount {
		return nil, errors.Errorf("need %d axes, got %d", AxisCount, len(axes))
	}

	n := len(axes[0])
	for idx := range axes {
		if len(axes[idx]) != n {
			return nil, errors.Errorf("axis %s has %d values, want %d",
				AxisLabels[idx], len(axes[idx]), n)
		}
	}

	t := make(Table, n)
	for i := range t {
		t[i] = Reading{X: axes[0][i], Y: axes[1][i], Z: axes[2][i]}
	}
	return t, nil
}
