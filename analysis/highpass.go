package analysis

import (
	"math"

	"github.com/pkg/errors"
)

// Biquad is a second order IIR section, normalized so a0 is 1.
type Biquad struct {
	B [3]float64
	A [3]float64
}

// ButterHighpass designs a second order Butterworth high-pass filter with
// the bilinear transform.
func ButterHighpass(cutoff, rate float64) (Biquad, error) {
	if cutoff <= 0 || cutoff >= rate/2 {
		return Biquad{}, errors.Errorf("cutoff %g Hz outside (0, %g)", cutoff, rate/2)
	}

	k := math.Tan(math.Pi * cutoff / rate)
	norm := 1 / (1 + math.Sqrt2*k + k*k)

	return Biquad{
		B: [3]float64{norm, -2 * norm, norm},
		A: [3]float64{1, 2 * (k*k - 1) * norm, (1 - math.Sqrt2*k + k*k) * norm},
	}, nil
}

// steadyState returns the filter state for a unit step that has been
// running forever.
func (bq Biquad) steadyState() [2]float64 {
	yss := (bq.B[0] + bq.B[1] + bq.B[2]) / (bq.A[0] + bq.A[1] + bq.A[2])
	z1 := bq.B[2] - bq.A[2]*yss
	return [2]float64{yss - bq.B[0], z1}
}

// filter runs the section over x in transposed direct form II starting
// from state zi.
func (bq Biquad) filter(x []float64, zi [2]float64) []float64 {
	out := make([]float64, len(x))
	z0, z1 := zi[0], zi[1]

	for i, v := range x {
		y := bq.B[0]*v + z0
		z0 = bq.B[1]*v - bq.A[1]*y + z1
		z1 = bq.B[2]*v - bq.A[2]*y
		out[i] = y
	}

	return out
}

// FiltFilt runs the section forwards and backwards for zero phase. The
// ends are padded with an odd extension and the state starts settled on
// the first sample.
func (bq Biquad) FiltFilt(x []float64) []float64 {
	n := len(x)
	if n < 2 {
		out := make([]float64, n)
		copy(out, x)
		return out
	}

	pad := 9
	if pad > n-1 {
		pad = n - 1
	}

	ext := make([]float64, 0, n+2*pad)
	for i := pad; i > 0; i-- {
		ext = append(ext, 2*x[0]-x[i])
	}
	ext = append(ext, x...)
	for i := n - 2; i >= n-1-pad; i-- {
		ext = append(ext, 2*x[n-1]-x[i])
	}

	zi := bq.steadyState()

	y := bq.filter(ext, [2]float64{zi[0] * ext[0], zi[1] * ext[0]})
	reverse(y)
	y = bq.filter(y, [2]float64{zi[0] * y[0], zi[1] * y[0]})
	reverse(y)

	return y[pad : pad+n]
}

func reverse(buf []float64) {
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
}
