package dsp

import "math"

// Sine returns n samples of amp*sin(2*pi*freq*t) sampled at rate.
func Sine(freq, rate, amp float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = amp * math.Sin(2*math.Pi*freq*float64(i)/rate)
	}
	return out
}

// Ramp returns n samples of offset + slope*i.
func Ramp(offset, slope float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = offset + slope*float64(i)
	}
	return out
}
