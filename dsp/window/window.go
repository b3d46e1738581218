// Package window provides taper functions applied before a transform to
// soften the edges of a record.
//
// The windows are symmetric: both end samples sit on the window edge.
//
// See https://wikipedia.org/wiki/Window_function
package window

import "math"

// Function modifies buf in place.
type Function func(buf []float64)

// Rectangle is just do nothing
func Rectangle(buf []float64) {}

// CosSum modifies the buffer to conform to a cosine sum window following a0
func CosSum(buf []float64, a0 float64) {
	size := len(buf)
	if size < 2 {
		return
	}

	a1 := 1.0 - a0
	coef := 2.0 * math.Pi / float64(size-1)
	for n := 0; n < size; n++ {
		buf[n] *= a0 - a1*math.Cos(coef*float64(n))
	}
}

// Hann modifies the buffer to a Hann window
func Hann(buf []float64) {
	CosSum(buf, 0.5)
}

// Hamming modifies the buffer to a Hamming window
func Hamming(buf []float64) {
	CosSum(buf, 0.54)
}

// Blackman modifies the buffer to a Blackman window
func Blackman(buf []float64) {
	size := len(buf)
	if size < 2 {
		return
	}

	coef := 2.0 * math.Pi / float64(size-1)
	for n := 0; n < size; n++ {
		x := coef * float64(n)
		buf[n] *= 0.42 - 0.5*math.Cos(x) + 0.08*math.Cos(2*x)
	}
}

// Bartlett modifies the buffer to a Bartlett window
func Bartlett(buf []float64) {
	size := len(buf)
	if size < 2 {
		return
	}

	half := float64(size-1) / 2
	for n := 0; n < size; n++ {
		buf[n] *= 1.0 - math.Abs((float64(n)-half)/half)
	}
}

// ByName returns the window called name, or nil.
func ByName(name string) Function {
	switch name {
	case "hann":
		return Hann
	case "hamming":
		return Hamming
	case "blackman":
		return Blackman
	case "bartlett":
		return Bartlett
	case "rectangle", "none":
		return Rectangle
	}
	return nil
}
