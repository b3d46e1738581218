package dsp

import "math"

// Bound is an inclusive [Min, Max] range used to select peaks. A Max of 0
// leaves the range open above.
type Bound struct {
	Min float64
	Max float64
}

// Contains reports whether v lies within the bound.
func (b Bound) Contains(v float64) bool {
	return v >= b.Min && (b.Max <= 0 || v <= b.Max)
}

// Peak is a local maximum of a curve with its shape measurements, all in
// the curve's own index units.
type Peak struct {
	Index      int
	Height     float64
	Prominence float64
	LeftBase   int
	RightBase  int
	Width      float64 // width at half prominence
	Left       float64 // interpolated left position at half prominence
	Right      float64 // interpolated right position at half prominence
}

// PeakFilter selects peaks. nil fields do not filter.
type PeakFilter struct {
	Height     *Bound
	Prominence *Bound
	Width      *Bound
}

// FindPeaks locates the local maxima of x and keeps those passing f.
// Flat tops report their middle index. Height is checked first, then
// prominence, then width.
func FindPeaks(x []float64, f PeakFilter) []Peak {
	var peaks []Peak

	for _, idx := range localMaxima(x) {
		p := Peak{Index: idx, Height: x[idx]}

		if f.Height != nil && !f.Height.Contains(p.Height) {
			continue
		}

		p.Prominence, p.LeftBase, p.RightBase = prominence(x, idx)
		if f.Prominence != nil && !f.Prominence.Contains(p.Prominence) {
			continue
		}

		p.Width, p.Left, p.Right = width(x, p, 0.5)
		if f.Width != nil && !f.Width.Contains(p.Width) {
			continue
		}

		peaks = append(peaks, p)
	}

	return peaks
}

func localMaxima(x []float64) []int {
	var out []int

	last := len(x) - 1
	for i := 1; i < last; i++ {
		if x[i-1] >= x[i] {
			continue
		}

		ahead := i + 1
		for ahead < last && x[ahead] == x[i] {
			ahead++
		}

		if x[ahead] < x[i] {
			out = append(out, (i+ahead-1)/2)
			i = ahead
		}
	}

	return out
}

// prominence walks outwards until a higher sample or the edge is reached
// and measures the drop to the higher of the two minima found.
func prominence(x []float64, peak int) (float64, int, int) {
	leftMin, leftBase := x[peak], peak
	for i := peak; i >= 0 && x[i] <= x[peak]; i-- {
		if x[i] < leftMin {
			leftMin, leftBase = x[i], i
		}
	}

	rightMin, rightBase := x[peak], peak
	for i := peak; i < len(x) && x[i] <= x[peak]; i++ {
		if x[i] < rightMin {
			rightMin, rightBase = x[i], i
		}
	}

	return x[peak] - math.Max(leftMin, rightMin), leftBase, rightBase
}

// width measures the peak at x[peak] - prominence*rel, interpolating
// between samples and never crossing the bases.
func width(x []float64, p Peak, rel float64) (float64, float64, float64) {
	height := x[p.Index] - p.Prominence*rel

	i := p.Index
	for p.LeftBase < i && height < x[i] {
		i--
	}
	left := float64(i)
	if x[i] < height {
		left += (height - x[i]) / (x[i+1] - x[i])
	}

	i = p.Index
	for i < p.RightBase && height < x[i] {
		i++
	}
	right := float64(i)
	if x[i] < height {
		right -= (height - x[i]) / (x[i-1] - x[i])
	}

	return right - left, left, right
}
