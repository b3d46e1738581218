package dsp

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// MinDecimation is the fewest samples folded into one envelope point.
const MinDecimation = 400

// EnvelopeParams configures an EnvelopeSplit. Every field is required.
// Width is measured in decimated points.
type EnvelopeParams struct {
	NOut       *int
	Width      *Bound
	Prominence *Bound
	Height     *Bound
}

// EnvelopeSplit finds macro-scale peaks (turns, bumps) in the amplitude
// envelope of a series and returns one segment per peak.
type EnvelopeSplit struct {
	nOut   int
	filter PeakFilter
}

// NewEnvelopeSplit validates p and returns the strategy.
func NewEnvelopeSplit(p EnvelopeParams) (*EnvelopeSplit, error) {
	var missing []string
	if p.NOut == nil {
		missing = append(missing, "n_out")
	}
	if p.Width == nil {
		missing = append(missing, "width")
	}
	if p.Prominence == nil {
		missing = append(missing, "prominence")
	}
	if p.Height == nil {
		missing = append(missing, "height")
	}
	if err := missingParams("envelope", missing...); err != nil {
		return nil, err
	}

	if *p.NOut <= 0 {
		return nil, invalidParam("envelope", "n_out must be > 0, got %d", *p.NOut)
	}

	if p.Width.Min < 0 {
		return nil, invalidParam("envelope", "width must be >= 0, got %g", p.Width.Min)
	}

	w, pr, h := *p.Width, *p.Prominence, *p.Height

	return &EnvelopeSplit{
		nOut: *p.NOut,
		filter: PeakFilter{
			Height:     &h,
			Prominence: &pr,
			Width:      &w,
		},
	}, nil
}

func (es *EnvelopeSplit) Name() string {
	return "envelope"
}

func (es *EnvelopeSplit) Params() map[string]interface{} {
	return map[string]interface{}{
		"n_out":          es.nOut,
		"width":          boundParam(*es.filter.Width),
		"prominence":     boundParam(*es.filter.Prominence),
		"height":         boundParam(*es.filter.Height),
		"min_decimation": MinDecimation,
	}
}

func (es *EnvelopeSplit) Segment(series []float64) ([]Segment, error) {
	n := len(series)
	if n == 0 {
		return nil, errors.New("envelope: empty series")
	}

	k, _ := Decimation(n, es.nOut)
	env := Envelope(series, k)

	peaks := FindPeaks(env, es.filter)

	segs := make([]Segment, 0, len(peaks))
	for _, p := range peaks {
		start := int(math.Floor(p.Left * float64(k)))
		// Right is the start of the last envelope block, so the segment
		// runs to the end of that block.
		end := int(math.Ceil((p.Right + 1) * float64(k)))

		if start < 0 {
			start = 0
		}
		if end > n {
			end = n
		}
		if start >= end {
			continue
		}

		segs = append(segs, newSegment(series, len(segs), start, end, DomainSeries))
	}

	return segs, nil
}

// Decimation returns the samples per envelope point k and the resulting
// point count for a series of n values asked to shrink to nOut points.
// k never drops below MinDecimation; nOut shrinks instead.
func Decimation(n, nOut int) (int, int) {
	if nOut <= 0 {
		nOut = 1
	}

	k := ceilDiv(n, nOut)
	if k < MinDecimation {
		k = MinDecimation
	}

	return k, ceilDiv(n, k)
}

// Envelope folds every k samples into the largest deviation from the
// series mean within them.
func Envelope(series []float64, k int) []float64 {
	if len(series) == 0 || k <= 0 {
		return nil
	}

	mean := floats.Sum(series) / float64(len(series))

	env := make([]float64, ceilDiv(len(series), k))
	for idx := range env {
		start := idx * k
		end := start + k
		if end > len(series) {
			end = len(series)
		}

		peak := 0.0
		for _, v := range series[start:end] {
			peak = math.Max(peak, math.Abs(v-mean))
		}
		env[idx] = peak
	}

	return env
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

func boundParam(b Bound) []float64 {
	if b.Max <= 0 {
		return []float64{b.Min}
	}
	return []float64{b.Min, b.Max}
}
