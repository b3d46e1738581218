package dsp

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
)

// CorrelationSplit cross-correlates a series against a reference template
// and splits the normalized correlation curve into equal pieces. The
// segments describe periodicity and live in DomainCorrelation.
type CorrelationSplit struct {
	reference []float64
	nSplits   int
}

// NewCorrelationSplit returns a correlation split. An empty reference
// correlates each series with itself.
func NewCorrelationSplit(reference []float64, nSplits int) (*CorrelationSplit, error) {
	if nSplits <= 0 {
		return nil, invalidParam("correlation", "n_splits must be > 0, got %d", nSplits)
	}

	ref := make([]float64, len(reference))
	copy(ref, reference)

	return &CorrelationSplit{reference: ref, nSplits: nSplits}, nil
}

func (cs *CorrelationSplit) Name() string {
	return "correlation"
}

func (cs *CorrelationSplit) Params() map[string]interface{} {
	ref := "self"
	if len(cs.reference) > 0 {
		ref = "template"
	}

	return map[string]interface{}{
		"n_splits":      cs.nSplits,
		"reference":     ref,
		"reference_len": len(cs.reference),
	}
}

func (cs *CorrelationSplit) Segment(series []float64) ([]Segment, error) {
	if len(series) == 0 {
		return nil, errors.New("correlation: empty series")
	}

	ref := cs.reference
	if len(ref) == 0 {
		ref = series
	}

	curve := Correlate(series, ref)
	Normalize(curve)

	if len(curve) < cs.nSplits {
		return nil, errors.Errorf("correlation: %d lags cannot fill %d segments",
			len(curve), cs.nSplits)
	}

	return partition(curve, cs.nSplits, DomainCorrelation), nil
}

// Correlate returns the full cross-correlation of a and v, of length
// len(a)+len(v)-1. Index len(v)-1 is zero lag.
func Correlate(a, v []float64) []float64 {
	if len(a) == 0 || len(v) == 0 {
		return nil
	}

	n := len(a) + len(v) - 1
	size := nextPow2(n)

	fa := make([]float64, size)
	copy(fa, a)

	// correlation is convolution with the reversed template
	fv := make([]float64, size)
	for i := range v {
		fv[i] = v[len(v)-1-i]
	}

	plan := fourier.NewFFT(size)
	ca := plan.Coefficients(nil, fa)
	cv := plan.Coefficients(nil, fv)

	for i := range ca {
		ca[i] *= cv[i]
	}

	out := plan.Sequence(nil, ca)
	floats.Scale(1/float64(size), out)

	return out[:n:n]
}

// Normalize scales buf in place so its largest magnitude is 1. A silent
// buffer is left alone.
func Normalize(buf []float64) {
	peak := 0.0
	for _, v := range buf {
		peak = math.Max(peak, math.Abs(v))
	}

	if peak == 0 {
		return
	}

	floats.Scale(1/peak, buf)
}

func nextPow2(n int) int {
	size := 1
	for size < n {
		size <<= 1
	}
	return size
}
