package dsp

import (
	"math"

	"github.com/skilab/skifft/fft"
)

// AnalyzerConfig configures the spectral analyzer.
type AnalyzerConfig struct {
	SampleRate float64 // samples per second
	FreqLimit  float64 // highest frequency kept in Hz, 0 keeps all
}

// Spectrum is the non-negative half of a magnitude spectrum. Freqs and
// Mags are index aligned. Ref is the peak of the whole half spectrum
// before any frequency limit, 0 when unknown.
type Spectrum struct {
	Freqs []float64
	Mags  []float64
	Ref   float64
}

// Len returns the number of bins.
func (s Spectrum) Len() int {
	return len(s.Mags)
}

// Peak returns the index and magnitude of the strongest bin, or -1 for an
// empty spectrum.
func (s Spectrum) Peak() (int, float64) {
	idx, peak := -1, math.Inf(-1)
	for i, m := range s.Mags {
		if m > peak {
			idx, peak = i, m
		}
	}
	return idx, peak
}

// Reference returns the magnitude that maps to 0 dB: Ref when known,
// otherwise the strongest kept bin.
func (s Spectrum) Reference() float64 {
	if s.Ref > 0 {
		return s.Ref
	}
	if _, peak := s.Peak(); peak > 0 {
		return peak
	}
	return 0
}

// DB returns a copy with magnitudes rescaled to decibels relative to
// Reference.
func (s Spectrum) DB() Spectrum {
	freqs := make([]float64, len(s.Freqs))
	copy(freqs, s.Freqs)
	return Spectrum{Freqs: freqs, Mags: DBRef(s.Mags, s.Reference()), Ref: s.Ref}
}

// Analyzer computes magnitude spectra of segments.
type Analyzer struct {
	cfg AnalyzerConfig
}

// NewAnalyzer returns an analyzer for cfg.
func NewAnalyzer(cfg AnalyzerConfig) *Analyzer {
	return &Analyzer{cfg: cfg}
}

// Config returns the analyzer configuration.
func (az *Analyzer) Config() AnalyzerConfig {
	return az.cfg
}

// BinCount returns the number of bins kept for a segment of n values:
// floor(n/2), cut down to FreqLimit when set.
func (az *Analyzer) BinCount(n int) int {
	bins := n / 2

	if az.cfg.FreqLimit > 0 {
		if limit := int(az.cfg.FreqLimit / az.cfg.SampleRate * float64(n)); limit < bins {
			bins = limit
		}
	}

	if bins < 0 {
		return 0
	}
	return bins
}

// Freq returns the frequency of bin k for a segment of n values.
func (az *Analyzer) Freq(k, n int) float64 {
	dt := 1 / az.cfg.SampleRate
	return float64(k) / (float64(n) * dt)
}

// Analyze returns the magnitude spectrum of seg.
func (az *Analyzer) Analyze(seg Segment) Spectrum {
	n := len(seg.Data)
	bins := az.BinCount(n)

	spec := Spectrum{
		Freqs: make([]float64, bins),
		Mags:  make([]float64, bins),
	}

	if bins == 0 {
		return spec
	}

	coeffs := fft.Transform(seg.Data)

	for k := 0; k < n/2; k++ {
		m := math.Hypot(real(coeffs[k]), imag(coeffs[k]))
		spec.Ref = math.Max(spec.Ref, m)

		if k < bins {
			spec.Freqs[k] = az.Freq(k, n)
			spec.Mags[k] = m
		}
	}

	return spec
}
