// Package dsp provides the signal processing stages of the pipeline:
// filters, segmentation strategies and the spectral analyzer.
package dsp

import (
	"github.com/pkg/errors"
)

// Segment coordinate systems
const (
	// DomainSeries segments index into the series itself.
	DomainSeries = "series"
	// DomainCorrelation segments index into a correlation curve of length
	// len(series)+len(reference)-1.
	DomainCorrelation = "correlation"
)

// Segment is a contiguous sub-range [Start, End) of a parent curve.
type Segment struct {
	Index  int       // position within its segmentation
	Start  int       // first index in the parent
	End    int       // one past the last index in the parent
	Domain string    // coordinate system of Start and End
	Data   []float64 // parent[Start:End]
}

// Len returns the number of values in the segment.
func (s Segment) Len() int {
	return s.End - s.Start
}

// Segmenter splits a single axis series into segments of interest.
type Segmenter interface {
	// Name is the strategy name, used in artifact names.
	Name() string
	// Params returns the configuration, recorded with every artifact.
	Params() map[string]interface{}
	// Segment returns ordered segments with 0 <= Start < End <= len(parent).
	Segment(series []float64) ([]Segment, error)
}

func newSegment(parent []float64, idx, start, end int, domain string) Segment {
	return Segment{
		Index:  idx,
		Start:  start,
		End:    end,
		Domain: domain,
		Data:   parent[start:end:end],
	}
}

// partition splits [0, n) into count runs of n/count, the last one taking
// the remainder.
func partition(parent []float64, count int, domain string) []Segment {
	n := len(parent)
	size := n / count

	segs := make([]Segment, count)
	for idx := range segs {
		start := idx * size
		end := start + size
		if idx == count-1 {
			end = n
		}
		segs[idx] = newSegment(parent, idx, start, end, domain)
	}

	return segs
}

// EqualSplit divides a series into a fixed number of contiguous pieces.
type EqualSplit struct {
	name    string
	nSplits int
}

// NewEqualSplit returns an equal split into nSplits pieces.
func NewEqualSplit(nSplits int) (*EqualSplit, error) {
	if nSplits <= 0 {
		return nil, invalidParam("equal", "n_splits must be > 0, got %d", nSplits)
	}
	return &EqualSplit{name: "equal", nSplits: nSplits}, nil
}

// NewWholeSplit returns a segmenter yielding the full series as one segment.
func NewWholeSplit() *EqualSplit {
	return &EqualSplit{name: "whole", nSplits: 1}
}

func (es *EqualSplit) Name() string {
	return es.name
}

func (es *EqualSplit) Params() map[string]interface{} {
	return map[string]interface{}{"n_splits": es.nSplits}
}

func (es *EqualSplit) Segment(series []float64) ([]Segment, error) {
	if len(series) < es.nSplits {
		return nil, errors.Errorf("%s: %d values cannot fill %d segments",
			es.name, len(series), es.nSplits)
	}
	return partition(series, es.nSplits, DomainSeries), nil
}
