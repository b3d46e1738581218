package dsp

import (
	"github.com/MicahParks/peakdetect"
	"github.com/pkg/errors"
)

// BurstParams configures a BurstSplit. Every field is required.
type BurstParams struct {
	Lag       *int     // envelope points used as the running baseline
	Threshold *float64 // z-score that marks a burst
	Influence *float64 // weight of burst points on the baseline [0, 1]
	Block     *int     // samples per envelope point
}

// BurstSplit marks runs of the envelope that stand out from a running
// z-score baseline, and returns one segment per run.
type BurstSplit struct {
	lag       int
	threshold float64
	influence float64
	block     int
}

// NewBurstSplit validates p and returns the strategy.
func NewBurstSplit(p BurstParams) (*BurstSplit, error) {
	var missing []string
	if p.Lag == nil {
		missing = append(missing, "lag")
	}
	if p.Threshold == nil {
		missing = append(missing, "threshold")
	}
	if p.Influence == nil {
		missing = append(missing, "influence")
	}
	if p.Block == nil {
		missing = append(missing, "block")
	}
	if err := missingParams("burst", missing...); err != nil {
		return nil, err
	}

	switch {
	case *p.Lag < 2:
		return nil, invalidParam("burst", "lag must be >= 2, got %d", *p.Lag)
	case *p.Threshold <= 0:
		return nil, invalidParam("burst", "threshold must be > 0, got %g", *p.Threshold)
	case *p.Influence < 0 || *p.Influence > 1:
		return nil, invalidParam("burst", "influence must be within [0, 1], got %g", *p.Influence)
	case *p.Block <= 0:
		return nil, invalidParam("burst", "block must be > 0, got %d", *p.Block)
	}

	return &BurstSplit{
		lag:       *p.Lag,
		threshold: *p.Threshold,
		influence: *p.Influence,
		block:     *p.Block,
	}, nil
}

func (bs *BurstSplit) Name() string {
	return "burst"
}

func (bs *BurstSplit) Params() map[string]interface{} {
	return map[string]interface{}{
		"lag":       bs.lag,
		"threshold": bs.threshold,
		"influence": bs.influence,
		"block":     bs.block,
	}
}

func (bs *BurstSplit) Segment(series []float64) ([]Segment, error) {
	env := Envelope(series, bs.block)
	if len(env) <= bs.lag {
		return nil, errors.Errorf("burst: %d envelope points, need more than lag %d",
			len(env), bs.lag)
	}

	detector := peakdetect.NewPeakDetector()
	if err := detector.Initialize(bs.influence, bs.threshold, env[:bs.lag]); err != nil {
		return nil, errors.Wrap(err, "burst: failed to initialize detector")
	}

	var segs []Segment

	first := -1
	flush := func(last int) {
		start := first * bs.block
		end := last * bs.block
		if end > len(series) {
			end = len(series)
		}
		if start < end {
			segs = append(segs, newSegment(series, len(segs), start, end, DomainSeries))
		}
		first = -1
	}

	for idx := bs.lag; idx < len(env); idx++ {
		active := detector.Next(env[idx]) == peakdetect.SignalPositive

		switch {
		case active && first < 0:
			first = idx
		case !active && first >= 0:
			flush(idx)
		}
	}

	if first >= 0 {
		flush(len(env))
	}

	return segs, nil
}
