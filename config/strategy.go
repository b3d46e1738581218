package config

import (
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/skilab/skifft/dsp"
	"github.com/skilab/skifft/input"
)

// Strategies lists the strategy names Build understands.
var Strategies = []string{"whole", "equal", "correlation", "envelope", "burst"}

// Bound reads either a lone minimum or a [min, max] pair.
type Bound dsp.Bound

func (b *Bound) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		return value.Decode(&b.Min)

	case yaml.SequenceNode:
		var pair []float64
		if err := value.Decode(&pair); err != nil {
			return err
		}

		switch len(pair) {
		case 1:
			b.Min, b.Max = pair[0], 0
		case 2:
			b.Min, b.Max = pair[0], pair[1]
		default:
			return errors.Errorf("line %d: bound takes 1 or 2 values, got %d", value.Line, len(pair))
		}
		return nil
	}

	return errors.Errorf("line %d: bound must be a number or [min, max]", value.Line)
}

func (b *Bound) bound() *dsp.Bound {
	if b == nil {
		return nil
	}
	out := dsp.Bound(*b)
	return &out
}

// StrategySpec names a segmentation strategy and its parameters.
type StrategySpec struct {
	Name string `yaml:"name"`

	// equal, correlation
	NSplits *int `yaml:"n_splits"`

	// correlation: template recording, and the axis taken from it
	Reference     string `yaml:"reference"`
	ReferenceAxis string `yaml:"reference_axis"`

	// envelope
	NOut       *int   `yaml:"n_out"`
	Width      *Bound `yaml:"width"`
	Prominence *Bound `yaml:"prominence"`
	Height     *Bound `yaml:"height"`

	// burst
	Lag       *int     `yaml:"lag"`
	Threshold *float64 `yaml:"threshold"`
	Influence *float64 `yaml:"influence"`
	Block     *int     `yaml:"block"`
}

// Build returns the configured strategy. Reference recordings are
// looked up relative to dir and decoded at rng.
func (ss StrategySpec) Build(dir string, rng input.Range) (dsp.Segmenter, error) {
	switch ss.Name {
	case "", "whole":
		return dsp.NewWholeSplit(), nil

	case "equal":
		if ss.NSplits == nil {
			return nil, &dsp.ConfigError{Component: "equal", Missing: []string{"n_splits"}}
		}
		return dsp.NewEqualSplit(*ss.NSplits)

	case "correlation":
		if ss.NSplits == nil {
			return nil, &dsp.ConfigError{Component: "correlation", Missing: []string{"n_splits"}}
		}

		ref, err := ss.reference(dir, rng)
		if err != nil {
			return nil, err
		}
		return dsp.NewCorrelationSplit(ref, *ss.NSplits)

	case "envelope":
		return dsp.NewEnvelopeSplit(dsp.EnvelopeParams{
			NOut:       ss.NOut,
			Width:      ss.Width.bound(),
			Prominence: ss.Prominence.bound(),
			Height:     ss.Height.bound(),
		})

	case "burst":
		return dsp.NewBurstSplit(dsp.BurstParams{
			Lag:       ss.Lag,
			Threshold: ss.Threshold,
			Influence: ss.Influence,
			Block:     ss.Block,
		})
	}

	return nil, &dsp.ConfigError{
		Component: "strategy",
		Reason:    "unknown strategy " + ss.Name,
	}
}

func (ss StrategySpec) reference(dir string, rng input.Range) ([]float64, error) {
	if ss.Reference == "" {
		return nil, nil
	}

	axis := -1
	switch ss.ReferenceAxis {
	case "":
		axis = 0
	default:
		for idx, label := range input.AxisLabels {
			if label == ss.ReferenceAxis {
				axis = idx
			}
		}
	}

	if axis < 0 {
		return nil, &dsp.ConfigError{
			Component: "correlation",
			Reason:    "unknown reference_axis " + ss.ReferenceAxis,
		}
	}

	path := ss.Reference
	if !filepath.IsAbs(path) && dir != "" {
		path = filepath.Join(dir, path)
	}

	t, err := input.LoadFile(path, input.SourceConfig{Range: rng})
	if err != nil {
		return nil, errors.Wrap(err, "correlation reference")
	}

	return t.Axis(axis), nil
}
