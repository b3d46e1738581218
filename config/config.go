// Package config loads analysis profiles: the filters and segmentation
// strategy for a run, kept in YAML next to the data they were tuned for.
package config

import (
	"bytes"
	"io"
	"io/ioutil"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/skilab/skifft"
	"github.com/skilab/skifft/dsp"
	"github.com/skilab/skifft/input"
)

// Profile is the top-level structure of a profile file.
type Profile struct {
	SampleRate float64      `yaml:"sample_rate"`
	Range      int          `yaml:"range"`
	FreqLimit  float64      `yaml:"freq_lim"`
	DB         bool         `yaml:"db"`
	Workers    int          `yaml:"workers"`
	Filters    []FilterSpec `yaml:"filters"`
	Strategy   StrategySpec `yaml:"strategy"`

	// relative reference paths resolve against this
	dir string
}

// Load reads and parses the profile at path.
func Load(path string) (*Profile, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read profile")
	}

	p, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parse profile %s", path)
	}

	p.dir = filepath.Dir(path)

	return p, nil
}

// Parse parses a profile. Unknown keys are an error so typos do not pass
// for defaults.
func Parse(data []byte) (*Profile, error) {
	var p Profile

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&p); err != nil && err != io.EOF {
		return nil, err
	}

	return &p, nil
}

// BuildFilter returns the filter chain, or nil when the profile has none.
func (p *Profile) BuildFilter() (dsp.Filter, error) {
	if len(p.Filters) == 0 {
		return nil, nil
	}

	chain := make(dsp.Chain, 0, len(p.Filters))
	for _, spec := range p.Filters {
		f, err := spec.Build()
		if err != nil {
			return nil, err
		}
		chain = append(chain, f)
	}

	return chain, nil
}

// BuildSegmenter returns the segmentation strategy.
func (p *Profile) BuildSegmenter() (dsp.Segmenter, error) {
	rng := input.Range(p.Range)
	if rng == 0 {
		rng = input.Range16G
	}

	return p.Strategy.Build(p.dir, rng)
}

// Apply copies the profile onto cfg. Zero values leave cfg alone.
func (p *Profile) Apply(cfg *skifft.Config) error {
	if p.SampleRate != 0 {
		cfg.SampleRate = p.SampleRate
	}
	if p.Range != 0 {
		cfg.Range = input.Range(p.Range)
	}
	if p.FreqLimit != 0 {
		cfg.FreqLimit = p.FreqLimit
	}
	if p.Workers != 0 {
		cfg.Workers = p.Workers
	}
	if p.DB {
		cfg.Scaling = true
	}

	filter, err := p.BuildFilter()
	if err != nil {
		return err
	}
	if filter != nil {
		cfg.Filter = filter
	}

	seg, err := p.BuildSegmenter()
	if err != nil {
		return err
	}
	cfg.Segmenter = seg

	return nil
}
