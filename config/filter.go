package config

import (
	"github.com/skilab/skifft/dsp"
)

// FilterSpec names a filter and its parameters.
type FilterSpec struct {
	Name string `yaml:"name"`

	// savgol
	WindowLength *int `yaml:"window_length"`
	PolyOrder    *int `yaml:"polyorder"`
	Axis         *int `yaml:"axis"`

	// detrend
	Window string `yaml:"window"`
}

// Build returns the configured filter.
func (fs FilterSpec) Build() (dsp.Filter, error) {
	switch fs.Name {
	case "savgol":
		return dsp.NewSavGol(dsp.SavGolConfig{
			WindowLength: fs.WindowLength,
			PolyOrder:    fs.PolyOrder,
			Axis:         fs.Axis,
		})

	case "detrend":
		if fs.Window == "" {
			return dsp.NewDetrendTaper(), nil
		}
		return dsp.NewDetrendTaperWindow(fs.Window)

	case "":
		return nil, &dsp.ConfigError{Component: "filter", Missing: []string{"name"}}
	}

	return nil, &dsp.ConfigError{Component: "filter", Reason: "unknown filter " + fs.Name}
}
