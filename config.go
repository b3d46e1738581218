package skifft

import (
	"log"

	"github.com/pkg/errors"
	"github.com/skilab/skifft/dsp"
	"github.com/skilab/skifft/input"
	"github.com/skilab/skifft/processor"
)

// DefaultSampleRate is the KX132 output data rate used in the field.
const DefaultSampleRate = 800

type Config struct {
	// Directory holding the recordings
	DataDir string
	// Directory the JSON records are written to
	SaveDir string
	// The rate that samples were recorded at
	SampleRate float64
	// Full-scale range the raw dumps were recorded with
	Range input.Range
	// Accelerometer id for files whose names carry none
	AccelID string
	// File extensions to pick up, earlier ones win for files sharing a name
	Extensions []string
	// Number of files processed at once, 0 or 1 runs sequentially
	Workers int
	// Highest frequency kept in Hz, 0 keeps all
	FreqLimit float64
	// Records are meant to be shown in dB
	Scaling bool
	// Write a CSV next to every decoded raw dump
	KeepCSV bool

	// Conditioning applied to every record before segmentation
	Filter dsp.Filter
	// Segmentation strategy
	Segmenter dsp.Segmenter
	// Record sinks. nil writes JSON into SaveDir
	Outputs []processor.Output
	// Diagnostics, nil for the standard logger
	Log *log.Logger
}

func NewZeroConfig() Config {
	return Config{
		DataDir:    "data",
		SaveDir:    "enhanced_fft",
		SampleRate: DefaultSampleRate,
		Range:      input.Range16G,
		Extensions: []string{"dat", "csv"},
		Segmenter:  dsp.NewWholeSplit(),
	}
}

func (cfg *Config) Validate() error {
	if cfg.SampleRate <= 0 {
		return errors.Errorf("sample rate must be > 0, got %g", cfg.SampleRate)
	}

	if !cfg.Range.Valid() {
		return errors.Wrapf(input.ErrInvalidRange, "range %d g", int(cfg.Range))
	}

	switch {
	case cfg.Workers < 0:
		return errors.New("too few workers (0 min)")

	case cfg.FreqLimit < 0:
		return errors.New("frequency limit must not be negative")

	case cfg.Segmenter == nil:
		return errors.New("no segmentation strategy")

	case len(cfg.Extensions) == 0:
		return errors.New("no file extensions")

	case cfg.Outputs == nil && cfg.SaveDir == "":
		return errors.New("no save directory")
	}

	for _, ext := range cfg.Extensions {
		if !input.HasSource(ext) {
			return errors.Errorf("no source for %q files; have %v",
				ext, input.GetAllSourceNames())
		}
	}

	return nil
}
