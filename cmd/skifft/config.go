package main

import (
	"errors"

	"github.com/skilab/skifft"
	"github.com/skilab/skifft/input"
)

// FFTSaveDir is where fft writes when no save directory is given. enhanced
// defaults to the library's own save directory.
const FFTSaveDir = "fft"

// config holds every flag of every subcommand
type config struct {
	// SampleRate is the rate at which samples were recorded
	sampleRate float64
	// Range is the full-scale range in g the dumps were recorded with
	rng int
	// AccelID names the accelerometer of files whose names carry none
	accelID string

	dataDir string
	saveDir string
	// FreqLimit is the highest frequency kept, in Hz
	freqLimit float64
	// DB shows magnitudes relative to the peak, in dB
	db      bool
	workers int

	strategy  string
	nSplits   int
	reference string
	profile   string
	// Print a one line summary per record
	print bool
	noPNG bool

	// positional file and output paths
	file   string
	out    string
	pngOut string

	// synth
	freq    float64
	seconds float64
}

func newZeroConfig() config {
	return config{
		sampleRate: skifft.DefaultSampleRate,
		rng:        int(input.Range16G),
		dataDir:    "data",
		strategy:   "whole",
		nSplits:    1,
		freq:       50,
		seconds:    10,
	}
}

func (cfg *config) validate() error {
	switch {
	case cfg.sampleRate <= 0:
		return errors.New("sample rate must be positive")

	case !input.Range(cfg.rng).Valid():
		return errors.New("range must be 2, 4, 8 or 16")

	case cfg.workers < 0:
		return errors.New("too few workers (0 min)")

	case cfg.freqLimit < 0:
		return errors.New("frequency limit must not be negative")
	}

	return nil
}

// defaultSaveDir fills in the save directory of cmd unless one was given,
// so fft and enhanced do not mix their records.
func (cfg *config) defaultSaveDir(cmd command) {
	if cfg.saveDir != "" {
		return
	}

	switch cmd {
	case cmdFFT:
		cfg.saveDir = FFTSaveDir
	case cmdEnhanced:
		cfg.saveDir = skifft.NewZeroConfig().SaveDir
	}
}

// base returns the batch config shared by fft and enhanced.
func (cfg *config) base() skifft.Config {
	c := skifft.NewZeroConfig()
	c.DataDir = cfg.dataDir
	c.SaveDir = cfg.saveDir
	c.SampleRate = cfg.sampleRate
	c.Range = input.Range(cfg.rng)
	c.AccelID = cfg.accelID
	c.Workers = cfg.workers
	c.FreqLimit = cfg.freqLimit
	c.Scaling = cfg.db
	return c
}
