// Package skifft runs spectral analysis over accelerometer recordings made
// while skiing.
package skifft

import (
	"context"
	"log"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/skilab/skifft/dsp"
	"github.com/skilab/skifft/input"
	"github.com/skilab/skifft/input/table"
	"github.com/skilab/skifft/output"
	"github.com/skilab/skifft/processor"

	_ "github.com/skilab/skifft/input/all"
)

// DefaultAccelID names the accelerometer of files that carry no id.
const DefaultAccelID = "acc"

// Run processes every matching file in cfg.DataDir.
func Run(ctx context.Context, cfg *Config) ([]processor.Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	paths, err := FindFiles(cfg.DataDir, cfg.Extensions)
	if err != nil {
		return nil, err
	}

	if len(paths) == 0 {
		return nil, errors.Errorf("no %s files in %s",
			strings.Join(cfg.Extensions, "/"), cfg.DataDir)
	}

	return RunFiles(ctx, cfg, paths)
}

// RunFiles processes paths. A failing file is reported in its result and
// the rest of the batch carries on.
func RunFiles(ctx context.Context, cfg *Config, paths []string) ([]processor.Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := cfg.Log
	if logger == nil {
		logger = log.New(log.Writer(), "", log.Flags())
	}

	outs := cfg.Outputs
	if outs == nil {
		outs = []processor.Output{output.NewJSONWriter(cfg.SaveDir)}
	}

	proc, err := processor.New(processor.Config{
		SampleRate: cfg.SampleRate,
		Filter:     cfg.Filter,
		Segmenter:  cfg.Segmenter,
		Analyzer: dsp.NewAnalyzer(dsp.AnalyzerConfig{
			SampleRate: cfg.SampleRate,
			FreqLimit:  cfg.FreqLimit,
		}),
		Scaling: cfg.Scaling,
		Outputs: outs,
		Log:     cfg.Log,
	})
	if err != nil {
		return nil, err
	}

	load := NewLoader(cfg, logger)

	var runner processor.Runner
	if cfg.Workers > 1 {
		runner = processor.NewThreaded(proc, load, cfg.Workers)
	} else {
		runner = processor.NewSequential(proc, load)
	}

	return runner.Run(ctx, paths), nil
}

// NewLoader returns a loader decoding files the way cfg describes.
func NewLoader(cfg *Config, logger *log.Logger) processor.Loader {
	srcCfg := input.SourceConfig{Range: cfg.Range, Log: logger}

	return func(path string) (processor.Job, error) {
		t, err := input.LoadFile(path, srcCfg)
		if err != nil {
			return processor.Job{}, err
		}

		if cfg.KeepCSV && !strings.EqualFold(filepath.Ext(path), ".csv") {
			if err := table.WriteFile(table.PathFor(path), t); err != nil {
				return processor.Job{}, err
			}
		}

		record, accel := ParseIDs(path)
		if accel == "" {
			accel = cfg.AccelID
		}
		if accel == "" {
			accel = DefaultAccelID
		}

		return processor.Job{
			Path:     path,
			RecordID: record,
			AccelID:  accel,
			Table:    t,
		}, nil
	}
}

// Failed counts the results carrying an error.
func Failed(results []processor.Result) int {
	n := 0
	for _, res := range results {
		if res.Err != nil {
			n++
		}
	}
	return n
}
