package main

import (
	"context"
	"fmt"
	"io/ioutil"
	"log"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/integrii/flaggy"

	"github.com/skilab/skifft"
	"github.com/skilab/skifft/analysis"
	"github.com/skilab/skifft/config"
	"github.com/skilab/skifft/dsp"
	"github.com/skilab/skifft/graphic"
	"github.com/skilab/skifft/input"
	"github.com/skilab/skifft/input/raw"
	"github.com/skilab/skifft/input/table"
	"github.com/skilab/skifft/output"
	"github.com/skilab/skifft/processor"
)

// AppName is the app name
const AppName = "skifft"

// AppDesc is the app description
const AppDesc = "Spectral analysis of accelerometer recordings from skis"

var version = "unknown"

type command int

const (
	cmdNone command = iota
	cmdConvert
	cmdFFT
	cmdEnhanced
	cmdHealth
	cmdDisplacement
	cmdPlot
	cmdView
	cmdSynth
)

func main() {
	log.SetFlags(0)

	cfg := newZeroConfig()

	cmd := doFlags(&cfg)

	chk(cfg.validate(), "invalid config")

	// Root Context
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg.defaultSaveDir(cmd)

	switch cmd {
	case cmdConvert:
		chk(convert(&cfg), "failed to convert")

	case cmdFFT:
		chk(runFFT(ctx, &cfg), "failed to run fft")

	case cmdEnhanced:
		chk(runEnhanced(ctx, &cfg), "failed to run enhanced fft")

	case cmdHealth:
		chk(health(&cfg), "failed to check health")

	case cmdDisplacement:
		chk(displacement(&cfg), "failed to compute displacement")

	case cmdPlot:
		chk(plotAxes(&cfg), "failed to plot")

	case cmdView:
		chk(view(ctx, &cfg), "failed to view")

	case cmdSynth:
		chk(synth(&cfg), "failed to synthesize")
	}
}

func doFlags(cfg *config) command {

	parser := flaggy.NewParser(AppName)
	parser.Description = AppDesc
	parser.Version = version

	parser.Float64(&cfg.sampleRate, "r", "rate", "sample rate in Hz")
	parser.Int(&cfg.rng, "g", "range", "full-scale range in g (2, 4, 8, 16)")
	parser.String(&cfg.accelID, "a", "accel", "accelerometer id for files named without one")

	convertCmd := flaggy.NewSubcommand("convert")
	convertCmd.Description = "decode a raw dump into a csv next to it"
	convertCmd.AddPositionalValue(&cfg.file, "file", 1, true, "raw .dat dump")
	parser.AttachSubcommand(convertCmd, 1)

	fftCmd := flaggy.NewSubcommand("fft")
	fftCmd.Description = "whole-record spectrum of every raw dump in a directory"
	fftCmd.String(&cfg.dataDir, "d", "data", "directory holding the .dat dumps")
	fftCmd.String(&cfg.saveDir, "s", "save", "directory the results go to (default "+FFTSaveDir+")")
	fftCmd.Float64(&cfg.freqLimit, "f", "flim", "highest frequency kept in Hz (0 keeps all)")
	fftCmd.Bool(&cfg.db, "db", "db", "scale magnitudes to dB")
	fftCmd.Int(&cfg.workers, "t", "threads", "files processed at once")
	parser.AttachSubcommand(fftCmd, 1)

	enhancedCmd := flaggy.NewSubcommand("enhanced")
	enhancedCmd.Description = "segmented spectra of every recording in a directory"
	enhancedCmd.String(&cfg.dataDir, "d", "data", "directory holding .dat or .csv recordings")
	enhancedCmd.String(&cfg.saveDir, "s", "save", "directory the records go to (default enhanced_fft)")
	enhancedCmd.String(&cfg.strategy, "m", "strategy",
		"segmentation strategy ("+strings.Join(config.Strategies, ", ")+")")
	enhancedCmd.Int(&cfg.nSplits, "n", "splits", "number of segments for equal and correlation")
	enhancedCmd.String(&cfg.reference, "ref", "reference", "template recording for correlation")
	enhancedCmd.String(&cfg.profile, "p", "profile", "yaml analysis profile")
	enhancedCmd.Float64(&cfg.freqLimit, "f", "flim", "highest frequency kept in Hz (0 keeps all)")
	enhancedCmd.Bool(&cfg.db, "db", "db", "mark records for dB display")
	enhancedCmd.Int(&cfg.workers, "t", "threads", "files processed at once")
	enhancedCmd.Bool(&cfg.print, "P", "print", "print the peak of every record")
	enhancedCmd.Bool(&cfg.noPNG, "np", "no-png", "skip the spectrum plots")
	parser.AttachSubcommand(enhancedCmd, 1)

	healthCmd := flaggy.NewSubcommand("health")
	healthCmd.Description = "share of samples whose norm is outside [0.9, 1.1] g"
	healthCmd.AddPositionalValue(&cfg.file, "file", 1, true, "recording")
	parser.AttachSubcommand(healthCmd, 1)

	dispCmd := flaggy.NewSubcommand("displacement")
	dispCmd.Description = "integrate a recording twice into displacement"
	dispCmd.AddPositionalValue(&cfg.file, "file", 1, true, "recording")
	dispCmd.String(&cfg.out, "o", "out", "csv to write the displacement to")
	dispCmd.String(&cfg.pngOut, "png", "png", "png to plot the displacement to")
	parser.AttachSubcommand(dispCmd, 1)

	plotCmd := flaggy.NewSubcommand("plot")
	plotCmd.Description = "plot the axes of a recording"
	plotCmd.AddPositionalValue(&cfg.file, "file", 1, true, "recording")
	plotCmd.String(&cfg.out, "o", "out", "png to write")
	parser.AttachSubcommand(plotCmd, 1)

	viewCmd := flaggy.NewSubcommand("view")
	viewCmd.Description = "show a spectrum record in the terminal"
	viewCmd.AddPositionalValue(&cfg.file, "file", 1, true, "json record")
	parser.AttachSubcommand(viewCmd, 1)

	synthCmd := flaggy.NewSubcommand("synth")
	synthCmd.Description = "write a raw dump of a sine on every axis"
	synthCmd.AddPositionalValue(&cfg.file, "file", 1, true, ".dat to write")
	synthCmd.Float64(&cfg.freq, "hz", "freq", "sine frequency in Hz")
	synthCmd.Float64(&cfg.seconds, "sec", "seconds", "length in seconds")
	parser.AttachSubcommand(synthCmd, 1)

	chk(parser.Parse(), "failed to parse arguments")

	switch {
	case convertCmd.Used:
		return cmdConvert
	case fftCmd.Used:
		return cmdFFT
	case enhancedCmd.Used:
		return cmdEnhanced
	case healthCmd.Used:
		return cmdHealth
	case dispCmd.Used:
		return cmdDisplacement
	case plotCmd.Used:
		return cmdPlot
	case viewCmd.Used:
		return cmdView
	case synthCmd.Used:
		return cmdSynth
	}

	parser.ShowHelpAndExit("a subcommand is required")
	return cmdNone
}

func srcConfig(cfg *config) input.SourceConfig {
	return input.SourceConfig{Range: input.Range(cfg.rng)}
}

func convert(cfg *config) error {
	dec := raw.NewDecoder(input.Range(cfg.rng), nil)

	t, err := dec.Load(cfg.file)
	if err != nil {
		return err
	}

	out := table.PathFor(cfg.file)
	if err := table.WriteFile(out, t); err != nil {
		return err
	}

	fmt.Printf("%s: %d samples -> %s\n", cfg.file, t.Len(), out)
	return nil
}

func report(results []processor.Result) error {
	written := 0
	for _, res := range results {
		if res.Err != nil {
			log.Printf("%s: %v", res.Path, res.Err)
			continue
		}
		written += len(res.Written)
	}

	failed := skifft.Failed(results)
	fmt.Printf("%d files, %d failed, %d artifacts written\n", len(results), failed, written)

	if failed > 0 && failed == len(results) {
		return fmt.Errorf("all %d files failed", failed)
	}
	return nil
}

func runFFT(ctx context.Context, cfg *config) error {
	c := cfg.base()
	c.Extensions = []string{"dat"}
	c.KeepCSV = true
	c.Segmenter = dsp.NewWholeSplit()
	c.Outputs = []processor.Output{
		output.NewJSONWriter(cfg.saveDir),
		graphic.NewSpectrumPlotter(cfg.saveDir),
	}

	results, err := skifft.Run(ctx, &c)
	if err != nil {
		return err
	}

	return report(results)
}

func runEnhanced(ctx context.Context, cfg *config) error {
	c := cfg.base()

	if cfg.profile != "" {
		p, err := config.Load(cfg.profile)
		if err != nil {
			return err
		}
		if err := p.Apply(&c); err != nil {
			return err
		}
	} else {
		spec := config.StrategySpec{
			Name:      cfg.strategy,
			NSplits:   dsp.Int(cfg.nSplits),
			Reference: cfg.reference,
		}

		seg, err := spec.Build("", c.Range)
		if err != nil {
			return err
		}
		c.Segmenter = seg
	}

	c.Outputs = []processor.Output{output.NewJSONWriter(cfg.saveDir)}
	if !cfg.noPNG {
		c.Outputs = append(c.Outputs, graphic.NewSpectrumPlotter(filepath.Join(cfg.saveDir, "png")))
	}
	if cfg.print {
		c.Outputs = append(c.Outputs, NewSummaryWriter(os.Stdout))
	}

	results, err := skifft.Run(ctx, &c)
	if err != nil {
		return err
	}

	return report(results)
}

func health(cfg *config) error {
	t, err := input.LoadFile(cfg.file, srcConfig(cfg))
	if err != nil {
		return err
	}

	hr := analysis.CheckHealth(t, analysis.HealthLow, analysis.HealthHigh)
	fmt.Printf("Length: %d\nDone. %s\n", hr.Total, hr)

	return nil
}

func displacement(cfg *config) error {
	t, err := input.LoadFile(cfg.file, srcConfig(cfg))
	if err != nil {
		return err
	}

	d, err := analysis.ComputeDisplacement(t, cfg.sampleRate, analysis.DriftCutoff)
	if err != nil {
		return err
	}

	out := cfg.out
	if out == "" && cfg.pngOut == "" {
		out = strings.TrimSuffix(cfg.file, filepath.Ext(cfg.file)) + "_disp.csv"
	}

	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			return err
		}

		header := []string{"Dx (m)", "Dy (m)", "Dz (m)"}
		if err := table.WriteColumns(f, header, d.Columns()); err != nil {
			f.Close()
			return err
		}

		if err := f.Close(); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", out)
	}

	if cfg.pngOut != "" {
		if err := graphic.PlotDisplacement(d.Columns(), cfg.pngOut); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", cfg.pngOut)
	}

	return nil
}

func plotAxes(cfg *config) error {
	t, err := input.LoadFile(cfg.file, srcConfig(cfg))
	if err != nil {
		return err
	}

	out := cfg.out
	if out == "" {
		out = strings.TrimSuffix(cfg.file, filepath.Ext(cfg.file)) + ".png"
	}

	if err := graphic.PlotAxes(t, out); err != nil {
		return err
	}

	fmt.Printf("wrote %s\n", out)
	return nil
}

func view(ctx context.Context, cfg *config) error {
	rec, err := output.ReadFile(cfg.file)
	if err != nil {
		return err
	}

	return graphic.NewViewer(rec).Run(ctx)
}

func synth(cfg *config) error {
	n := int(cfg.seconds * cfg.sampleRate)
	if n <= 0 {
		return fmt.Errorf("%g s at %g Hz is no samples", cfg.seconds, cfg.sampleRate)
	}

	sensitivity, err := input.Range(cfg.rng).Sensitivity()
	if err != nil {
		return err
	}

	// half of full scale on x, a quarter on y and 1 g of gravity on z
	wave := dsp.Sine(cfg.freq, cfg.sampleRate, float64(cfg.rng)/2*sensitivity, n)

	samples := make([][input.AxisCount]int16, n)
	for i, v := range wave {
		s := int16(math.Round(v))
		samples[i] = [input.AxisCount]int16{s, s / 2, int16(sensitivity)}
	}

	if err := ioutil.WriteFile(cfg.file, raw.Encode(samples), 0o644); err != nil {
		return err
	}

	fmt.Printf("wrote %d samples to %s\n", n, cfg.file)
	return nil
}

func chk(err error, wrap string) {
	if err != nil {
		log.Fatalln(wrap+": ", err)
	}
}
