// Package graphic draws recordings and spectra, as PNG plots or live in
// the terminal.
package graphic

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/skilab/skifft/dsp"
	"github.com/skilab/skifft/input"
	"github.com/skilab/skifft/util"
)

// Figure size
const (
	PlotWidth  = 10 * vg.Inch
	PlotHeight = 6 * vg.Inch
)

// RollingWindow is the number of samples averaged for the smoothed x axis
// line.
const RollingWindow = 20

// indexed pairs every finite value with its position plus offset.
func indexed(values []float64, offset int) plotter.XYs {
	xys := make(plotter.XYs, 0, len(values))
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		xys = append(xys, plotter.XY{X: float64(i + offset), Y: v})
	}
	return xys
}

func newPlot(title, xLabel, yLabel string) (*plot.Plot, error) {
	p, err := plot.New()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create plot")
	}

	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Legend.Top = true

	p.Add(plotter.NewGrid())

	return p, nil
}

func save(p *plot.Plot, path string) error {
	if err := p.Save(PlotWidth, PlotHeight, path); err != nil {
		return errors.Wrapf(err, "failed to save %s", path)
	}
	return nil
}

// PlotAxes draws every axis of t over the sample index, plus the rolling
// mean of x.
func PlotAxes(t input.Table, path string) error {
	if t.Len() == 0 {
		return errors.New("nothing to plot")
	}

	p, err := newPlot("Accelerometer Data", "Sample Index", "Acceleration (g)")
	if err != nil {
		return err
	}

	var lines []interface{}
	for idx, label := range input.AxisLabels {
		lines = append(lines, label+" (g)", indexed(t.Axis(idx), 0))
	}

	if mean := util.RollingMean(t.Axis(0), RollingWindow); mean != nil {
		lines = append(lines, "x rolling mean", indexed(mean, RollingWindow-1))
	}

	if err := plotutil.AddLines(p, lines...); err != nil {
		return errors.Wrap(err, "failed to add lines")
	}

	return save(p, path)
}

// PlotDisplacement draws per-axis displacement in meters over the sample
// index.
func PlotDisplacement(cols [][]float64, path string) error {
	if len(cols) == 0 || len(cols[0]) == 0 {
		return errors.New("nothing to plot")
	}

	p, err := newPlot("Accelerometer Displacement Over Time", "Sample Index", "Displacement (m)")
	if err != nil {
		return err
	}

	var lines []interface{}
	for idx, col := range cols {
		lines = append(lines, input.AxisLabels[idx]+" displacement (m)", indexed(col, 0))
	}

	if err := plotutil.AddLines(p, lines...); err != nil {
		return errors.Wrap(err, "failed to add lines")
	}

	return save(p, path)
}

// PlotSpectrum draws a magnitude spectrum, in dB relative to its peak when
// db is set.
func PlotSpectrum(spec dsp.Spectrum, label string, db bool, path string) error {
	if spec.Len() == 0 {
		return errors.New("empty spectrum")
	}

	yLabel := "Magnitude"
	if db {
		spec = spec.DB()
		yLabel = "Magnitude (dB)"
	}

	p, err := newPlot("Accelerometer Data Frequency Domain", "Frequency (Hz)", yLabel)
	if err != nil {
		return err
	}

	xys := make(plotter.XYs, spec.Len())
	for i := range xys {
		xys[i] = plotter.XY{X: spec.Freqs[i], Y: spec.Mags[i]}
	}

	if err := plotutil.AddLines(p, label, xys); err != nil {
		return errors.Wrap(err, "failed to add lines")
	}

	return save(p, path)
}
