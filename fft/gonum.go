//go:build !fftw || !cgo
// +build !fftw !cgo

package fft

import (
	"gonum.org/v1/gonum/dsp/fourier"
)

// FFTW is false if skifft is not built with the fftw tag. It will use gonum
// instead.
const FFTW = false

// Plan holds a gonum FFT plan.
type Plan struct {
	input  []float64
	output []complex128
	fft    *fourier.FFT
}

func (p *Plan) init() {
	p.fft = fourier.NewFFT(len(p.input))
}

// Execute executes the gonum plan.
func (p *Plan) Execute() {
	if p.fft == nil {
		p.init()
	}
	p.fft.Coefficients(p.output, p.input)
}
