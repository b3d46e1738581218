//go:build fftw && cgo
// +build fftw,cgo

package fft

// The only binding here is fftw_plan_dft_r2c_1d. It is the only fftw plan
// we need.

// #cgo pkg-config: fftw3
// #include <fftw3.h>
import "C"

import (
	"runtime"
	"unsafe"
)

// FFTW is true if skifft is built with the fftw tag and cgo.
const FFTW = true

// Plan holds an FFTW C plan
type Plan struct {
	input  []float64
	output []complex128
	cPlan  C.fftw_plan
}

func (p *Plan) init() {
	// FFTW_ESTIMATE leaves the buffers untouched while planning, segments
	// are already loaded by the time we plan.
	p.cPlan = C.fftw_plan_dft_r2c_1d(
		C.int(len(p.input)),
		(*C.double)(unsafe.Pointer(&p.input[0])),
		(*C.fftw_complex)(unsafe.Pointer(&p.output[0])),
		C.FFTW_ESTIMATE,
	)

	// Rely on the runtime to free memory.
	runtime.SetFinalizer(p, (*Plan).destroy)
}

// Execute runs the plan
func (p *Plan) Execute() {
	C.fftw_execute(p.cPlan)
}

// destroy releases resources
func (p *Plan) destroy() {
	C.fftw_destroy_plan(p.cPlan)
}
