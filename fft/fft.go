// Package fft provides generic abstractions around fourier transformers.
//
// The default build uses gonum. Building with the fftw tag (and cgo) swaps
// in FFTW3 bindings.
package fft

// InitPlan sets pointer to a new plan that transforms input into output.
// output must hold len(input)/2+1 values.
func InitPlan(pointer **Plan, input []float64, output []complex128) {
	(*pointer) = &Plan{
		input:  input,
		output: output,
	}

	(*pointer).init()
}

// NewPlan returns a plan that transforms input into output.
func NewPlan(input []float64, output []complex128) *Plan {
	var plan *Plan
	InitPlan(&plan, input, output)
	return plan
}

// Transform runs a one-shot real transform over input and returns the
// len(input)/2+1 non-negative frequency coefficients. input is not modified.
func Transform(input []float64) []complex128 {
	if len(input) == 0 {
		return nil
	}

	buf := make([]float64, len(input))
	copy(buf, input)

	out := make([]complex128, len(input)/2+1)
	NewPlan(buf, out).Execute()

	return out
}
