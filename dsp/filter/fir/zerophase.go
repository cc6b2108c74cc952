package fir

import (
	"fmt"

	"github.com/cwbudde/algo-condition/dsp/core"
)

// PadLength returns the odd-extension length FiltFilt uses for numTaps
// coefficients.
func PadLength(numTaps int) int {
	return 3 * numTaps
}

// FiltFilt applies taps to x forward and then backward and returns a new
// slice of the same length. See [Filter.ZeroPhase].
func FiltFilt(taps, x []float64) ([]float64, error) {
	f, err := New(taps)
	if err != nil {
		return nil, err
	}

	return f.ZeroPhase(x)
}

// ZeroPhase filters x forward and then backward and returns a new slice of
// the same length. The result has zero phase and the squared magnitude
// response of the taps. x is not modified.
//
// Each pass starts in the steady state for its first input sample, so a
// constant input comes out scaled by the DC gain even when the signal is
// shorter than the filter.
func (f *Filter) ZeroPhase(x []float64) ([]float64, error) {
	n := len(x)
	out := make([]float64, n)
	if n == 0 {
		return out, nil
	}

	ext := core.OddExtend(x, PadLength(len(f.taps)))
	pad := (len(ext) - n) / 2

	fwd, err := f.settledPass(ext)
	if err != nil {
		return nil, fmt.Errorf("fir: forward pass: %w", err)
	}

	core.Reverse(fwd)

	bwd, err := f.settledPass(fwd)
	if err != nil {
		return nil, fmt.Errorf("fir: backward pass: %w", err)
	}

	core.Reverse(bwd)
	copy(out, bwd[pad:pad+n])

	return out, nil
}

// settledPass filters x as if x[0] had been applied forever before it.
func (f *Filter) settledPass(x []float64) ([]float64, error) {
	lead := len(f.taps) - 1

	buf := make([]float64, lead+len(x))
	for i := range lead {
		buf[i] = x[0]
	}

	copy(buf[lead:], x)

	y, err := f.Apply(buf)
	if err != nil {
		return nil, err
	}

	return y[lead:], nil
}
