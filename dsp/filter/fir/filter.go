package fir

import (
	"math"
	"math/cmplx"
	"slices"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-condition/dsp/conv"
)

// Filter applies a fixed set of FIR taps to whole signals. The taps are
// prepared once for convolution, so one Filter can serve every channel of a
// series. A Filter is safe for concurrent use.
type Filter struct {
	taps []float64
	conv *conv.Convolver
}

// New creates a filter from taps. The taps are copied.
func New(taps []float64) (*Filter, error) {
	c, err := conv.NewConvolver(taps)
	if err != nil {
		return nil, err
	}

	return &Filter{taps: slices.Clone(taps), conv: c}, nil
}

// Len returns the number of taps.
func (f *Filter) Len() int { return len(f.taps) }

// Order returns the filter order, Len()-1.
func (f *Filter) Order() int { return len(f.taps) - 1 }

// Taps returns a copy of the taps.
func (f *Filter) Taps() []float64 { return slices.Clone(f.taps) }

// DCGain returns the sum of the taps.
func (f *Filter) DCGain() float64 { return floats.Sum(f.taps) }

// Apply filters x causally from rest and returns a new slice of the same
// length:
//
//	y[n] = sum_{k=0}^{N-1} h[k] * x[n-k]
func (f *Filter) Apply(x []float64) ([]float64, error) {
	return f.conv.Filter(x)
}

// Response returns the complex frequency response at freqHz.
func (f *Filter) Response(freqHz, sampleRate float64) complex128 {
	zi := cmplx.Rect(1, -2*math.Pi*freqHz/sampleRate)

	var h complex128
	for _, c := range slices.Backward(f.taps) {
		h = h*zi + complex(c, 0)
	}

	return h
}

// MagnitudeDB returns the magnitude response in dB at freqHz.
func (f *Filter) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 20 * math.Log10(cmplx.Abs(f.Response(freqHz, sampleRate)))
}

// ZeroPhaseMagnitudeDB returns the magnitude in dB that ZeroPhase applies
// at freqHz, twice the single-pass value.
func (f *Filter) ZeroPhaseMagnitudeDB(freqHz, sampleRate float64) float64 {
	return 2 * f.MagnitudeDB(freqHz, sampleRate)
}
