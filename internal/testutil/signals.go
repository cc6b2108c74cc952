// Package testutil provides deterministic series and tolerance helpers for
// tests.
package testutil

import (
	"math"
	"math/rand"

	"github.com/cwbudde/algo-condition/dsp/core"
)

// Sine returns n samples of amplitude*sin(2*pi*freqHz*t) at sampleRate.
func Sine(freqHz, sampleRate, amplitude float64, n int) []float64 {
	out := make([]float64, n)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// Noise returns n samples of uniform noise in [-amplitude, amplitude]
// drawn from a fixed seed.
func Noise(seed int64, amplitude float64, n int) []float64 {
	out := make([]float64, n)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Ramp returns offset + slope*i for i in [0, n).
func Ramp(offset, slope float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = offset + slope*float64(i)
	}
	return out
}

// Time returns n uniformly spaced timestamps starting at t0.
func Time(t0, sampleRate float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = t0 + float64(i)/sampleRate
	}
	return out
}

// Columns builds a matrix from equal-length channels and panics on a length
// mismatch.
func Columns(channels ...[]float64) *core.Matrix {
	m, err := core.FromColumns(channels...)
	if err != nil {
		panic(err)
	}
	return m
}
