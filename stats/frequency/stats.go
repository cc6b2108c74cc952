// Package frequency summarizes the spectrum of a channel.
package frequency

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-condition/dsp/window"
)

// ErrTooShort indicates fewer than two samples.
var ErrTooShort = errors.New("frequency: signal too short")

// DefaultRolloff is the energy fraction used by Analyze for Rolloff.
const DefaultRolloff = 0.85

// Stats holds spectral descriptors of one channel. Frequencies are in Hz.
type Stats struct {
	Bins       int
	Resolution float64 // bin spacing
	Dominant   float64 // strongest non-DC bin
	Centroid   float64
	Rolloff    float64 // frequency below which DefaultRolloff of the energy lies
}

// Magnitude returns the one-sided magnitude spectrum of x after removing its
// mean and applying a Hann window. x is zero-padded to a power of two;
// the result has fftSize/2+1 bins.
func Magnitude(x []float64) ([]float64, error) {
	if len(x) < 2 {
		return nil, ErrTooShort
	}

	size := 2
	for size < len(x) {
		size <<= 1
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("frequency: %w", err)
	}

	buf := make([]float64, len(x))
	copy(buf, x)
	floats.AddConst(-floats.Sum(buf)/float64(len(buf)), buf)
	window.Apply(window.TypeHann, buf)

	spec := make([]complex128, size)
	for i, v := range buf {
		spec[i] = complex(v, 0)
	}

	if err := plan.Forward(spec, spec); err != nil {
		return nil, fmt.Errorf("frequency: %w", err)
	}

	mag := make([]float64, size/2+1)
	for i := range mag {
		mag[i] = cmplx.Abs(spec[i])
	}

	return mag, nil
}

// Calculate derives Stats from a one-sided magnitude spectrum.
func Calculate(magnitude []float64, sampleRate float64) Stats {
	n := len(magnitude)
	if n < 2 {
		return Stats{Bins: n}
	}

	res := sampleRate / float64(2*(n-1))
	s := Stats{Bins: n, Resolution: res}

	s.Dominant = float64(floats.MaxIdx(magnitude[1:])+1) * res

	if sum := floats.Sum(magnitude); sum > 0 {
		var weighted float64
		for i, v := range magnitude {
			weighted += float64(i) * res * v
		}

		s.Centroid = weighted / sum
	}

	s.Rolloff = rolloff(magnitude, res, DefaultRolloff)

	return s
}

func rolloff(magnitude []float64, res, fraction float64) float64 {
	energy := floats.Dot(magnitude, magnitude)
	if energy == 0 {
		return 0
	}

	var cum float64
	for i, v := range magnitude {
		cum += v * v
		if cum >= fraction*energy {
			return float64(i) * res
		}
	}

	return float64(len(magnitude)-1) * res
}

// Analyze computes the spectrum of x and its Stats.
func Analyze(x []float64, sampleRate float64) (Stats, error) {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return Stats{}, fmt.Errorf("frequency: invalid sample rate %v", sampleRate)
	}

	mag, err := Magnitude(x)
	if err != nil {
		return Stats{}, err
	}

	return Calculate(mag, sampleRate), nil
}
