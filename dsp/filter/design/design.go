package design

import (
	"math"

	"github.com/cwbudde/algo-condition/dsp/filter/biquad"
)

const defaultQ = 1 / math.Sqrt2

// Lowpass designs an RBJ lowpass biquad at freq (Hz) with quality factor q.
// It returns zero coefficients when freq is outside (0, nyquist).
func Lowpass(freq, q, sampleRate float64) biquad.Coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}

	q = normalizedQ(q)
	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)

	b1 := 1 - cw
	b0 := b1 / 2

	return normalizeBiquad(b0, b1, b0, 1+alpha, -2*cw, 1-alpha)
}

// Highpass designs an RBJ highpass biquad at freq (Hz) with quality factor q.
func Highpass(freq, q, sampleRate float64) biquad.Coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}

	q = normalizedQ(q)
	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)

	b0 := (1 + cw) / 2

	return normalizeBiquad(b0, -(1 + cw), b0, 1+alpha, -2*cw, 1-alpha)
}

// Notch designs a notch biquad centered at freq (Hz). The -3 dB bandwidth
// is freq/q.
func Notch(freq, q, sampleRate float64) biquad.Coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}

	q = normalizedQ(q)
	cw := math.Cos(w0)
	sw := math.Sin(w0)
	alpha := sw / (2 * q)

	b0 := 1.0
	b1 := -2 * cw
	b2 := 1.0
	a0 := 1 + alpha
	a1 := -2 * cw
	a2 := 1 - alpha

	return normalizeBiquad(b0, b1, b2, a0, a1, a2)
}

func normalizedW0(freq, sampleRate float64) (float64, bool) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return 0, false
	}

	nyquist := sampleRate / 2
	if freq <= 0 || freq >= nyquist || math.IsNaN(freq) || math.IsInf(freq, 0) {
		return 0, false
	}

	return 2 * math.Pi * freq / sampleRate, true
}

func normalizedQ(q float64) float64 {
	if q <= 0 || math.IsNaN(q) || math.IsInf(q, 0) {
		return defaultQ
	}

	return q
}

func normalizeBiquad(b0, b1, b2, a0, a1, a2 float64) biquad.Coefficients {
	if a0 == 0 || math.IsNaN(a0) || math.IsInf(a0, 0) {
		return biquad.Coefficients{}
	}

	return biquad.Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}
}
