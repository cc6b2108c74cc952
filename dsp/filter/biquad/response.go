package biquad

import (
	"math"
	"math/cmplx"
)

// delayAt returns z^-1 on the unit circle for freqHz at sampleRate.
func delayAt(freqHz, sampleRate float64) complex128 {
	return cmplx.Rect(1, -2*math.Pi*freqHz/sampleRate)
}

// eval evaluates the transfer function at the delay operator zi = z^-1.
func (c Coefficients) eval(zi complex128) complex128 {
	num := complex(c.B0, 0) + zi*(complex(c.B1, 0)+zi*complex(c.B2, 0))
	den := 1 + zi*(complex(c.A1, 0)+zi*complex(c.A2, 0))

	return num / den
}

// Response returns the complex frequency response of the section at freqHz.
func (c Coefficients) Response(freqHz, sampleRate float64) complex128 {
	return c.eval(delayAt(freqHz, sampleRate))
}

// MagnitudeDB returns 20*log10(|H(f)|).
func (c Coefficients) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return toDB(c.Response(freqHz, sampleRate))
}

// Response returns the response of gain followed by the cascade of coeffs.
func Response(coeffs []Coefficients, gain, freqHz, sampleRate float64) complex128 {
	zi := delayAt(freqHz, sampleRate)

	h := complex(gain, 0)
	for _, c := range coeffs {
		h *= c.eval(zi)
	}

	return h
}

// ZeroPhaseMagnitudeDB returns the magnitude in dB that FiltFilt applies at
// freqHz: the single-pass magnitude counted twice, with no phase.
func ZeroPhaseMagnitudeDB(coeffs []Coefficients, gain, freqHz, sampleRate float64) float64 {
	return 2 * toDB(Response(coeffs, gain, freqHz, sampleRate))
}

// Response returns the response of the whole chain including its gain.
func (c *Chain) Response(freqHz, sampleRate float64) complex128 {
	return Response(c.Coefficients(), c.gain, freqHz, sampleRate)
}

// MagnitudeDB returns the chain magnitude response in dB.
func (c *Chain) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return toDB(c.Response(freqHz, sampleRate))
}

func toDB(h complex128) float64 {
	return 20 * math.Log10(cmplx.Abs(h))
}
