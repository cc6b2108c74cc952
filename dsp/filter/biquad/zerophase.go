package biquad

import "github.com/cwbudde/algo-condition/dsp/core"

// PadLength returns the odd-extension length FiltFilt uses for a cascade
// of numSections sections.
func PadLength(numSections int) int {
	return 3 * (2*numSections + 1)
}

// FiltFilt filters x forward and then backward through the cascade and
// returns a new slice of the same length. The result has zero phase and a
// squared magnitude response. x is not modified.
func FiltFilt(coeffs []Coefficients, gain float64, x []float64) []float64 {
	n := len(x)
	out := make([]float64, n)
	if n == 0 {
		return out
	}

	ext := core.OddExtend(x, PadLength(len(coeffs)))
	pad := (len(ext) - n) / 2

	c := NewChain(coeffs, WithGain(gain))

	c.SettleTo(ext[0])
	c.ProcessBlock(ext)

	core.Reverse(ext)
	c.SettleTo(ext[0])
	c.ProcessBlock(ext)
	core.Reverse(ext)

	copy(out, ext[pad:pad+n])

	return out
}

// FiltFilt filters x forward and backward through the chain's coefficients
// and gain. The chain's own delay-line state is left untouched.
func (c *Chain) FiltFilt(x []float64) []float64 {
	return FiltFilt(c.Coefficients(), c.gain, x)
}
