package design

import (
	"math"

	"github.com/cwbudde/algo-condition/dsp/filter/biquad"
)

// ButterworthLP designs a lowpass Butterworth cascade with its -3 dB point
// at freq.
//
// For odd orders, the final section is first-order (B2=A2=0).
func ButterworthLP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	k, ok := bilinearK(freq, sampleRate)
	if !ok || order <= 0 {
		return nil
	}

	sections := make([]biquad.Coefficients, 0, (order+1)/2)
	for i := order/2 - 1; i >= 0; i-- {
		sections = append(sections, Lowpass(freq, butterworthQ(order, i), sampleRate))
	}

	if order%2 != 0 {
		sections = append(sections, firstOrderLP(k, 1))
	}

	return sections
}

// ButterworthHP designs a highpass Butterworth cascade with its -3 dB point
// at freq.
//
// For odd orders, the final section is first-order (B2=A2=0).
func ButterworthHP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	k, ok := bilinearK(freq, sampleRate)
	if !ok || order <= 0 {
		return nil
	}

	sections := make([]biquad.Coefficients, 0, (order+1)/2)
	for i := order/2 - 1; i >= 0; i-- {
		sections = append(sections, Highpass(freq, butterworthQ(order, i), sampleRate))
	}

	if order%2 != 0 {
		sections = append(sections, firstOrderHP(k, 1))
	}

	return sections
}

// Chebyshev1LP designs a lowpass Chebyshev Type I cascade. freq is the
// passband edge, where the response last touches -rippleDB. Every section
// has unity gain at DC, so the cascade passes constants unchanged.
//
// For odd orders, the final section is first-order (B2=A2=0).
func Chebyshev1LP(freq float64, order int, rippleDB, sampleRate float64) []biquad.Coefficients {
	k, ok := bilinearK(freq, sampleRate)
	if !ok || order <= 0 || !(rippleDB > 0) {
		return nil
	}

	sections := make([]biquad.Coefficients, 0, (order+1)/2)
	for _, p := range cheby1Prototype(order, rippleDB) {
		if p.c == 0 {
			sections = append(sections, firstOrderLP(k, p.d))
			continue
		}

		sections = append(sections, secondOrderLP(k, p.c, p.d))
	}

	return sections
}

// Chebyshev1HP designs a highpass Chebyshev Type I cascade. freq is the
// passband edge. Every section has unity gain at Nyquist.
//
// For odd orders, the final section is first-order (B2=A2=0).
func Chebyshev1HP(freq float64, order int, rippleDB, sampleRate float64) []biquad.Coefficients {
	k, ok := bilinearK(freq, sampleRate)
	if !ok || order <= 0 || !(rippleDB > 0) {
		return nil
	}

	sections := make([]biquad.Coefficients, 0, (order+1)/2)
	for _, p := range cheby1Prototype(order, rippleDB) {
		if p.c == 0 {
			sections = append(sections, firstOrderHP(k, p.d))
			continue
		}

		sections = append(sections, secondOrderHP(k, p.c, p.d))
	}

	return sections
}

// analogSection is a normalized analog lowpass factor 1/(c*s^2 + d*s + 1).
// c == 0 marks a first-order factor 1/(d*s + 1).
type analogSection struct {
	c, d float64
}

// cheby1Prototype returns the factors of the Chebyshev Type I lowpass
// prototype with its passband edge at 1 rad/s. Complex pairs come first,
// the real pole of an odd order last.
func cheby1Prototype(order int, rippleDB float64) []analogSection {
	eps := math.Sqrt(math.Pow(10, rippleDB/10) - 1)
	v := math.Asinh(1/eps) / float64(order)
	sh, ch := math.Sinh(v), math.Cosh(v)

	out := make([]analogSection, 0, (order+1)/2)
	for i := range order / 2 {
		theta := math.Pi * float64(2*i+1) / (2 * float64(order))
		sigma := sh * math.Sin(theta)
		omega := ch * math.Cos(theta)
		r2 := sigma*sigma + omega*omega
		out = append(out, analogSection{c: 1 / r2, d: 2 * sigma / r2})
	}

	if order%2 != 0 {
		out = append(out, analogSection{d: 1 / sh})
	}

	return out
}

// secondOrderLP maps 1/(c*s^2 + d*s + 1) through the bilinear transform with
// prewarp factor k.
func secondOrderLP(k, c, d float64) biquad.Coefficients {
	k2 := k * k
	return normalizeBiquad(k2, 2*k2, k2, c+d*k+k2, 2*k2-2*c, c-d*k+k2)
}

// secondOrderHP maps the highpass image s^2/(s^2 + d*s + c) of the lowpass
// factor through the bilinear transform.
func secondOrderHP(k, c, d float64) biquad.Coefficients {
	ck2 := c * k * k
	return normalizeBiquad(1, -2, 1, 1+d*k+ck2, 2*ck2-2, 1-d*k+ck2)
}

func firstOrderLP(k, d float64) biquad.Coefficients {
	norm := 1 / (d + k)
	return biquad.Coefficients{
		B0: k * norm,
		B1: k * norm,
		A1: (k - d) * norm,
	}
}

func firstOrderHP(k, d float64) biquad.Coefficients {
	norm := 1 / (1 + d*k)
	return biquad.Coefficients{
		B0: norm,
		B1: -norm,
		A1: (d*k - 1) * norm,
	}
}

func butterworthQ(order, index int) float64 {
	theta := math.Pi * float64(2*index+1) / (2 * float64(order))
	s := math.Sin(theta)
	if s == 0 {
		return defaultQ
	}
	return 1 / (2 * s)
}

func bilinearK(freq, sampleRate float64) (float64, bool) {
	if _, ok := normalizedW0(freq, sampleRate); !ok {
		return 0, false
	}
	return math.Tan(math.Pi * freq / sampleRate), true
}
