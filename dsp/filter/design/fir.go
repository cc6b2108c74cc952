package design

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-condition/dsp/window"
)

// FIRLowpass designs a linear-phase windowed-sinc lowpass with order+1 taps.
// cutoff is normalized to the sample rate and must lie in (0, 0.5). The taps
// are scaled to unity gain at DC.
func FIRLowpass(order int, cutoff float64, win window.Type, opts ...window.Option) ([]float64, error) {
	if err := checkFIR(order, cutoff); err != nil {
		return nil, err
	}

	h := sinc(order, cutoff)
	window.Apply(win, h, opts...)

	return scaleAt(h, 0), nil
}

// FIRHighpass designs a linear-phase windowed-sinc highpass by spectral
// inversion. order must be even. The taps are scaled to unity gain at Nyquist.
func FIRHighpass(order int, cutoff float64, win window.Type, opts ...window.Option) ([]float64, error) {
	if err := checkFIR(order, cutoff); err != nil {
		return nil, err
	}

	if order%2 != 0 {
		return nil, fmt.Errorf("%w: highpass FIR order must be even, got %d", ErrInvalidSpec, order)
	}

	h := sinc(order, cutoff)
	for i := range h {
		h[i] = -h[i]
	}
	h[order/2] += 1

	window.Apply(win, h, opts...)

	return scaleAt(h, 0.5), nil
}

// FIRBandpass designs a linear-phase windowed-sinc bandpass between the
// normalized edges lo < hi. The taps are scaled to unity gain at the band
// center.
func FIRBandpass(order int, lo, hi float64, win window.Type, opts ...window.Option) ([]float64, error) {
	if err := checkFIRBand(order, lo, hi); err != nil {
		return nil, err
	}

	h := sinc(order, hi)
	low := sinc(order, lo)
	for i := range h {
		h[i] -= low[i]
	}

	window.Apply(win, h, opts...)

	return scaleAt(h, (lo+hi)/2), nil
}

// FIRBandstop designs a linear-phase windowed-sinc bandstop between the
// normalized edges lo < hi. order must be even. The taps are scaled to
// unity gain at DC.
func FIRBandstop(order int, lo, hi float64, win window.Type, opts ...window.Option) ([]float64, error) {
	if err := checkFIRBand(order, lo, hi); err != nil {
		return nil, err
	}

	if order%2 != 0 {
		return nil, fmt.Errorf("%w: bandstop FIR order must be even, got %d", ErrInvalidSpec, order)
	}

	h := sinc(order, lo)
	high := sinc(order, hi)
	for i := range h {
		h[i] -= high[i]
	}
	h[order/2] += 1

	window.Apply(win, h, opts...)

	return scaleAt(h, 0), nil
}

// sinc returns the ideal lowpass impulse response 2fc*sinc(2fc*(n-order/2))
// for n in [0, order].
func sinc(order int, fc float64) []float64 {
	h := make([]float64, order+1)
	mid := float64(order) / 2

	for i := range h {
		x := float64(i) - mid
		if x == 0 {
			h[i] = 2 * fc
			continue
		}

		h[i] = math.Sin(2*math.Pi*fc*x) / (math.Pi * x)
	}

	return h
}

// scaleAt scales h to unity magnitude at normalized frequency f.
func scaleAt(h []float64, f float64) []float64 {
	var sum complex128
	for i, v := range h {
		sum += complex(v, 0) * cmplx.Exp(complex(0, -2*math.Pi*f*float64(i)))
	}

	g := cmplx.Abs(sum)
	if g == 0 || math.IsNaN(g) {
		return h
	}

	for i := range h {
		h[i] /= g
	}

	return h
}

func checkFIR(order int, cutoff float64) error {
	if order < 1 {
		return fmt.Errorf("%w: FIR order must be >= 1, got %d", ErrInvalidSpec, order)
	}

	if !(cutoff > 0 && cutoff < 0.5) {
		return fmt.Errorf("%w: normalized cutoff %v outside (0, 0.5)", ErrInvalidSpec, cutoff)
	}

	return nil
}

func checkFIRBand(order int, lo, hi float64) error {
	if err := checkFIR(order, lo); err != nil {
		return err
	}

	if err := checkFIR(order, hi); err != nil {
		return err
	}

	if lo >= hi {
		return fmt.Errorf("%w: band edges %v >= %v", ErrInvalidSpec, lo, hi)
	}

	return nil
}
