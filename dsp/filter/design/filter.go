package design

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-condition/dsp/filter/biquad"
	"github.com/cwbudde/algo-condition/dsp/filter/fir"
	"github.com/cwbudde/algo-condition/dsp/window"
)

// Filter is a designed filter bound to a sample rate. It holds either a
// biquad cascade or FIR taps.
type Filter struct {
	spec       Spec
	sampleRate float64
	sections   []biquad.Coefficients
	fir        *fir.Filter
}

// Design builds the filter described by spec for sampleRate. It fails with
// ErrInvalidSpec for bad parameters or frequencies outside (0, nyquist) and
// with ErrUnstable when a designed section has a pole on or outside the
// unit circle.
func Design(spec Spec, sampleRate float64) (*Filter, error) {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("%w: sample rate must be positive and finite, got %v", ErrInvalidSpec, sampleRate)
	}

	spec = spec.finalized()
	if err := spec.validate(sampleRate); err != nil {
		return nil, err
	}

	f := &Filter{spec: spec, sampleRate: sampleRate}

	if spec.Response.IsFIR() {
		taps, err := designFIR(spec, sampleRate)
		if err != nil {
			return nil, err
		}

		if f.fir, err = fir.New(taps); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidSpec, err)
		}

		return f, nil
	}

	f.sections = designIIR(spec, sampleRate)
	if len(f.sections) == 0 {
		return nil, fmt.Errorf("%w: %s design produced no sections", ErrInvalidSpec, spec.Response)
	}

	if !biquad.Stable(f.sections) {
		return nil, fmt.Errorf("%w: %s %s order %d at %v Hz", ErrUnstable, spec.Method, spec.Response, spec.Order, spec.Cutoff)
	}

	return f, nil
}

func designIIR(spec Spec, sampleRate float64) []biquad.Coefficients {
	lowpass := func(freq float64, order int) []biquad.Coefficients {
		if spec.Method == MethodCheby1 {
			return Chebyshev1LP(freq, order, spec.RippleDB, sampleRate)
		}
		return ButterworthLP(freq, order, sampleRate)
	}

	highpass := func(freq float64, order int) []biquad.Coefficients {
		if spec.Method == MethodCheby1 {
			return Chebyshev1HP(freq, order, spec.RippleDB, sampleRate)
		}
		return ButterworthHP(freq, order, sampleRate)
	}

	switch spec.Response {
	case ResponseLowpassIIR:
		return lowpass(spec.Cutoff, spec.Order)
	case ResponseHighpassIIR:
		return highpass(spec.Cutoff, spec.Order)
	case ResponseBandpassIIR:
		hp := highpass(spec.Cutoff, spec.Order/2)
		lp := lowpass(spec.Cutoff2, spec.Order/2)
		if hp == nil || lp == nil {
			return nil
		}
		return append(hp, lp...)
	case ResponseNotch:
		return []biquad.Coefficients{Notch(spec.Cutoff, spec.Q, sampleRate)}
	default:
		return nil
	}
}

func designFIR(spec Spec, sampleRate float64) ([]float64, error) {
	lo := spec.Cutoff / sampleRate
	hi := spec.Cutoff2 / sampleRate

	var opts []window.Option
	if spec.Window == window.TypeKaiser {
		opts = append(opts, window.WithAlpha(spec.KaiserBeta))
	}

	switch spec.Response {
	case ResponseLowpassFIR:
		return FIRLowpass(spec.Order, lo, spec.Window, opts...)
	case ResponseHighpassFIR:
		return FIRHighpass(spec.Order, lo, spec.Window, opts...)
	case ResponseBandpassFIR:
		return FIRBandpass(spec.Order, lo, hi, spec.Window, opts...)
	case ResponseBandstopFIR:
		return FIRBandstop(spec.Order, lo, hi, spec.Window, opts...)
	default:
		return nil, fmt.Errorf("%w: %s is not an FIR response", ErrInvalidSpec, spec.Response)
	}
}

// Spec returns the specification the filter was designed from, with
// defaults applied.
func (f *Filter) Spec() Spec { return f.spec }

// SampleRate returns the sample rate the filter was designed for.
func (f *Filter) SampleRate() float64 { return f.sampleRate }

// IsFIR reports whether the filter is realized with FIR taps.
func (f *Filter) IsFIR() bool { return f.fir != nil }

// Sections returns a copy of the biquad cascade, or nil for FIR filters.
func (f *Filter) Sections() []biquad.Coefficients {
	if f.sections == nil {
		return nil
	}

	return append([]biquad.Coefficients(nil), f.sections...)
}

// Taps returns a copy of the FIR taps, or nil for IIR filters.
func (f *Filter) Taps() []float64 {
	if f.fir == nil {
		return nil
	}

	return f.fir.Taps()
}

// PadLength returns the odd-extension length ZeroPhase uses before
// clamping to the signal length.
func (f *Filter) PadLength() int {
	if f.IsFIR() {
		return fir.PadLength(f.fir.Len())
	}

	return biquad.PadLength(len(f.sections))
}

// Response returns the single-pass complex frequency response at freqHz.
func (f *Filter) Response(freqHz float64) complex128 {
	if f.IsFIR() {
		return f.fir.Response(freqHz, f.sampleRate)
	}

	return biquad.Response(f.sections, 1, freqHz, f.sampleRate)
}

// MagnitudeDB returns the single-pass magnitude response in dB at freqHz.
func (f *Filter) MagnitudeDB(freqHz float64) float64 {
	return 20 * math.Log10(cmplx.Abs(f.Response(freqHz)))
}

// ZeroPhaseDB returns the magnitude in dB that ZeroPhase applies at freqHz.
// Filtering forward and backward doubles the single-pass value.
func (f *Filter) ZeroPhaseDB(freqHz float64) float64 {
	if f.IsFIR() {
		return f.fir.ZeroPhaseMagnitudeDB(freqHz, f.sampleRate)
	}

	return biquad.ZeroPhaseMagnitudeDB(f.sections, 1, freqHz, f.sampleRate)
}

// ZeroPhase filters x forward and backward and returns a new slice of the
// same length with zero group delay.
func (f *Filter) ZeroPhase(x []float64) ([]float64, error) {
	if f.IsFIR() {
		return f.fir.ZeroPhase(x)
	}

	return biquad.FiltFilt(f.sections, 1, x), nil
}
