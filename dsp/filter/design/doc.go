// Package design provides digital filter coefficient designers.
//
// The low-level designers return biquad coefficients consumable by
// dsp/filter/biquad (RBJ [Lowpass], [Highpass], [Notch]; Butterworth and
// Chebyshev Type I cascades) or windowed-sinc FIR taps ([FIRLowpass] and
// friends).
//
// [Spec] describes a filter independently of the sample rate, and
// [ParseParams] builds one from a name/value list:
//
//	spec, err := design.ParseParams([]any{"lowpassiir", "FilterOrder", 4.0, "HalfPowerFrequency", 30.0})
//	f, err := design.Design(spec, 1000)
//	y, err := f.ZeroPhase(x)
package design
