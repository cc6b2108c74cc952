// Package biquad provides biquad (second-order IIR) filter runtime primitives.
//
// A [Section] implements Direct Form II Transposed processing for a single
// second-order section defined by [Coefficients]. Multiple sections can be
// cascaded via [Chain] for higher-order filters (Butterworth, Chebyshev, etc.).
//
// [FiltFilt] runs a cascade forward and then backward over a whole signal so
// the result has zero phase shift. The ends are padded by odd reflection and
// every section starts from the steady state of the first padded sample.
//
// This package provides the processing runtime only. Coefficient design
// lives in dsp/filter/design.
package biquad
