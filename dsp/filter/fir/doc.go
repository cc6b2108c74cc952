// Package fir applies FIR taps to whole signals.
//
// A [Filter] prepares its taps once for convolution through dsp/conv, so
// long windowed-sinc designs run by FFT overlap-add and one filter can be
// shared by every channel. [Filter.Apply] filters causally from rest and
// [Filter.ZeroPhase] runs the taps forward and backward for zero group
// delay.
//
// Coefficient design lives in dsp/filter/design.
package fir
