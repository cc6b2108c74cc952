// Package decimate reduces the sample rate of a fully materialized series
// by an integer factor with anti-alias filtering.
//
// Filter modes:
//   - FilterIIR: Chebyshev Type I lowpass, order 8, 0.05 dB ripple,
//     passband edge at 0.8 * nyquist / factor (default)
//   - FilterFIR: order-30 Hamming windowed-sinc lowpass, cutoff at
//     nyquist / factor
//
// Both filters have unity gain at DC and are applied forward and backward,
// so the kept samples carry no phase shift. Every factor-th filtered sample
// is kept, aligned so the last input sample is always part of the output.
//
// Common workflows:
//   - Decimate(x, factor, opts...) for a single series
//   - New(factor, opts...) to design once and Process many channels
package decimate
