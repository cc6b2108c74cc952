// Package conv provides linear convolution of real sequences.
//
// Two strategies are available:
//
//   - Direct: O(N*M) time-domain convolution, best for short kernels
//   - Overlap-add (OLA): FFT-based block convolution for long kernels
//
// [Convolve] picks between them by kernel length. [Filter] returns the
// causal, input-length part of the convolution, which is what an FIR
// filter produces when run over a block from rest.
//
//	y, err := conv.Filter(taps, x) // len(y) == len(x)
//
// For repeated convolution with the same kernel, for example one filter
// applied to every channel, prepare it once with [NewConvolver]:
//
//	c, err := conv.NewConvolver(taps)
//	y, err := c.Filter(x)
package conv
