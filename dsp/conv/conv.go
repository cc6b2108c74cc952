package conv

import "errors"

// Errors returned by convolution functions.
var (
	ErrEmptyInput  = errors.New("conv: empty input")
	ErrEmptyKernel = errors.New("conv: empty kernel")
)

// directThreshold is the kernel length at or below which Convolve uses
// direct convolution.
const directThreshold = 64

// Direct performs direct time-domain linear convolution of a and b.
// Returns a new slice of length len(a) + len(b) - 1.
func Direct(a, b []float64) ([]float64, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}

	if len(b) == 0 {
		return nil, ErrEmptyKernel
	}

	result := make([]float64, len(a)+len(b)-1)
	DirectTo(result, a, b)

	return result, nil
}

// DirectTo performs direct convolution, writing to a pre-allocated destination.
// dst must have length len(a) + len(b) - 1.
func DirectTo(dst, a, b []float64) {
	for i := range dst {
		dst[i] = 0
	}

	for i, x := range a {
		if x == 0 {
			continue
		}

		out := dst[i : i+len(b)]
		for j, h := range b {
			out[j] += x * h
		}
	}
}

// Convolve performs linear convolution with automatic algorithm selection.
// The shorter sequence is used as the kernel; kernels up to 64 samples use
// direct convolution, longer ones overlap-add.
func Convolve(a, b []float64) ([]float64, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}

	if len(b) == 0 {
		return nil, ErrEmptyKernel
	}

	if len(b) > len(a) {
		a, b = b, a
	}

	c, err := NewConvolver(b)
	if err != nil {
		return nil, err
	}

	return c.Convolve(a)
}

// Filter runs the FIR kernel over x from rest and returns the first len(x)
// output samples. An empty x yields an empty result.
func Filter(kernel, x []float64) ([]float64, error) {
	c, err := NewConvolver(kernel)
	if err != nil {
		return nil, err
	}

	return c.Filter(x)
}

// nextPowerOf2 returns the next power of 2 >= n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p *= 2
	}

	return p
}
