package conv

import (
	"fmt"
	"slices"
	"sync"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// Convolver convolves signals with one fixed kernel. Kernels longer than
// 64 samples are applied by FFT overlap-add with the kernel spectrum
// computed once; shorter kernels use direct convolution.
//
// A Convolver is safe for concurrent use.
type Convolver struct {
	kernel []float64

	// Overlap-add state; spectrum is nil in direct mode.
	blockSize int
	fftSize   int
	spectrum  []complex128

	mu   sync.Mutex
	plan *algofft.Plan[complex128]
}

type convolverConfig struct {
	blockSize int
}

// Option configures a Convolver.
type Option func(*convolverConfig)

// WithBlockSize selects overlap-add with input blocks of n samples,
// regardless of the kernel length.
func WithBlockSize(n int) Option {
	return func(cfg *convolverConfig) {
		cfg.blockSize = n
	}
}

// NewConvolver prepares kernel for repeated convolution. The kernel is
// copied.
func NewConvolver(kernel []float64, opts ...Option) (*Convolver, error) {
	if len(kernel) == 0 {
		return nil, ErrEmptyKernel
	}

	var cfg convolverConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	c := &Convolver{kernel: slices.Clone(kernel)}

	if cfg.blockSize <= 0 {
		if len(kernel) <= directThreshold {
			return c, nil
		}

		cfg.blockSize = max(nextPowerOf2(len(kernel)), 256)
	}

	c.blockSize = cfg.blockSize
	c.fftSize = nextPowerOf2(c.blockSize + len(kernel) - 1)

	plan, err := algofft.NewPlan64(c.fftSize)
	if err != nil {
		return nil, fmt.Errorf("conv: failed to create FFT plan: %w", err)
	}

	c.plan = plan
	c.spectrum = make([]complex128, c.fftSize)

	padded := make([]complex128, c.fftSize)
	for i, v := range kernel {
		padded[i] = complex(v, 0)
	}

	if err := plan.Forward(c.spectrum, padded); err != nil {
		return nil, fmt.Errorf("conv: failed to compute kernel FFT: %w", err)
	}

	return c, nil
}

// KernelLen returns the kernel length.
func (c *Convolver) KernelLen() int { return len(c.kernel) }

// FFTSize returns the overlap-add transform size, or 0 in direct mode.
func (c *Convolver) FFTSize() int { return c.fftSize }

// Convolve returns the full linear convolution of x with the kernel,
// len(x)+KernelLen()-1 samples.
func (c *Convolver) Convolve(x []float64) ([]float64, error) {
	if len(x) == 0 {
		return nil, ErrEmptyInput
	}

	dst := make([]float64, len(x)+len(c.kernel)-1)
	if err := c.accumulate(dst, x); err != nil {
		return nil, err
	}

	return dst, nil
}

// Filter runs the kernel over x from rest and returns the first len(x)
// output samples. An empty x yields an empty result.
func (c *Convolver) Filter(x []float64) ([]float64, error) {
	dst := make([]float64, len(x))
	if len(x) == 0 {
		return dst, nil
	}

	if err := c.accumulate(dst, x); err != nil {
		return nil, fmt.Errorf("conv: filter: %w", err)
	}

	return dst, nil
}

// accumulate adds the convolution of x with the kernel into dst, dropping
// output samples past len(dst).
func (c *Convolver) accumulate(dst, x []float64) error {
	if c.spectrum == nil {
		for i, v := range x[:min(len(x), len(dst))] {
			if v == 0 {
				continue
			}

			out := dst[i:min(i+len(c.kernel), len(dst))]
			for j := range out {
				out[j] += v * c.kernel[j]
			}
		}

		return nil
	}

	buf := make([]complex128, c.fftSize)

	c.mu.Lock()
	defer c.mu.Unlock()

	for start := 0; start < len(x) && start < len(dst); start += c.blockSize {
		block := x[start:min(start+c.blockSize, len(x))]

		clear(buf)
		for i, v := range block {
			buf[i] = complex(v, 0)
		}

		if err := c.plan.Forward(buf, buf); err != nil {
			return fmt.Errorf("conv: forward FFT failed: %w", err)
		}

		for i := range buf {
			buf[i] *= c.spectrum[i]
		}

		if err := c.plan.Inverse(buf, buf); err != nil {
			return fmt.Errorf("conv: inverse FFT failed: %w", err)
		}

		out := dst[start:min(start+len(block)+len(c.kernel)-1, len(dst))]
		for i := range out {
			out[i] += real(buf[i])
		}
	}

	return nil
}
