// Package window provides the window functions used by windowed-sinc FIR
// design.
package window

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-vecmath"
)

// ErrUnknownType indicates a window name that does not map to a Type.
var ErrUnknownType = errors.New("window: unknown window type")

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeHamming
	TypeBlackman
	TypeKaiser
)

var typeNames = map[Type]string{
	TypeRectangular: "rectangular",
	TypeHann:        "hann",
	TypeHamming:     "hamming",
	TypeBlackman:    "blackman",
	TypeKaiser:      "kaiser",
}

var (
	hannCoeffs     = []float64{0.5, -0.5}
	hammingCoeffs  = []float64{0.54, -0.46}
	blackmanCoeffs = []float64{0.42, -0.5, 0.08}
)

// DefaultKaiserBeta is the Kaiser beta used when none is configured.
const DefaultKaiserBeta = 0.5

// String returns the lower-case window name.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}

	return fmt.Sprintf("window(%d)", int(t))
}

// ParseType maps a case-insensitive window name to its Type.
func ParseType(name string) (Type, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for t, s := range typeNames {
		if s == n {
			return t, nil
		}
	}

	if n == "rect" || n == "boxcar" {
		return TypeRectangular, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownType, name)
}

// Option configures window generation.
type Option func(*config)

type config struct {
	alpha    float64
	periodic bool
}

func defaultConfig() config {
	return config{alpha: DefaultKaiserBeta}
}

// WithAlpha configures the Kaiser beta.
func WithAlpha(v float64) Option {
	return func(c *config) {
		if v >= 0 {
			c.alpha = v
		}
	}
}

// WithPeriodic configures periodic form (FFT framing) instead of symmetric form.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// Generate returns window coefficients of the given length.
func Generate(t Type, length int, opts ...Option) []float64 {
	if length <= 0 {
		return nil
	}

	cfg := defaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	out := make([]float64, length)
	for i := range out {
		x := samplePosition(i, length, cfg.periodic)
		out[i] = evalWindow(t, x, cfg)
	}

	return out
}

// Apply multiplies buf in-place by the selected window.
func Apply(t Type, buf []float64, opts ...Option) {
	if len(buf) == 0 {
		return
	}

	coeffs := Generate(t, len(buf), opts...)
	vecmath.MulBlockInPlace(buf, coeffs)
}

// Kaiser returns Kaiser window coefficients.
func Kaiser(size int, beta float64, opts ...Option) ([]float64, error) {
	if size <= 0 {
		return nil, fmt.Errorf("window size must be > 0: %d", size)
	}

	if beta < 0 {
		return nil, fmt.Errorf("kaiser beta must be >= 0: %f", beta)
	}

	return Generate(TypeKaiser, size, append(opts, WithAlpha(beta))...), nil
}

func evalWindow(t Type, x float64, cfg config) float64 {
	x = math.Min(math.Max(x, 0), 1)

	switch t {
	case TypeHann:
		return cosineFromCoeffs(x, hannCoeffs)
	case TypeHamming:
		return cosineFromCoeffs(x, hammingCoeffs)
	case TypeBlackman:
		return cosineFromCoeffs(x, blackmanCoeffs)
	case TypeKaiser:
		return kaiserAt(x, cfg.alpha)
	default:
		return 1
	}
}

func cosineFromCoeffs(x float64, coeffs []float64) float64 {
	phase := 2 * math.Pi * x

	sum := 0.0
	for k, c := range coeffs {
		sum += c * math.Cos(float64(k)*phase)
	}

	return sum
}

func samplePosition(n, size int, periodic bool) float64 {
	if size <= 1 {
		return 0.5
	}

	den := float64(size - 1)
	if periodic {
		den = float64(size)
	}

	return float64(n) / den
}

func kaiserAt(x, beta float64) float64 {
	if beta <= 0 {
		return 1
	}

	r := 2*x - 1
	term := math.Sqrt(math.Max(0, 1-r*r))

	return besselI0(beta*term) / besselI0(beta)
}

func besselI0(x float64) float64 {
	ax := math.Abs(x)
	if ax < 3.75 {
		y := x / 3.75
		y *= y

		return 1.0 + y*(3.5156229+y*(3.0899424+y*(1.2067492+y*(0.2659732+y*(0.0360768+y*0.0045813)))))
	}

	y := 3.75 / ax

	return (math.Exp(ax) / math.Sqrt(ax)) *
		(0.39894228 + y*(0.01328592+y*(0.00225319+y*(-0.00157565+y*(0.00916281+y*(-0.02057706+y*(0.02635537+y*(-0.01647633+y*0.00392377))))))))
}
