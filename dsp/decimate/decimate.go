package decimate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cwbudde/algo-condition/dsp/filter/biquad"
	"github.com/cwbudde/algo-condition/dsp/filter/design"
	"github.com/cwbudde/algo-condition/dsp/filter/fir"
	"github.com/cwbudde/algo-condition/dsp/window"
)

var (
	// ErrInvalidFactor indicates a decimation factor below 1.
	ErrInvalidFactor = errors.New("decimate: invalid factor")
	// ErrFilterDesign indicates the anti-alias filter could not be designed.
	ErrFilterDesign = errors.New("decimate: anti-alias filter design failed")
)

// FilterType selects the anti-alias filter.
type FilterType int

const (
	// FilterIIR uses a Chebyshev Type I lowpass.
	FilterIIR FilterType = iota
	// FilterFIR uses a Hamming windowed-sinc lowpass.
	FilterFIR
)

func (f FilterType) String() string {
	switch f {
	case FilterIIR:
		return "iir"
	case FilterFIR:
		return "fir"
	default:
		return fmt.Sprintf("filter(%d)", int(f))
	}
}

// ParseFilterType maps "iir" or "fir" (case-insensitive) to a FilterType.
func ParseFilterType(name string) (FilterType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "iir", "":
		return FilterIIR, nil
	case "fir":
		return FilterFIR, nil
	default:
		return 0, fmt.Errorf("decimate: unknown filter type %q", name)
	}
}

// Default anti-alias filter parameters.
const (
	DefaultIIROrder = 8
	DefaultFIROrder = 30
	DefaultRippleDB = 0.05
)

// iirCutoffScale places the IIR passband edge below nyquist/factor.
const iirCutoffScale = 0.8

type config struct {
	filter   FilterType
	order    int
	rippleDB float64
}

// Option configures the decimator.
type Option func(*config)

// WithFilter selects the anti-alias filter type.
func WithFilter(f FilterType) Option {
	return func(cfg *config) {
		cfg.filter = f
	}
}

// WithOrder overrides the anti-alias filter order.
func WithOrder(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.order = n
		}
	}
}

// WithRippleDB overrides the Chebyshev passband ripple of the IIR filter.
func WithRippleDB(db float64) Option {
	return func(cfg *config) {
		if db > 0 {
			cfg.rippleDB = db
		}
	}
}

func defaultConfig() config {
	return config{filter: FilterIIR}
}

func (c config) finalized() config {
	if c.order <= 0 {
		if c.filter == FilterFIR {
			c.order = DefaultFIROrder
		} else {
			c.order = DefaultIIROrder
		}
	}

	if c.rippleDB <= 0 {
		c.rippleDB = DefaultRippleDB
	}

	return c
}

// Decimator holds a designed anti-alias filter for one factor. It keeps no
// per-signal state, so Process is safe for concurrent use.
type Decimator struct {
	factor   int
	filter   FilterType
	order    int
	sections []biquad.Coefficients
	fir      *fir.Filter
}

// New designs the anti-alias filter for factor.
//
// When the IIR design at the requested order is numerically unstable, which
// happens for large factors, the order is lowered until it is stable.
func New(factor int, opts ...Option) (*Decimator, error) {
	if factor < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFactor, factor)
	}

	cfg := defaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	cfg = cfg.finalized()

	d := &Decimator{factor: factor, filter: cfg.filter, order: cfg.order}
	if factor == 1 {
		return d, nil
	}

	if cfg.filter == FilterFIR {
		taps, err := design.FIRLowpass(cfg.order, 0.5/float64(factor), window.TypeHamming)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFilterDesign, err)
		}

		if d.fir, err = fir.New(taps); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFilterDesign, err)
		}

		return d, nil
	}

	cutoff := iirCutoffScale * 0.5 / float64(factor)
	for order := cfg.order; order >= 1; order-- {
		sections := design.Chebyshev1LP(cutoff, order, cfg.rippleDB, 1)
		if len(sections) > 0 && biquad.Stable(sections) {
			d.order = order
			d.sections = sections

			return d, nil
		}
	}

	return nil, fmt.Errorf("%w: no stable Chebyshev design for factor %d", ErrFilterDesign, factor)
}

// Factor returns the decimation factor.
func (d *Decimator) Factor() int { return d.factor }

// FilterType returns the anti-alias filter type.
func (d *Decimator) FilterType() FilterType { return d.filter }

// Order returns the order of the designed anti-alias filter.
func (d *Decimator) Order() int { return d.order }

// Sections returns a copy of the IIR anti-alias cascade, or nil.
func (d *Decimator) Sections() []biquad.Coefficients {
	if d.sections == nil {
		return nil
	}

	return append([]biquad.Coefficients(nil), d.sections...)
}

// Taps returns a copy of the FIR anti-alias taps, or nil.
func (d *Decimator) Taps() []float64 {
	if d.fir == nil {
		return nil
	}

	return d.fir.Taps()
}

// OutputLen returns the number of samples Process returns for n input
// samples: ceil(n / factor).
func (d *Decimator) OutputLen(n int) int {
	return OutputLen(n, d.factor)
}

// Process filters x and keeps every factor-th sample, ending on the last
// input sample. x is not modified.
func (d *Decimator) Process(x []float64) ([]float64, error) {
	if d.factor == 1 || len(x) == 0 {
		return append([]float64{}, x...), nil
	}

	var (
		filtered []float64
		err      error
	)

	if d.fir != nil {
		filtered, err = d.fir.ZeroPhase(x)
		if err != nil {
			return nil, fmt.Errorf("decimate: %w", err)
		}
	} else {
		filtered = biquad.FiltFilt(d.sections, 1, x)
	}

	return pick(filtered, d.factor), nil
}

// Decimate is a convenience wrapper around New and Process.
func Decimate(x []float64, factor int, opts ...Option) ([]float64, error) {
	d, err := New(factor, opts...)
	if err != nil {
		return nil, err
	}

	return d.Process(x)
}

// OutputLen returns ceil(n / factor) for factor >= 1.
func OutputLen(n, factor int) int {
	if n <= 0 || factor < 1 {
		return 0
	}

	return (n + factor - 1) / factor
}

// pick keeps every factor-th sample of x such that the last one is kept.
func pick(x []float64, factor int) []float64 {
	out := make([]float64, OutputLen(len(x), factor))
	start := factor - (factor*len(out) - len(x)) - 1

	for i := range out {
		out[i] = x[start+i*factor]
	}

	return out
}
