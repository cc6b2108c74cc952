// Package trend fits and removes polynomial and piecewise-polynomial trends
// from multichannel series.
//
// All channels of a matrix share one design matrix, so the fit is a single
// least-squares solve with one right-hand side per channel.
//
// By default the pieces between breakpoints join continuously: the basis is
// a global polynomial plus truncated powers (t-b)^k for k = 1..degree that
// switch on at each breakpoint b. [WithDiscontinuous] fits every piece on its
// own.
package trend

import (
	"errors"
	"fmt"
	"slices"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-condition/dsp/core"
)

// Errors returned by Remove and Fit.
var (
	ErrInvalidDegree     = errors.New("trend: invalid polynomial degree")
	ErrInvalidBreakpoint = errors.New("trend: invalid breakpoint")
)

// rankTolerance is the relative singular value below which basis
// directions are dropped.
const rankTolerance = 1e-12

// Common degrees.
const (
	Constant = 0
	Linear   = 1
)

// Option configures trend fitting.
type Option func(*config)

type config struct {
	breakpoints   []int
	discontinuous bool
}

// WithBreakpoints splits the series at the given 0-based sample indices.
// Each breakpoint starts a new piece and must lie in (0, rows).
func WithBreakpoints(bp ...int) Option {
	return func(c *config) {
		c.breakpoints = append(c.breakpoints, bp...)
	}
}

// WithDiscontinuous fits every piece independently instead of joining
// neighboring pieces continuously.
func WithDiscontinuous() Option {
	return func(c *config) {
		c.discontinuous = true
	}
}

// finalized returns the sorted, de-duplicated breakpoints for a series of
// the given length.
func (c config) finalized(rows int) ([]int, error) {
	bps := slices.Clone(c.breakpoints)
	slices.Sort(bps)
	bps = slices.Compact(bps)

	for _, b := range bps {
		if b <= 0 || b >= rows {
			return nil, fmt.Errorf("%w: %d outside (0, %d)", ErrInvalidBreakpoint, b, rows)
		}
	}

	return bps, nil
}

// Remove returns x minus its fitted trend. x is not modified.
func Remove(x *core.Matrix, degree int, opts ...Option) (*core.Matrix, error) {
	fit, err := Fit(x, degree, opts...)
	if err != nil {
		return nil, err
	}

	out := x.Clone()
	data := out.RawData()
	for i, v := range fit.RawData() {
		data[i] -= v
	}

	return out, nil
}

// Fit returns the least-squares trend of every column of x.
func Fit(x *core.Matrix, degree int, opts ...Option) (*core.Matrix, error) {
	if degree < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDegree, degree)
	}

	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	rows, cols := x.Dims()

	bps, err := cfg.finalized(rows)
	if err != nil {
		return nil, err
	}

	fit := core.NewMatrix(rows, cols)
	if rows == 0 || cols == 0 {
		return fit, nil
	}

	if !cfg.discontinuous {
		return fit, solveInto(fit, x, 0, rows, continuousBasis(rows, degree, bps))
	}

	edges := append(append([]int{0}, bps...), rows)
	for i := range len(edges) - 1 {
		lo, hi := edges[i], edges[i+1]
		if err := solveInto(fit, x, lo, hi, polyBasis(hi-lo, degree)); err != nil {
			return nil, err
		}
	}

	return fit, nil
}

// solveInto fits rows [lo, hi) of x against basis and writes the fitted
// values into the same rows of fit.
func solveInto(fit, x *core.Matrix, lo, hi int, basis *mat.Dense) error {
	cols := x.Cols()

	rhs := mat.NewDense(hi-lo, cols, slices.Clone(x.RawData()[lo*cols:hi*cols]))

	// The SVD gives the minimum-norm solution, so short pieces and
	// breakpoints at the last sample leave the system rank deficient
	// without failing.
	var svd mat.SVD
	if !svd.Factorize(basis, mat.SVDThin) {
		return fmt.Errorf("trend: least squares: SVD did not converge for %d samples", hi-lo)
	}

	var coef mat.Dense
	svd.SolveTo(&coef, rhs, svd.Rank(rankTolerance))

	var trend mat.Dense
	trend.Mul(basis, &coef)

	dst := fit.RawData()[lo*cols : hi*cols]
	for i := range hi - lo {
		mat.Row(dst[i*cols:(i+1)*cols], i, &trend)
	}

	return nil
}

// abscissa maps sample index i of n to [-1, 1].
func abscissa(i, n int) float64 {
	if n <= 1 {
		return 0
	}

	return 2*float64(i)/float64(n-1) - 1
}

// polyBasis returns the n x (degree+1) Vandermonde matrix on [-1, 1].
func polyBasis(n, degree int) *mat.Dense {
	a := mat.NewDense(n, degree+1, nil)
	for i := range n {
		t := abscissa(i, n)
		p := 1.0
		for k := 0; k <= degree; k++ {
			a.Set(i, k, p)
			p *= t
		}
	}

	return a
}

// continuousBasis extends the global polynomial basis with truncated powers
// (t - t_b)^k, k = 1..degree, for every breakpoint b.
func continuousBasis(n, degree int, bps []int) *mat.Dense {
	if len(bps) == 0 || degree == 0 {
		return polyBasis(n, degree)
	}

	width := degree + 1 + len(bps)*degree
	a := mat.NewDense(n, width, nil)
	a.Slice(0, n, 0, degree+1).(*mat.Dense).Copy(polyBasis(n, degree))

	for j, b := range bps {
		tb := abscissa(b, n)
		col := degree + 1 + j*degree

		for i := b; i < n; i++ {
			d := abscissa(i, n) - tb
			p := d
			for k := range degree {
				a.Set(i, col+k, p)
				p *= d
			}
		}
	}

	return a
}
