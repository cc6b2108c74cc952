package trend

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-condition/dsp/core"
)

func series(n int, f func(i int) float64) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = f(i)
	}

	return x
}

func column(t *testing.T, x ...[]float64) *core.Matrix {
	t.Helper()

	m, err := core.FromColumns(x...)
	require.NoError(t, err)

	return m
}

func maxAbs(x []float64) float64 {
	var m float64
	for _, v := range x {
		m = math.Max(m, math.Abs(v))
	}

	return m
}

func TestRemovePolynomials(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		degree int
		f      func(i int) float64
	}{
		{name: "constant", degree: Constant, f: func(int) float64 { return 7.5 }},
		{name: "linear", degree: Linear, f: func(i int) float64 { return 2 - 0.3*float64(i) }},
		{name: "quadratic", degree: 2, f: func(i int) float64 { x := float64(i); return 1 + 0.1*x - 0.002*x*x }},
		{name: "cubic", degree: 3, f: func(i int) float64 { x := float64(i) / 100; return x*x*x - x }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			x := column(t, series(200, tt.f))
			out, err := Remove(x, tt.degree)
			require.NoError(t, err)

			assert.Less(t, maxAbs(out.Column(0)), 1e-9)
		})
	}
}

func TestRemoveConstantSubtractsMean(t *testing.T) {
	t.Parallel()

	x := column(t, []float64{1, 2, 3, 10})
	out, err := Remove(x, Constant)
	require.NoError(t, err)

	assert.InDeltaSlice(t, []float64{-3, -2, -1, 6}, out.Column(0), 1e-12)
}

func TestRemoveLinearLeavesSineResidual(t *testing.T) {
	t.Parallel()

	sine := series(500, func(i int) float64 { return math.Sin(2 * math.Pi * float64(i) / 50) })
	ramp := series(500, func(i int) float64 { return sine[i] + 0.01*float64(i) + 4 })

	out, err := Remove(column(t, ramp), Linear)
	require.NoError(t, err)

	got := out.Column(0)
	for i := range got {
		require.InDelta(t, sine[i], got[i], 0.2, "sample %d", i)
	}
}

func TestRemoveColumnsIndependent(t *testing.T) {
	t.Parallel()

	a := series(64, func(i int) float64 { return float64(i) })
	b := series(64, func(i int) float64 { return -3 })

	out, err := Remove(column(t, a, b), Linear)
	require.NoError(t, err)

	rows, cols := out.Dims()
	assert.Equal(t, 64, rows)
	assert.Equal(t, 2, cols)
	assert.Less(t, maxAbs(out.Column(0)), 1e-9)
	assert.Less(t, maxAbs(out.Column(1)), 1e-9)
}

func TestRemoveContinuousBreakpoint(t *testing.T) {
	t.Parallel()

	// A "V" shape: linear down to sample 40, then linear up.
	v := series(100, func(i int) float64 { return math.Abs(float64(i) - 40) })
	x := column(t, v)

	plain, err := Remove(x, Linear)
	require.NoError(t, err)
	assert.Greater(t, maxAbs(plain.Column(0)), 1.0)

	out, err := Remove(x, Linear, WithBreakpoints(40))
	require.NoError(t, err)
	assert.Less(t, maxAbs(out.Column(0)), 1e-9)
}

func TestRemoveDiscontinuousBreakpoints(t *testing.T) {
	t.Parallel()

	// Steps at samples 30 and 70.
	step := series(100, func(i int) float64 {
		switch {
		case i < 30:
			return 1
		case i < 70:
			return 5
		default:
			return -2
		}
	})
	x := column(t, step)

	out, err := Remove(x, Constant, WithBreakpoints(70, 30), WithDiscontinuous())
	require.NoError(t, err)
	assert.Less(t, maxAbs(out.Column(0)), 1e-12)

	// Continuous constant pieces collapse to one global constant.
	cont, err := Remove(x, Constant, WithBreakpoints(30, 70))
	require.NoError(t, err)
	assert.Greater(t, maxAbs(cont.Column(0)), 1.0)
}

func TestRemoveShortSeries(t *testing.T) {
	t.Parallel()

	for _, n := range []int{1, 2, 3} {
		x := column(t, series(n, func(i int) float64 { return float64(i*i) + 1 }))

		out, err := Remove(x, 5)
		require.NoError(t, err, "n=%d", n)
		assert.Less(t, maxAbs(out.Column(0)), 1e-9, "n=%d", n)
	}

	// A breakpoint on the last sample leaves a one-sample piece.
	x := column(t, series(10, func(i int) float64 { return float64(i) }))
	out, err := Remove(x, 2, WithBreakpoints(9))
	require.NoError(t, err)
	assert.Less(t, maxAbs(out.Column(0)), 1e-9)
}

func TestRemoveEmpty(t *testing.T) {
	t.Parallel()

	out, err := Remove(core.NewMatrix(0, 3), Linear)
	require.NoError(t, err)

	rows, cols := out.Dims()
	assert.Equal(t, 0, rows)
	assert.Equal(t, 3, cols)
}

func TestRemoveDoesNotModifyInput(t *testing.T) {
	t.Parallel()

	x := column(t, []float64{1, 2, 4, 8})
	before := x.Clone()

	_, err := Remove(x, Linear)
	require.NoError(t, err)
	assert.True(t, x.Equal(before))
}

func TestFitErrors(t *testing.T) {
	t.Parallel()

	x := column(t, make([]float64, 10))

	_, err := Fit(x, -1)
	require.ErrorIs(t, err, ErrInvalidDegree)

	for _, bp := range []int{0, 10, -3, 11} {
		_, err = Remove(x, Linear, WithBreakpoints(bp))
		require.ErrorIs(t, err, ErrInvalidBreakpoint, "bp=%d", bp)
	}
}

func TestFitPlusResidualIsInput(t *testing.T) {
	t.Parallel()

	x := column(t, series(50, func(i int) float64 { return math.Cos(float64(i) / 3) }))

	fit, err := Fit(x, 2, WithBreakpoints(20))
	require.NoError(t, err)

	res, err := Remove(x, 2, WithBreakpoints(20))
	require.NoError(t, err)

	for i := range 50 {
		assert.InDelta(t, x.At(i, 0), fit.At(i, 0)+res.At(i, 0), 1e-12)
	}
}
