package testutil

import (
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/cwbudde/algo-condition/dsp/core"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or any
// element pair differs by more than eps.
func RequireSliceNearlyEqual(t testing.TB, got, want []float64, eps float64) {
	t.Helper()

	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, eps), cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("slices differ beyond %g (-want +got):\n%s", eps, diff)
	}
}

// RequireMatrixNearlyEqual fails t if got and want differ in shape or any
// element pair differs by more than eps.
func RequireMatrixNearlyEqual(t testing.TB, got, want *core.Matrix, eps float64) {
	t.Helper()

	gr, gc := got.Dims()
	wr, wc := want.Dims()
	if gr != wr || gc != wc {
		t.Fatalf("shape mismatch: got %dx%d, want %dx%d", gr, gc, wr, wc)
	}

	RequireSliceNearlyEqual(t, got.RawData(), want.RawData(), eps)
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t testing.TB, data []float64) {
	t.Helper()

	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// MaxAbsDiff returns the largest absolute element difference of a and b.
func MaxAbsDiff(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("testutil: length mismatch: %d vs %d", len(a), len(b))
	}

	var worst float64
	for i := range a {
		worst = math.Max(worst, math.Abs(a[i]-b[i]))
	}
	return worst, nil
}
