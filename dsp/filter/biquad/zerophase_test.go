package biquad

import (
	"math"
	"testing"
)

// lowpassCoeffs is a stable, unity-DC second-order lowpass.
func lowpassCoeffs() []Coefficients {
	c := Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}
	g := c.DCGain()
	c.B0 /= g
	c.B1 /= g
	c.B2 /= g

	return []Coefficients{c}
}

func TestPadLength(t *testing.T) {
	if got := PadLength(4); got != 27 {
		t.Fatalf("PadLength(4) = %d, want 27", got)
	}
}

func TestFiltFilt_PreservesLength(t *testing.T) {
	for _, n := range []int{0, 1, 2, 5, 100} {
		x := make([]float64, n)
		if got := FiltFilt(lowpassCoeffs(), 1, x); len(got) != n {
			t.Fatalf("n=%d: len = %d", n, len(got))
		}
	}
}

func TestFiltFilt_ZeroIn(t *testing.T) {
	y := FiltFilt(lowpassCoeffs(), 1, make([]float64, 64))
	for i, v := range y {
		if v != 0 {
			t.Fatalf("y[%d] = %v, want 0", i, v)
		}
	}
}

func TestFiltFilt_ConstantPassesUnityDC(t *testing.T) {
	x := make([]float64, 50)
	for i := range x {
		x[i] = -3.5
	}

	y := FiltFilt(lowpassCoeffs(), 1, x)
	for i, v := range y {
		if !almostEqual(v, -3.5, 1e-9) {
			t.Fatalf("y[%d] = %v, want -3.5", i, v)
		}
	}
}

func TestFiltFilt_DoesNotModifyInput(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6}
	orig := append([]float64(nil), x...)

	FiltFilt(lowpassCoeffs(), 1, x)

	for i := range x {
		if x[i] != orig[i] {
			t.Fatalf("input modified at %d", i)
		}
	}
}

func TestFiltFilt_ZeroPhase(t *testing.T) {
	// A slow sine should come out aligned with the input: the peak of the
	// cross-correlation sits at lag zero.
	const n = 512
	x := make([]float64, n)
	for i := range x {
		x[i] = math.Sin(2 * math.Pi * float64(i) / 64)
	}

	y := FiltFilt(lowpassCoeffs(), 1, x)

	corr := func(lag int) float64 {
		var s float64
		for i := 64; i < n-64; i++ {
			s += x[i] * y[i+lag]
		}
		return s
	}

	c0 := corr(0)
	for _, lag := range []int{-2, -1, 1, 2} {
		if corr(lag) >= c0 {
			t.Fatalf("lag %d correlates better than lag 0", lag)
		}
	}
}

func TestChain_FiltFilt_LeavesStateUntouched(t *testing.T) {
	c := NewChain(lowpassCoeffs())
	c.ProcessSample(1)
	saved := c.State()

	c.FiltFilt([]float64{1, 2, 3, 4})

	if c.State()[0] != saved[0] {
		t.Fatal("FiltFilt modified chain state")
	}
}
