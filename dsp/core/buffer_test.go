package core

import "testing"

func TestEnsureLenReuse(t *testing.T) {
	buf := make([]float64, 4, 8)

	out := EnsureLen(buf, 6)
	if len(out) != 6 {
		t.Fatalf("len = %d, want 6", len(out))
	}

	if cap(out) != cap(buf) {
		t.Fatalf("cap = %d, want %d", cap(out), cap(buf))
	}
}

func TestZero(t *testing.T) {
	buf := []float64{1, 2, 3}
	Zero(buf)

	for i, v := range buf {
		if v != 0 {
			t.Fatalf("buf[%d] = %v, want 0", i, v)
		}
	}
}

func TestReverse(t *testing.T) {
	buf := []float64{1, 2, 3, 4, 5}
	Reverse(buf)

	want := []float64{5, 4, 3, 2, 1}
	for i := range want {
		if buf[i] != want[i] {
			t.Fatalf("buf = %v, want %v", buf, want)
		}
	}
}

func TestOddExtend(t *testing.T) {
	t.Parallel()

	t.Run("mirrors about end points", func(t *testing.T) {
		t.Parallel()

		got := OddExtend([]float64{1, 2, 4, 7}, 2)
		want := []float64{-2, 0, 1, 2, 4, 7, 10, 12}

		if len(got) != len(want) {
			t.Fatalf("len = %d, want %d", len(got), len(want))
		}

		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("got %v, want %v", got, want)
			}
		}
	})

	t.Run("clamps pad", func(t *testing.T) {
		t.Parallel()

		got := OddExtend([]float64{1, 3}, 10)
		if len(got) != 4 {
			t.Fatalf("len = %d, want 4", len(got))
		}
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()

		if got := OddExtend(nil, 3); got != nil {
			t.Fatalf("got %v, want nil", got)
		}
	})
}

func TestLinspace(t *testing.T) {
	got := Linspace(0, 1, 5)
	want := []float64{0, 0.25, 0.5, 0.75, 1}

	for i := range want {
		if !NearlyEqual(got[i], want[i], 1e-15) {
			t.Fatalf("got %v, want %v", got, want)
		}
	}

	if one := Linspace(3, 9, 1); len(one) != 1 || one[0] != 3 {
		t.Fatalf("Linspace(3, 9, 1) = %v, want [3]", one)
	}

	if none := Linspace(0, 1, 0); none != nil {
		t.Fatalf("Linspace(0, 1, 0) = %v, want nil", none)
	}
}
