package biquad

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestCoefficientsPoles_SecondOrder(t *testing.T) {
	// 1 - 1.0*z^-1 + 0.25*z^-2 has a double pole at 0.5.
	c := Coefficients{B0: 1, A1: -1, A2: 0.25}
	for _, p := range c.Poles() {
		if cmplx.Abs(p-0.5) > 1e-9 {
			t.Fatalf("pole = %v, want 0.5", p)
		}
	}
}

func TestCoefficientsZeros_FirstOrder(t *testing.T) {
	c := Coefficients{B0: 0, B1: 1, B2: 0.5}
	z := c.Zeros()
	if cmplx.Abs(z[0]+0.5) > 1e-12 {
		t.Fatalf("zero = %v, want -0.5", z[0])
	}
}

func TestStable(t *testing.T) {
	tests := []struct {
		name string
		c    Coefficients
		want bool
	}{
		{name: "passthrough", c: Coefficients{B0: 1}, want: true},
		{name: "inside", c: Coefficients{B0: 1, A1: -0.2, A2: 0.04}, want: true},
		{name: "complex inside", c: Coefficients{B0: 1, A1: -1.6, A2: 0.81}, want: true},
		{name: "on circle", c: Coefficients{B0: 1, A1: -1}, want: false},
		{name: "outside", c: Coefficients{B0: 1, A1: -2.5, A2: 1.5}, want: false},
		{name: "nan", c: Coefficients{B0: math.NaN()}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Stable(); got != tt.want {
				t.Fatalf("Stable() = %v, want %v (poles %v)", got, tt.want, tt.c.Poles())
			}
		})
	}

	if Stable([]Coefficients{{B0: 1}, {B0: 1, A1: -1}}) {
		t.Fatal("cascade with an unstable section reported stable")
	}
}
