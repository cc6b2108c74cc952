package core

import (
	"math"
	"testing"
)

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1.0, 1.0+1e-13, 1e-12) {
		t.Fatal("expected values to be nearly equal")
	}
	if NearlyEqual(1.0, 1.1, 1e-3) {
		t.Fatal("expected values to differ")
	}
}

func TestIsFinite(t *testing.T) {
	tests := []struct {
		name string
		v    float64
		want bool
	}{
		{name: "zero", v: 0, want: true},
		{name: "nan", v: math.NaN(), want: false},
		{name: "inf", v: math.Inf(1), want: false},
		{name: "neg inf", v: math.Inf(-1), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsFinite(tt.v); got != tt.want {
				t.Fatalf("IsFinite(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}

	if AllFinite([]float64{1, math.NaN()}) {
		t.Fatal("AllFinite accepted NaN")
	}
}

func TestIsIntegral(t *testing.T) {
	if !IsIntegral(4) {
		t.Fatal("4 should be integral")
	}
	if IsIntegral(4.5) {
		t.Fatal("4.5 should not be integral")
	}
	if IsIntegral(math.Inf(1)) {
		t.Fatal("Inf should not be integral")
	}
}

func TestDBPowerToLinear(t *testing.T) {
	// 3 dB power ~ 2x linear power
	p := DBPowerToLinear(3)
	if !NearlyEqual(p, 2.0, 0.01) {
		t.Fatalf("DBPowerToLinear(3) = %v, want ~2.0", p)
	}
}
