package biquad

import "testing"

// twoSectionCoeffs returns two biquad sections for a 4th-order-like cascade.
func twoSectionCoeffs() []Coefficients {
	return []Coefficients{
		{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04},
		{B0: 0.1, B1: 0.2, B2: 0.1, A1: -0.5, A2: 0.1},
	}
}

func TestNewChain(t *testing.T) {
	coeffs := twoSectionCoeffs()

	c := NewChain(coeffs)
	if c.NumSections() != 2 {
		t.Fatalf("NumSections: got %d, want 2", c.NumSections())
	}

	if c.Order() != 4 {
		t.Fatalf("Order: got %d, want 4", c.Order())
	}

	if c.Gain() != 1 {
		t.Fatalf("default gain: got %v, want 1", c.Gain())
	}

	got := c.Coefficients()
	for i := range coeffs {
		if got[i] != coeffs[i] {
			t.Fatalf("Coefficients()[%d] = %v, want %v", i, got[i], coeffs[i])
		}
	}
}

func TestChain_ProcessSample_MatchesManualCascade(t *testing.T) {
	coeffs := twoSectionCoeffs()

	section1 := NewSection(coeffs[0])
	section2 := NewSection(coeffs[1])

	chain := NewChain(coeffs, WithGain(0.5))

	input := []float64{1, 0.5, -0.3, 0.7, 0, -1, 0.2, 0.8}
	for i, x := range input {
		ref := section2.ProcessSample(section1.ProcessSample(0.5 * x))

		got := chain.ProcessSample(x)
		if !almostEqual(got, ref, eps) {
			t.Errorf("sample %d: chain=%.15f, ref=%.15f", i, got, ref)
		}
	}
}

func TestChain_ProcessBlock_MatchesSample(t *testing.T) {
	coeffs := twoSectionCoeffs()
	input := []float64{1, 0.5, -0.3, 0.7, 0, -1, 0.2, 0.8}

	c1 := NewChain(coeffs, WithGain(2))
	ref := make([]float64, len(input))
	for i, x := range input {
		ref[i] = c1.ProcessSample(x)
	}

	c2 := NewChain(coeffs, WithGain(2))
	block := append([]float64(nil), input...)
	c2.ProcessBlock(block)

	for i := range block {
		if !almostEqual(block[i], ref[i], eps) {
			t.Errorf("sample %d: block=%.15f, sample=%.15f", i, block[i], ref[i])
		}
	}
}

func TestChain_Reset(t *testing.T) {
	c := NewChain(twoSectionCoeffs())
	c.ProcessSample(1)
	c.Reset()

	for i, st := range c.State() {
		if st != [2]float64{} {
			t.Fatalf("section %d state = %v after Reset", i, st)
		}
	}
}

func TestChain_SettleTo(t *testing.T) {
	c := NewChain(twoSectionCoeffs(), WithGain(0.5))
	c.SettleTo(3)

	want := 3 * 0.5 * twoSectionCoeffs()[0].DCGain() * twoSectionCoeffs()[1].DCGain()
	for i := range 32 {
		if y := c.ProcessSample(3); !almostEqual(y, want, 1e-12) {
			t.Fatalf("sample %d: got %v, want %v", i, y, want)
		}
	}
}
