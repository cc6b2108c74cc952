package design

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/cwbudde/algo-condition/dsp/window"
)

func TestParseParams(t *testing.T) {
	tests := []struct {
		name   string
		params []any
		want   Spec
	}{
		{
			name:   "butterworth lowpass",
			params: []any{"lowpassiir", "FilterOrder", 4.0, "HalfPowerFrequency", 30.0},
			want: Spec{
				Response: ResponseLowpassIIR, Order: 4, Cutoff: 30,
				Method: MethodButter, Window: window.TypeHamming, KaiserBeta: window.DefaultKaiserBeta,
			},
		},
		{
			name: "chebyshev highpass, mixed case names",
			params: []any{
				"HighpassIIR", "filterorder", 6, "PASSBANDFREQUENCY", 2.5,
				"DesignMethod", "Cheby1", "PassbandRipple", 0.5,
			},
			want: Spec{
				Response: ResponseHighpassIIR, Order: 6, Cutoff: 2.5,
				Method: MethodCheby1, RippleDB: 0.5, Window: window.TypeHamming, KaiserBeta: window.DefaultKaiserBeta,
			},
		},
		{
			name: "kaiser bandpass fir",
			params: []any{
				"bandpassfir", "FilterOrder", json.Number("40"),
				"CutoffFrequency1", 10.0, "CutoffFrequency2", 20.0,
				"Window", "kaiser", "KaiserBeta", 5.0,
			},
			want: Spec{
				Response: ResponseBandpassFIR, Order: 40, Cutoff: 10, Cutoff2: 20,
				Method: MethodButter, Window: window.TypeKaiser, KaiserBeta: 5,
			},
		},
		{
			name:   "notch",
			params: []any{"notch", "CenterFrequency", 50.0, "QualityFactor", 35.0},
			want: Spec{
				Response: ResponseNotch, Cutoff: 50, Q: 35,
				Method: MethodButter, Window: window.TypeHamming, KaiserBeta: window.DefaultKaiserBeta,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseParams(tt.params)
			if err != nil {
				t.Fatalf("ParseParams: %v", err)
			}

			if got != tt.want {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseParams_Errors(t *testing.T) {
	tests := map[string][]any{
		"empty":             nil,
		"response not text": {4.0},
		"unknown response":  {"allpass"},
		"dangling name":     {"lowpassiir", "FilterOrder"},
		"name not text":     {"lowpassiir", 4.0, 4.0},
		"unknown name":      {"lowpassiir", "StopbandAttenuation", 60.0},
		"fractional order":  {"lowpassiir", "FilterOrder", 2.5},
		"zero order":        {"lowpassiir", "FilterOrder", 0.0},
		"order as text":     {"lowpassiir", "FilterOrder", "four"},
		"sample rate":       {"lowpassiir", "FilterOrder", 4.0, "SampleRate", 1000.0},
		"bad method":        {"lowpassiir", "DesignMethod", "ellip"},
		"bad window":        {"lowpassfir", "Window", "triangle"},
	}

	for name, params := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseParams(params); !errors.Is(err, ErrInvalidSpec) {
				t.Fatalf("expected ErrInvalidSpec, got %v", err)
			}
		})
	}
}
