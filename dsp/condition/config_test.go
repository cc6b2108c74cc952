package condition_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-condition/dsp/condition"
	"github.com/cwbudde/algo-condition/dsp/decimate"
	"github.com/cwbudde/algo-condition/dsp/filter/design"
	"github.com/cwbudde/algo-condition/dsp/samplerate"
)

func TestParseConfig_ObjectKeepsOrder(t *testing.T) {
	t.Parallel()

	cfg, err := condition.ParseConfig([]byte(`{
		"filter-chain": {"lp": ["lowpassiir", "FilterOrder", 4, "HalfPowerFrequency", 30]},
		"downsample": [4],
		"trend-removal": [1]
	}`))
	require.NoError(t, err)

	lp := design.DefaultSpec(design.ResponseLowpassIIR)
	lp.Order = 4
	lp.Cutoff = 30

	want := condition.Config{
		condition.FilterChain{Filters: []condition.NamedFilter{{Name: "lp", Spec: lp}}},
		condition.Downsample{Factor: 4},
		condition.TrendRemoval{Degree: 1},
	}

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("ParseConfig mismatch (-want +got):\n%s", diff)
	}
}

func TestParseConfig_ArrayAllowsRepeats(t *testing.T) {
	t.Parallel()

	cfg, err := condition.ParseConfig([]byte(`[{"downsample": [4]}, {"downsample": ["frequency", 50, "Filter", "fir"]}]`))
	require.NoError(t, err)

	want := condition.Config{
		condition.Downsample{Factor: 4},
		condition.Downsample{TargetHz: 50, Filter: decimate.FilterFIR},
	}

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("ParseConfig mismatch (-want +got):\n%s", diff)
	}
}

func TestParseConfig_TrendForms(t *testing.T) {
	t.Parallel()

	tests := map[string]condition.TrendRemoval{
		`[0]`:                                 {Degree: 0},
		`["constant"]`:                        {Degree: 0},
		`["Linear"]`:                          {Degree: 1},
		`[3, [100, 250]]`:                     {Degree: 3, Breakpoints: []int{100, 250}},
		`[1, [100], "Continuous", true]`:      {Degree: 1, Breakpoints: []int{100}},
		`[1, [100], "Continuous", false]`:     {Degree: 1, Breakpoints: []int{100}, Discontinuous: true},
		`[2, "continuous", false]`:            {Degree: 2, Discontinuous: true},
		`[1.0, [10.0]]`:                       {Degree: 1, Breakpoints: []int{10}},
	}

	for raw, want := range tests {
		stage, err := condition.ParseStage(condition.KindTrendRemoval, json.RawMessage(raw))
		require.NoError(t, err, raw)

		if diff := cmp.Diff(want, stage); diff != "" {
			t.Fatalf("%s: mismatch (-want +got):\n%s", raw, diff)
		}
	}
}

func TestParseConfig_Unrecognized(t *testing.T) {
	t.Parallel()

	cfg, err := condition.ParseConfig([]byte(`{"wavelet-denoise": {"level": 3}, "downsample": [2]}`))
	require.NoError(t, err)
	require.Len(t, cfg, 2)

	u, ok := cfg[0].(condition.Unrecognized)
	require.True(t, ok)
	assert.Equal(t, condition.Kind("wavelet-denoise"), u.Kind())
	assert.JSONEq(t, `{"level": 3}`, string(u.Params))
}

func TestParseConfig_Empty(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{`{}`, `[]`, ` { } `} {
		cfg, err := condition.ParseConfig([]byte(raw))
		require.NoError(t, err, raw)
		assert.Empty(t, cfg)
	}
}

func TestParseConfig_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		raw    string
		target error
	}{
		{"empty input", ``, condition.ErrConfiguration},
		{"syntax", `{"downsample": [4]`, condition.ErrConfiguration},
		{"scalar", `42`, condition.ErrConfiguration},
		{"trailing", `{"downsample": [4]} []`, condition.ErrConfiguration},
		{"array of scalars", `[4]`, condition.ErrConfiguration},
		{"two members", `[{"downsample": [4], "trend-removal": [0]}]`, condition.ErrConfiguration},
		{"empty member", `[{}]`, condition.ErrConfiguration},
		{"trend no degree", `{"trend-removal": []}`, condition.ErrConfiguration},
		{"trend bad degree", `{"trend-removal": ["cubic"]}`, condition.ErrConfiguration},
		{"trend negative degree", `{"trend-removal": [-1]}`, condition.ErrConfiguration},
		{"trend fractional breakpoint", `{"trend-removal": [1, [2.5]]}`, condition.ErrConfiguration},
		{"trend bad option", `{"trend-removal": [1, [2], "Smooth", true]}`, condition.ErrConfiguration},
		{"trend option value", `{"trend-removal": [1, [2], "Continuous", "yes"]}`, condition.ErrConfiguration},
		{"trend not a list", `{"trend-removal": 1}`, condition.ErrConfiguration},
		{"downsample fractional", `{"downsample": [2.5]}`, condition.ErrConfiguration},
		{"downsample zero", `{"downsample": [0]}`, condition.ErrConfiguration},
		{"downsample empty", `{"downsample": []}`, condition.ErrConfiguration},
		{"downsample bad mode", `{"downsample": ["ratio", 2]}`, condition.ErrConfiguration},
		{"downsample negative hz", `{"downsample": ["frequency", -5]}`, condition.ErrConfiguration},
		{"downsample missing hz", `{"downsample": ["frequency"]}`, condition.ErrConfiguration},
		{"downsample bad filter", `{"downsample": [2, "Filter", "cic"]}`, condition.ErrConfiguration},
		{"downsample dangling option", `{"downsample": [2, "Filter"]}`, condition.ErrConfiguration},
		{"chain unknown response", `{"filter-chain": {"x": ["allpass", "FilterOrder", 2]}}`, condition.ErrFilterDesign},
		{"chain sample rate", `{"filter-chain": {"x": ["lowpassiir", "FilterOrder", 2, "HalfPowerFrequency", 5, "SampleRate", 100]}}`, condition.ErrFilterDesign},
		{"chain not a list", `{"filter-chain": {"x": "lowpassiir"}}`, condition.ErrFilterDesign},
		{"chain not an object", `{"filter-chain": 3}`, condition.ErrFilterDesign},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg, err := condition.ParseConfig([]byte(tt.raw))
			require.ErrorIs(t, err, tt.target)
			assert.Nil(t, cfg)
		})
	}
}

func TestParseConfig_StageErrorIndex(t *testing.T) {
	t.Parallel()

	_, err := condition.ParseConfig([]byte(`[{"downsample": [2]}, {"trend-removal": [1]}, {"downsample": [0]}]`))
	require.ErrorIs(t, err, condition.ErrConfiguration)

	var se *condition.StageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 2, se.Index)
	assert.Equal(t, condition.KindDownsample, se.Kind)
}

func TestParseConfig_FilterChainArrayForm(t *testing.T) {
	t.Parallel()

	stage, err := condition.ParseStage(condition.KindFilterChain, json.RawMessage(`[
		{"hp": ["highpassiir", "FilterOrder", 2, "CutoffFrequency", 0.5, "DesignMethod", "cheby1", "PassbandRipple", 0.5]},
		{"notch": ["notch", "CenterFrequency", 50, "QualityFactor", 30]},
		{"hp": ["lowpassfir", "FilterOrder", 40, "CutoffFrequency", 80, "Window", "kaiser", "KaiserBeta", 6]}
	]`))
	require.NoError(t, err)

	chain, ok := stage.(condition.FilterChain)
	require.True(t, ok)
	require.Len(t, chain.Filters, 3)

	names := []string{chain.Filters[0].Name, chain.Filters[1].Name, chain.Filters[2].Name}
	assert.Equal(t, []string{"hp", "notch", "hp"}, names)
	assert.Equal(t, design.MethodCheby1, chain.Filters[0].Spec.Method)
	assert.InDelta(t, 30, chain.Filters[1].Spec.Q, 0)
	assert.Equal(t, design.ResponseLowpassFIR, chain.Filters[2].Spec.Response)
}

func TestParseConfig_RunsEndToEnd(t *testing.T) {
	t.Parallel()

	cfg, err := condition.ParseConfig([]byte(`{
		"trend-removal": ["linear"],
		"filter-chain": {"lp": ["lowpassiir", "FilterOrder", 4, "HalfPowerFrequency", 40]},
		"downsample": ["frequency", 250]
	}`))
	require.NoError(t, err)

	sig, ts := series(2000, 1000)

	out, outTime, err := condition.Run(sig, ts, cfg)
	require.NoError(t, err)
	assert.Equal(t, 500, out.Rows())
	assert.Equal(t, 2, out.Cols())

	rate, err := samplerate.Estimate(outTime)
	require.NoError(t, err)
	assert.InEpsilon(t, 250, rate, 0.01)
}
