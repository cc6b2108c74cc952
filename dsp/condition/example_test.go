package condition_test

import (
	"fmt"

	"github.com/cwbudde/algo-condition/dsp/condition"
	"github.com/cwbudde/algo-condition/dsp/core"
	"github.com/cwbudde/algo-condition/dsp/samplerate"
)

func ExampleRun() {
	const rate = 1000.0

	signal := core.NewMatrix(1000, 3)
	time := make([]float64, 1000)
	for i := range time {
		time[i] = float64(i) / rate
	}

	out, outTime, err := condition.Run(signal, time, condition.Config{
		condition.TrendRemoval{Degree: 1},
		condition.Downsample{Factor: 4},
	})
	if err != nil {
		fmt.Println(err)
		return
	}

	newRate, _ := samplerate.Estimate(outTime)
	fmt.Printf("%dx%d at %.0f Hz\n", out.Rows(), out.Cols(), newRate)
	// Output:
	// 250x3 at 249 Hz
}

func ExampleParseConfig() {
	cfg, err := condition.ParseConfig([]byte(`{
		"trend-removal": [1, [500]],
		"downsample": ["frequency", 100],
		"filter-chain": {
			"mains": ["notch", "CenterFrequency", 50],
			"smooth": ["lowpassiir", "FilterOrder", 4, "HalfPowerFrequency", 30]
		},
		"spline-smoothing": [3]
	}`))
	if err != nil {
		fmt.Println(err)
		return
	}

	for i, stage := range cfg {
		fmt.Printf("%d: %s\n", i, stage.Kind())
	}
	// Output:
	// 0: trend-removal
	// 1: downsample
	// 2: filter-chain
	// 3: spline-smoothing
}
