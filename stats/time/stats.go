// Package time computes time-domain statistics of signal channels, used to
// compare a series before and after conditioning.
package time

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-condition/dsp/core"
)

// Stats holds time-domain statistics of one channel.
type Stats struct {
	Length        int
	Mean          float64
	StdDev        float64 // population standard deviation
	RMS           float64
	Min           float64
	Max           float64
	Peak          float64 // max(|Min|, |Max|)
	ZeroCrossings int
}

// Calculate returns the statistics of x. An empty x yields zero Stats.
func Calculate(x []float64) Stats {
	n := len(x)
	if n == 0 {
		return Stats{}
	}

	mean := stat.Mean(x, nil)
	lo, hi := floats.Min(x), floats.Max(x)

	return Stats{
		Length:        n,
		Mean:          mean,
		StdDev:        math.Sqrt(stat.PopVariance(x, nil)),
		RMS:           RMS(x),
		Min:           lo,
		Max:           hi,
		Peak:          math.Max(math.Abs(lo), math.Abs(hi)),
		ZeroCrossings: ZeroCrossings(x),
	}
}

// Channels returns the statistics of every column of m.
func Channels(m *core.Matrix) []Stats {
	out := make([]Stats, m.Cols())

	col := make([]float64, m.Rows())
	for j := range out {
		col = m.ColumnInto(col, j)
		out[j] = Calculate(col)
	}

	return out
}

// RMS returns the root-mean-square of x, or 0 for an empty x.
func RMS(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}

	return floats.Norm(x, 2) / math.Sqrt(float64(len(x)))
}

// ZeroCrossings counts sign changes between adjacent samples. Zeros do not
// count as a sign.
func ZeroCrossings(x []float64) int {
	var count int

	for i := 1; i < len(x); i++ {
		if x[i-1]*x[i] < 0 {
			count++
		}
	}

	return count
}

// GainDB returns 20*log10(after.RMS / before.RMS). It is -Inf when after is
// silent and NaN when before is.
func GainDB(before, after Stats) float64 {
	if before.RMS == 0 {
		return math.NaN()
	}

	if after.RMS == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(after.RMS/before.RMS)
}
