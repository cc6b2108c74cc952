// Package samplerate derives the sampling frequency of a series from its
// timestamps.
//
// The estimate is the reciprocal of the most frequent inter-sample interval
// rather than the mean interval, so an occasional dropped sample or a
// recording gap does not shift the result.
package samplerate

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrUndefined indicates the sample rate cannot be derived from the
	// timestamps, for example because fewer than two are available.
	ErrUndefined = errors.New("samplerate: sample rate undefined")
	// ErrNonPositiveInterval indicates the modal interval is zero or
	// negative. It wraps ErrUndefined.
	ErrNonPositiveInterval = fmt.Errorf("%w: non-positive modal interval", ErrUndefined)
)

// relativeTolerance is the spread, relative to an interval, within which
// intervals count as equal when taking the mode.
const relativeTolerance = 1e-9

// roundingULPs bounds the rounding error of a difference of two timestamps,
// in units of the largest timestamp's epsilon.
const roundingULPs = 8

// Intervals returns the first differences of time.
func Intervals(time []float64) []float64 {
	if len(time) < 2 {
		return nil
	}

	d := make([]float64, len(time)-1)
	for i := range d {
		d[i] = time[i+1] - time[i]
	}

	return d
}

// ModalInterval returns the most frequent inter-sample interval. Intervals
// within floating-point noise of each other are counted together, and the
// result is the mean of the winning group. When several groups are equally
// frequent the one with the smallest intervals wins.
func ModalInterval(time []float64) (float64, error) {
	if len(time) < 2 {
		return 0, fmt.Errorf("%w: need at least 2 timestamps, got %d", ErrUndefined, len(time))
	}

	d := Intervals(time)
	for _, v := range d {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("%w: non-finite interval %v", ErrUndefined, v)
		}
	}

	interval := modalGroup(d, absoluteTolerance(time))
	if !(interval > 0) {
		return 0, fmt.Errorf("%w: %v", ErrNonPositiveInterval, interval)
	}

	return interval, nil
}

// Estimate returns the sampling frequency implied by time, in the reciprocal
// unit of the timestamps.
func Estimate(time []float64) (float64, error) {
	interval, err := ModalInterval(time)
	if err != nil {
		return 0, err
	}

	return 1 / interval, nil
}

// Jitter returns the largest absolute deviation of any interval from the
// modal interval.
func Jitter(time []float64) (float64, error) {
	interval, err := ModalInterval(time)
	if err != nil {
		return 0, err
	}

	d := Intervals(time)
	floats.AddConst(-interval, d)

	var worst float64
	for _, v := range d {
		worst = math.Max(worst, math.Abs(v))
	}

	return worst, nil
}

// absoluteTolerance returns the rounding error expected in a difference of
// two timestamps of time.
func absoluteTolerance(time []float64) float64 {
	largest := math.Max(math.Abs(floats.Max(time)), math.Abs(floats.Min(time)))

	return roundingULPs * largest * 0x1p-52
}

// modalGroup sorts d in place, groups values lying within tolerance of the
// smallest value of their group and returns the mean of the largest group.
// Ties go to the group with the smallest values.
func modalGroup(d []float64, abs float64) float64 {
	sort.Float64s(d)

	var best []float64
	for i := 0; i < len(d); {
		limit := d[i] + abs + relativeTolerance*math.Abs(d[i])

		j := i + 1
		for j < len(d) && d[j] <= limit {
			j++
		}

		if j-i > len(best) {
			best = d[i:j]
		}

		i = j
	}

	return stat.Mean(best, nil)
}
