package core

import "math"

const defaultEpsilon = 1e-12

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// IsFinite reports whether v is neither NaN nor ±Inf.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// AllFinite reports whether every value in buf is finite.
func AllFinite(buf []float64) bool {
	for _, v := range buf {
		if !IsFinite(v) {
			return false
		}
	}

	return true
}

// IsIntegral reports whether v is a finite whole number.
func IsIntegral(v float64) bool {
	return IsFinite(v) && v == math.Trunc(v)
}

// DBPowerToLinear converts dB to linear power (10*log10 convention).
func DBPowerToLinear(db float64) float64 {
	return math.Pow(10, db/10)
}
