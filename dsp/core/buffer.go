package core

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}

// Zero sets all values in buf to 0.
func Zero(buf []float64) {
	for i := range buf {
		buf[i] = 0
	}
}

// Reverse reverses buf in-place.
func Reverse(buf []float64) {
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
}

// OddExtend returns x with pad samples mirrored about each end point:
//
//	left[k]  = 2*x[0]   - x[pad-k]
//	right[k] = 2*x[n-1] - x[n-2-k]
//
// pad is clamped to len(x)-1.
func OddExtend(x []float64, pad int) []float64 {
	n := len(x)
	if n == 0 {
		return nil
	}

	pad = min(max(pad, 0), n-1)
	out := make([]float64, n+2*pad)

	first, last := x[0], x[n-1]
	for k := range pad {
		out[k] = 2*first - x[pad-k]
		out[pad+n+k] = 2*last - x[n-2-k]
	}

	copy(out[pad:], x)

	return out
}

// Linspace returns n evenly spaced values from start to stop inclusive.
// A single value yields [start].
func Linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return nil
	}

	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}

	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	out[n-1] = stop

	return out
}
