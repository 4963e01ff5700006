package core

import "math"

// Clamp limits value to the inclusive range [lo, hi]. Swapped bounds are
// reordered.
func Clamp(value, lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}
	return math.Min(math.Max(value, lo), hi)
}

// IsPowerOfTwo reports whether n is a power of two and at least 2.
func IsPowerOfTwo(n int) bool {
	return n >= 2 && n&(n-1) == 0
}

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	switch {
	case linear < 0:
		return math.NaN()
	case linear == 0:
		return math.Inf(-1)
	}
	return 20 * math.Log10(linear)
}

// PowerRatioDB returns 10*log10((num+eps)/(den+eps)). eps keeps silent
// signals finite.
func PowerRatioDB(num, den, eps float64) float64 {
	return 10 * math.Log10((num+eps)/(den+eps))
}
