//go:build !fastmath

package quant

import "math"

// log1p computes log(1+x) using standard library math.
func log1p(x float64) float64 {
	return math.Log1p(x)
}
