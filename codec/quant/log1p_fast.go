//go:build fastmath

package quant

import "github.com/meko-christian/algo-approx"

// log1p computes log(1+x) using fast approximation. Only Quantize calls it;
// Dequantize stays exact.
func log1p(x float64) float64 {
	return approx.FastLog(1 + x)
}
