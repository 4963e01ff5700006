package testutil

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// DominantBin returns the index of the largest bin of the Hann-windowed
// n-sample segment of x starting at pos, computed with an independent FFT
// implementation.
func DominantBin(x []float64, pos, n int) int {
	seg := make([]float64, n)
	for i := range seg {
		if idx := pos + i; idx < len(x) {
			w := 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n))
			seg[i] = x[idx] * w
		}
	}

	coeffs := fourier.NewFFT(n).Coefficients(nil, seg)
	best := 0
	for k, c := range coeffs {
		if cmplx.Abs(c) > cmplx.Abs(coeffs[best]) {
			best = k
		}
	}
	return best
}
