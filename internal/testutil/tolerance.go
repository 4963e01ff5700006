package testutil

import (
	"fmt"
	"math"
	"slices"
	"testing"
)

// MaxAbsDiff returns the largest |a[i]-b[i]| and its index. A NaN difference
// is returned as soon as it is found. For empty input the index is -1.
func MaxAbsDiff(a, b []float64) (float64, int, error) {
	if len(a) != len(b) {
		return 0, -1, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}
	worst, at := 0.0, -1
	for i := range a {
		d := math.Abs(a[i] - b[i])
		if math.IsNaN(d) {
			return d, i, nil
		}
		if at < 0 || d > worst {
			worst, at = d, i
		}
	}
	return worst, at, nil
}

// RequireSliceNearlyEqual fails t unless got and want have the same length and
// every pair is within eps. The failure names the worst index.
func RequireSliceNearlyEqual(t testing.TB, got, want []float64, eps float64) {
	t.Helper()
	d, i, err := MaxAbsDiff(got, want)
	if err != nil {
		t.Fatal(err)
	}
	if !(d <= eps) {
		t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], d, eps)
	}
}

// RequireFinite fails t at the first NaN or Inf in data.
func RequireFinite(t testing.TB, data []float64) {
	t.Helper()
	i := slices.IndexFunc(data, func(v float64) bool {
		return math.IsNaN(v) || math.IsInf(v, 0)
	})
	if i >= 0 {
		t.Fatalf("index %d: non-finite value %v", i, data[i])
	}
}
