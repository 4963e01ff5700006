package testutil

import (
	"math"
	"testing"
)

func TestMaxAbsDiff(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float64
		wantDiff float64
		wantAt   int
	}{
		{"identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 0, 0},
		{"worst last", []float64{1, 2, 3}, []float64{1.5, 2, 2}, 1, 2},
		{"first of ties", []float64{0, 0}, []float64{-1, 1}, 1, 0},
		{"empty", nil, nil, 0, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, at, err := MaxAbsDiff(tt.a, tt.b)
			if err != nil {
				t.Fatal(err)
			}
			if d != tt.wantDiff || at != tt.wantAt {
				t.Fatalf("MaxAbsDiff = %v at %d, want %v at %d", d, at, tt.wantDiff, tt.wantAt)
			}
		})
	}
}

func TestMaxAbsDiffNaN(t *testing.T) {
	d, at, err := MaxAbsDiff([]float64{0, math.NaN(), 5}, []float64{0, 0, 0})
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsNaN(d) || at != 1 {
		t.Fatalf("MaxAbsDiff = %v at %d, want NaN at 1", d, at)
	}
}

func TestMaxAbsDiffLengthMismatch(t *testing.T) {
	if _, _, err := MaxAbsDiff([]float64{1}, []float64{1, 2}); err == nil {
		t.Fatal("expected error for length mismatch")
	}
}

func TestRequireHelpersPass(t *testing.T) {
	RequireSliceNearlyEqual(t, []float64{1, 2}, []float64{1.05, 2}, 0.1)
	RequireSliceNearlyEqual(t, nil, nil, 0)
	RequireFinite(t, []float64{0, -1, math.MaxFloat64})
}
