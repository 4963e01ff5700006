package spectrum

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestMagnitudePhase(t *testing.T) {
	bins := []complex128{3 + 4i, -1 - 1i, 0}

	mag := Magnitude(bins)
	if len(mag) != len(bins) {
		t.Fatalf("Magnitude length mismatch: got=%d want=%d", len(mag), len(bins))
	}

	if math.Abs(mag[0]-5) > 1e-12 {
		t.Fatalf("Magnitude[0]=%f want=5", mag[0])
	}

	phase := make([]float64, len(bins))
	PhaseInto(phase, bins)
	if math.Abs(phase[0]-math.Atan2(4, 3)) > 1e-12 {
		t.Fatalf("Phase[0]=%f mismatch", phase[0])
	}
	if math.Abs(phase[1]+3*math.Pi/4) > 1e-12 {
		t.Fatalf("Phase[1]=%f want=%f", phase[1], -3*math.Pi/4)
	}

	if Magnitude(nil) != nil {
		t.Fatal("empty input should return nil")
	}
}

func TestHalfSpectrum(t *testing.T) {
	full := []complex128{1, 1i, -2, 0, 5, 0, 2, -1i}
	mag := make([]float64, 5)
	phase := make([]float64, 5)

	if err := HalfSpectrum(mag, phase, full); err != nil {
		t.Fatal(err)
	}
	want := []float64{1, 1, 2, 0, 5}
	for i := range want {
		if math.Abs(mag[i]-want[i]) > 1e-12 {
			t.Fatalf("mag[%d] = %v, want %v", i, mag[i], want[i])
		}
	}
	if math.Abs(phase[2]-math.Pi) > 1e-12 {
		t.Fatalf("phase[2] = %v, want pi", phase[2])
	}

	if err := HalfSpectrum(mag[:2], phase, full); err == nil {
		t.Fatal("expected error for short output")
	}
	if err := HalfSpectrum(mag, phase, full[:1]); err == nil {
		t.Fatal("expected error for tiny spectrum")
	}
}

func TestMirrorHermitian(t *testing.T) {
	const n = 16
	full := make([]complex128, n)
	for k := 0; k <= n/2; k++ {
		full[k] = complex(float64(k), float64(k)*0.5)
	}
	Mirror(full)

	if imag(full[0]) != 0 || imag(full[n/2]) != 0 {
		t.Fatalf("DC/Nyquist not real: %v %v", full[0], full[n/2])
	}
	for k := 1; k < n/2; k++ {
		if full[n-k] != cmplx.Conj(full[k]) {
			t.Fatalf("full[%d] = %v, want conj(%v)", n-k, full[n-k], full[k])
		}
	}
}

func TestPolar(t *testing.T) {
	c := Polar(2, math.Pi/2)
	if cmplx.Abs(c-2i) > 1e-12 {
		t.Fatalf("Polar(2, pi/2) = %v, want 2i", c)
	}
}
