package quant

import (
	"errors"
	"math"
	"testing"
)

func TestMaxLevel(t *testing.T) {
	tests := []struct {
		bits uint
		want uint32
	}{
		{1, 1},
		{8, 255},
		{12, 4095},
		{31, 1<<31 - 1},
		{32, math.MaxUint32},
	}
	for _, tt := range tests {
		if got := MaxLevel(tt.bits); got != tt.want {
			t.Fatalf("MaxLevel(%d) = %d, want %d", tt.bits, got, tt.want)
		}
	}
}

func TestValidateBits(t *testing.T) {
	for _, bits := range []uint{0, 33, 64} {
		if err := ValidateBits(bits); !errors.Is(err, ErrBits) {
			t.Fatalf("ValidateBits(%d) = %v, want ErrBits", bits, err)
		}
	}
	if _, err := NewLinearMagnitude(0, 1); err == nil {
		t.Fatal("NewLinearMagnitude(0) should fail")
	}
	if _, err := NewLinearPhase(40); err == nil {
		t.Fatal("NewLinearPhase(40) should fail")
	}
	if _, err := NewLogMagnitude(33, 1); err == nil {
		t.Fatal("NewLogMagnitude(33) should fail")
	}
}

func TestLinearMagnitudeMonotonic(t *testing.T) {
	for _, bits := range []uint{1, 4, 12, 16, 32} {
		q, err := NewLinearMagnitude(bits, 0.8)
		if err != nil {
			t.Fatal(err)
		}

		prev := uint32(0)
		for i := 0; i <= 2000; i++ {
			m := float64(i) / 1000 // crosses the peak reference
			code := q.Quantize(m)
			if code < prev {
				t.Fatalf("bits=%d: Quantize(%v) = %d < previous %d", bits, m, code, prev)
			}
			prev = code
		}
		if prev != MaxLevel(bits) {
			t.Fatalf("bits=%d: saturated code = %d, want %d", bits, prev, MaxLevel(bits))
		}
	}
}

func TestLinearMagnitudeRoundTrip(t *testing.T) {
	q := LinearMagnitude{Bits: 12, PeakReference: 1}
	step := 1 / float64(MaxLevel(12))

	for _, m := range []float64{0, 0.001, 0.25, 0.5, 0.999, 1} {
		got := q.Dequantize(q.Quantize(m))
		if math.Abs(got-m) > step/2+1e-15 {
			t.Fatalf("Dequantize(Quantize(%v)) = %v, error > half step", m, got)
		}
	}
	if q.Quantize(-1) != 0 || q.Quantize(math.NaN()) != 0 {
		t.Fatal("negative and NaN magnitudes should quantize to 0")
	}
}

func TestLinearMagnitudeSilentReference(t *testing.T) {
	q := LinearMagnitude{Bits: 12, PeakReference: 1e-13}
	if got := q.Quantize(0.5); got != 0 {
		t.Fatalf("Quantize = %d, want 0", got)
	}
	if got := q.Dequantize(100); got != 0 {
		t.Fatalf("Dequantize = %v, want 0", got)
	}
}

func TestLogMagnitude(t *testing.T) {
	q := LogMagnitude{Step: DefaultLogStep, Scale: 1}

	if q.Quantize(0) != 0 || q.Dequantize(0) != 0 {
		t.Fatal("zero should map to zero")
	}
	if q.Dequantize(-3) != 0 {
		t.Fatal("negative codes should decode to 0")
	}

	// |got-m| <= (1+m)*(exp(step/2)-1)
	for _, m := range []float64{0.3, 5, 20, 150, 1000} {
		bound := (1 + m) / m * (math.Exp(DefaultLogStep/2) - 1)
		got := q.Dequantize(q.Quantize(m))
		if rel := math.Abs(got-m) / m; rel > bound+1e-9 {
			t.Fatalf("relative error at %v = %v > %v", m, rel, bound)
		}
	}

	prev := int32(0)
	for i := 0; i < 1000; i++ {
		code := q.Quantize(float64(i) * 0.37)
		if code < prev {
			t.Fatalf("log quantizer not monotonic at %d", i)
		}
		prev = code
	}
}

func TestNewLogMagnitudeScale(t *testing.T) {
	q, err := NewLogMagnitude(12, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if q.Step != DefaultLogStep {
		t.Fatalf("Step = %v, want %v", q.Step, DefaultLogStep)
	}
	if want := 4095 / 0.5; q.Scale != want {
		t.Fatalf("Scale = %v, want %v", q.Scale, want)
	}

	silent, err := NewLogMagnitude(12, 0)
	if err != nil {
		t.Fatal(err)
	}
	if silent.Scale != 1 {
		t.Fatalf("silent Scale = %v, want 1", silent.Scale)
	}

	// With the peak mapped to 4095, small amplitudes keep their precision.
	for _, m := range []float64{0.01, 0.1, 0.5} {
		got := q.Dequantize(q.Quantize(m))
		if rel := math.Abs(got-m) / m; rel > 0.07 {
			t.Fatalf("relative error at %v = %v", m, rel)
		}
	}
}

func TestLinearPhase(t *testing.T) {
	q := LinearPhase{Bits: 8}
	if got := q.Quantize(-math.Pi); got != 0 {
		t.Fatalf("Quantize(-pi) = %d, want 0", got)
	}
	if got := q.Quantize(math.Pi); got != 255 {
		t.Fatalf("Quantize(pi) = %d, want 255", got)
	}
	if got := q.Quantize(10); got != 255 {
		t.Fatalf("Quantize(10) = %d, want saturated 255", got)
	}
	if got := q.Quantize(-10); got != 0 {
		t.Fatalf("Quantize(-10) = %d, want saturated 0", got)
	}

	step := 2 * math.Pi / 255
	for phi := -math.Pi; phi <= math.Pi; phi += 0.01 {
		got := q.Dequantize(q.Quantize(phi))
		if math.Abs(got-phi) > step/2+1e-12 {
			t.Fatalf("phase %v reconstructed as %v", phi, got)
		}
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi / 2, math.Pi / 2},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-3 * math.Pi / 2, math.Pi / 2},
		{4*math.Pi + 0.25, 0.25},
	}
	for _, tt := range tests {
		if got := Wrap(tt.in); math.Abs(got-tt.want) > 1e-12 {
			t.Fatalf("Wrap(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if got := WrapDelta(math.Pi-0.1, -math.Pi+0.1); math.Abs(got+0.2) > 1e-12 {
		t.Fatalf("WrapDelta across the branch cut = %v, want -0.2", got)
	}
}

func TestDeltaPhase(t *testing.T) {
	q := DeltaPhase{Levels: DefaultPhaseLevels}
	// Half a bucket.
	const maxErr = math.Pi / DefaultPhaseLevels

	for _, pred := range []float64{-3, -1, 0, 0.5, 2.9} {
		for phi := -math.Pi; phi < math.Pi; phi += 0.013 {
			b := q.Quantize(phi, pred)
			if b >= DefaultPhaseLevels {
				t.Fatalf("bucket %d out of range", b)
			}
			got := q.Dequantize(b, pred)
			if err := math.Abs(WrapDelta(got, phi)); err > maxErr+1e-12 {
				t.Fatalf("phi=%v pred=%v: error %v > %v", phi, pred, err, maxErr)
			}
		}
	}

	if got := q.Quantize(math.Pi, 0); got != DefaultPhaseLevels-1 {
		t.Fatalf("Quantize(pi) = %d, want saturated %d", got, DefaultPhaseLevels-1)
	}
	if got := (DeltaPhase{}).Quantize(0, 0); got != 32 {
		t.Fatalf("zero value Quantize(0, 0) = %d, want 32", got)
	}
	if got := q.Dequantize(1000, 0); math.Abs(got-(math.Pi-math.Pi/64)) > 1e-12 {
		t.Fatalf("saturated Dequantize = %v", got)
	}
}
