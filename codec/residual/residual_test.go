package residual

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-codec/codec/bitstream"
	"github.com/cwbudde/algo-codec/codec/codecerr"
	"github.com/cwbudde/algo-codec/codec/rice"
	"github.com/cwbudde/algo-codec/internal/testutil"
)

func TestAllZeroIsTailRunAndSentinel(t *testing.T) {
	for _, n := range []int{0, 1, 16, 512} {
		coeffs := make([]float64, n)
		w := bitstream.NewWriter()
		if got := Encode(w, coeffs, 0.01, Quantizer{Step: 0.01}); got != 0 {
			t.Fatalf("n=%d: survivors = %d, want 0", n, got)
		}

		// unary run of n, then run 0 and signed value 0
		want := (n + 1) + 1 + 4
		if w.Len() != want {
			t.Fatalf("n=%d: Len() = %d, want %d", n, w.Len(), want)
		}

		r := bitstream.NewReader(w.Bytes(), bitstream.WithStrict())
		if got := rice.DecodeUnsigned(r, 0); int(got) != n {
			t.Fatalf("n=%d: tail run = %d", n, got)
		}
		if rice.DecodeUnsigned(r, 0) != 0 || rice.DecodeSigned(r, 3) != 0 {
			t.Fatalf("n=%d: sentinel is not (0, 0)", n)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	q := Quantizer{Step: 0.01}
	coeffs := []float64{0, 0.5, 0, 0, -0.25, 0.004, 0, 0.3, 0, 0, 0, -1}
	w := bitstream.NewWriter()
	survivors := Encode(w, coeffs, 0.05, q)
	if survivors != 4 {
		t.Fatalf("survivors = %d, want 4", survivors)
	}

	got := make([]float64, len(coeffs))
	for i := range got {
		got[i] = 99
	}
	r := bitstream.NewReader(w.Bytes(), bitstream.WithStrict())
	if err := Decode(r, got, q); err != nil {
		t.Fatal(err)
	}

	want := []float64{0, 0.5, 0, 0, -0.25, 0, 0, 0.3, 0, 0, 0, -1}
	testutil.RequireSliceNearlyEqual(t, got, want, 1e-12)
	if r.BitsRemaining() >= 8 {
		t.Fatalf("%d bits left unread", r.BitsRemaining())
	}
}

func TestLastCoefficientSurvives(t *testing.T) {
	q := Quantizer{Step: 0.1}
	coeffs := []float64{0, 0, 0.7}
	w := bitstream.NewWriter()
	Encode(w, coeffs, 0.1, q)

	got := make([]float64, 3)
	if err := Decode(bitstream.NewReader(w.Bytes(), bitstream.WithStrict()), got, q); err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, got, []float64{0, 0, 0.7}, 1e-12)
}

func TestZeroQuantizedExtendsRun(t *testing.T) {
	q := Quantizer{Step: 1}
	w := bitstream.NewWriter()
	// 0.4 passes the gate but rounds to zero
	if got := Encode(w, []float64{0.4, 0.4}, 0.1, q); got != 0 {
		t.Fatalf("survivors = %d, want 0", got)
	}
	if want := 3 + 1 + 4; w.Len() != want {
		t.Fatalf("Len() = %d, want %d", w.Len(), want)
	}
}

func TestConsecutiveFramesStayAligned(t *testing.T) {
	q := Quantizer{Step: 0.05}
	frames := [][]float64{
		{0.2, 0, 0, -0.3},
		{0, 0, 0, 0},
		{1, 1, 1, 1},
	}

	w := bitstream.NewWriter()
	for _, f := range frames {
		Encode(w, f, 0.1, q)
	}

	r := bitstream.NewReader(w.Bytes(), bitstream.WithStrict())
	got := make([]float64, 4)
	for i, f := range frames {
		if err := Decode(r, got, q); err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
		testutil.RequireSliceNearlyEqual(t, got, f, 1e-12)
	}
}

func TestMissingSentinel(t *testing.T) {
	w := bitstream.NewWriter()
	rice.EncodeUnsigned(w, 4, 0) // tail run for 4 coefficients
	rice.EncodeUnsigned(w, 2, 0) // not a sentinel
	rice.EncodeSigned(w, 0, 3)

	err := Decode(bitstream.NewReader(w.Bytes()), make([]float64, 4), Quantizer{Step: 1})
	if !errors.Is(err, codecerr.ErrFormat) {
		t.Fatalf("Decode = %v, want ErrFormat", err)
	}
}

func TestPrematureSentinelStops(t *testing.T) {
	w := bitstream.NewWriter()
	rice.EncodeUnsigned(w, 1, 0)
	rice.EncodeSigned(w, 3, 3)
	rice.EncodeUnsigned(w, 0, 0)
	rice.EncodeSigned(w, 0, 3)

	got := make([]float64, 8)
	if err := Decode(bitstream.NewReader(w.Bytes()), got, Quantizer{Step: 1}); err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, got, []float64{0, 3, 0, 0, 0, 0, 0, 0}, 0)
}

func TestTruncatedStrict(t *testing.T) {
	w := bitstream.NewWriter()
	Encode(w, []float64{1, 2, 3, 4, 5, 6, 7, 8}, 0.1, Quantizer{Step: 0.01})
	data := w.Bytes()[:3]

	err := Decode(bitstream.NewReader(data, bitstream.WithStrict()), make([]float64, 8), Quantizer{Step: 0.01})
	if !errors.Is(err, codecerr.ErrTruncated) {
		t.Fatalf("Decode = %v, want ErrTruncated", err)
	}
}

func TestQuantizer(t *testing.T) {
	if _, err := NewQuantizer(0); !errors.Is(err, ErrStep) {
		t.Fatalf("NewQuantizer(0) = %v, want ErrStep", err)
	}
	if _, err := NewQuantizer(math.Inf(1)); !errors.Is(err, ErrStep) {
		t.Fatalf("NewQuantizer(inf) = %v, want ErrStep", err)
	}
	q, err := NewQuantizer(0.5)
	if err != nil {
		t.Fatal(err)
	}
	if got := q.Quantize(1.2); got != 2 {
		t.Fatalf("Quantize(1.2) = %d, want 2", got)
	}
	if got := q.Quantize(-1.3); got != -3 {
		t.Fatalf("Quantize(-1.3) = %d, want -3", got)
	}
	if got := q.Quantize(1e12); got != math.MaxInt32 {
		t.Fatalf("Quantize(1e12) = %d, want saturation", got)
	}
	if got := q.Dequantize(-3); got != -1.5 {
		t.Fatalf("Dequantize(-3) = %v, want -1.5", got)
	}
}

func TestThreshold(t *testing.T) {
	if got := Threshold(1, 60); math.Abs(got-0.001) > 1e-15 {
		t.Fatalf("Threshold(1, 60) = %v, want 0.001", got)
	}
	if got := Threshold(0.5, 0); got != 0.5 {
		t.Fatalf("Threshold(0.5, 0) = %v", got)
	}
}
