package transform

import (
	"testing"

	"github.com/cwbudde/algo-codec/internal/testutil"
)

func BenchmarkSTFTAnalyze(b *testing.B) {
	eng := NewEngine()
	stft, err := eng.NewSTFT(2048, 512)
	if err != nil {
		b.Fatal(err)
	}
	x := testutil.DeterministicNoise(1, 1, 2048)
	dst := make([]complex128, 2048)

	b.ReportAllocs()
	b.ResetTimer()
	for range b.N {
		if err := stft.Analyze(dst, x, 0); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMDCTForward(b *testing.B) {
	eng := NewEngine()
	mdct, err := eng.NewMDCT(512)
	if err != nil {
		b.Fatal(err)
	}
	x := testutil.DeterministicNoise(1, 1, 1024)
	dst := make([]float64, 512)

	b.ReportAllocs()
	b.ResetTimer()
	for range b.N {
		if err := mdct.Forward(dst, x, 0); err != nil {
			b.Fatal(err)
		}
	}
}
