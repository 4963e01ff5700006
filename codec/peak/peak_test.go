package peak

import (
	"math"
	"testing"
)

func TestSelectTopK(t *testing.T) {
	mag := []float64{0.1, 5, 0.2, 3, 9, 0.3, 7, 0}
	phase := []float64{0, 1, 2, 3, -1, -2, -3, 0.5}

	got, err := Select(mag, phase, 3)
	if err != nil {
		t.Fatal(err)
	}
	wantBins := []int{4, 6, 1}
	if len(got) != len(wantBins) {
		t.Fatalf("len = %d, want %d", len(got), len(wantBins))
	}
	// ascending bin order
	for i, bin := range []int{1, 4, 6} {
		if got[i].Bin != bin {
			t.Fatalf("track %d bin = %d, want %d", i, got[i].Bin, bin)
		}
		if got[i].Magnitude != mag[bin] || got[i].Phase != phase[bin] {
			t.Fatalf("track %d = %+v, want magnitude %v phase %v", i, got[i], mag[bin], phase[bin])
		}
	}
}

func TestSelectTiesPreferLowerBin(t *testing.T) {
	mag := []float64{1, 2, 2, 2, 2, 1}
	phase := make([]float64, len(mag))

	got, err := Select(mag, phase, 2)
	if err != nil {
		t.Fatal(err)
	}
	if got[0].Bin != 1 || got[1].Bin != 2 {
		t.Fatalf("bins = %d,%d, want 1,2", got[0].Bin, got[1].Bin)
	}
}

func TestSelectKLargerThanSpectrum(t *testing.T) {
	mag := []float64{3, 1, 2}
	got, err := Select(mag, make([]float64, 3), 128)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for i := range got {
		if got[i].Bin != i {
			t.Fatalf("bin %d = %d", i, got[i].Bin)
		}
	}
}

func TestSelectEdgeCases(t *testing.T) {
	if got, err := Select(nil, nil, 4); err != nil || got != nil {
		t.Fatalf("empty spectrum = %v, %v", got, err)
	}
	if got, err := Select([]float64{1}, []float64{0}, 0); err != nil || got != nil {
		t.Fatalf("k=0 = %v, %v", got, err)
	}
	if _, err := Select([]float64{1, 2}, []float64{0}, 1); err == nil {
		t.Fatal("expected length mismatch error")
	}
}

func TestSelectIncludesNyquist(t *testing.T) {
	mag := make([]float64, 1025)
	mag[1024] = 1
	got, err := Select(mag, make([]float64, len(mag)), 1)
	if err != nil {
		t.Fatal(err)
	}
	if got[0].Bin != 1024 {
		t.Fatalf("bin = %d, want 1024", got[0].Bin)
	}
}

func TestBarkEdges(t *testing.T) {
	edges := BarkEdges(1025, 44100, DefaultBands)
	if len(edges) != DefaultBands+1 {
		t.Fatalf("len = %d, want %d", len(edges), DefaultBands+1)
	}
	if edges[0] != 0 || edges[len(edges)-1] != 1025 {
		t.Fatalf("edges span %d..%d, want 0..1025", edges[0], edges[len(edges)-1])
	}
	for i := 1; i < len(edges); i++ {
		if edges[i] <= edges[i-1] {
			t.Fatalf("edges not strictly ascending at %d: %v", i, edges)
		}
	}
	// Critical bands widen with frequency.
	if first, last := edges[1]-edges[0], edges[len(edges)-1]-edges[len(edges)-2]; last <= first {
		t.Fatalf("first band %d bins, last band %d bins", first, last)
	}

	small := BarkEdges(9, 44100, DefaultBands)
	if small[0] != 0 || small[len(small)-1] != 9 || len(small) > 10 {
		t.Fatalf("small spectrum edges = %v", small)
	}
	if BarkEdges(0, 44100, 24) != nil {
		t.Fatal("BarkEdges(0) should be nil")
	}
}

func TestBark(t *testing.T) {
	if Bark(0) != 0 {
		t.Fatalf("Bark(0) = %v", Bark(0))
	}
	if b := Bark(1000); math.Abs(b-8.5) > 0.1 {
		t.Fatalf("Bark(1000) = %v, want about 8.5", b)
	}
}

func TestBandEnergyAndSalience(t *testing.T) {
	mag := []float64{1, 1, 2, 0}
	edges := []int{0, 2, 4}

	energy := BandEnergy(mag, edges)
	if math.Abs(energy[0]-2) > 1e-9 || math.Abs(energy[1]-4) > 1e-9 {
		t.Fatalf("BandEnergy = %v, want [2 4]", energy)
	}

	sal := Salience(mag, edges)
	want := []float64{0.5, 0.5, 1, 0}
	for i := range want {
		if math.Abs(sal[i]-want[i]) > 1e-6 {
			t.Fatalf("Salience[%d] = %v, want %v", i, sal[i], want[i])
		}
	}

	silent := BandEnergy([]float64{0, 0}, []int{0, 2})
	if silent[0] <= 0 {
		t.Fatal("silent band energy must stay positive")
	}
}

func TestSelectWithSalience(t *testing.T) {
	// A loud cluster in one band and a quiet isolated bin elsewhere.
	mag := make([]float64, 1025)
	for k := 100; k < 110; k++ {
		mag[k] = 1
	}
	mag[600] = 0.05

	plain, err := Select(mag, make([]float64, len(mag)), 3)
	if err != nil {
		t.Fatal(err)
	}
	for _, tr := range plain {
		if tr.Bin == 600 {
			t.Fatal("plain selection should not pick the quiet bin")
		}
	}

	weighted, err := Select(mag, make([]float64, len(mag)), 3, WithSalience(44100))
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, tr := range weighted {
		if tr.Bin == 600 {
			found = true
			if tr.Magnitude != 0.05 {
				t.Fatalf("selected track carries score %v instead of magnitude", tr.Magnitude)
			}
		}
	}
	if !found {
		t.Fatalf("salience selection %+v misses the isolated bin", weighted)
	}
}
