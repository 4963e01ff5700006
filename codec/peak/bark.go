package peak

import (
	"math"
	"sort"
)

// DefaultBands is the number of critical bands used for salience weighting.
const DefaultBands = 24

const (
	bandEnergyFloor = 1e-12
	salienceFloor   = 1e-9
)

// Bark returns the critical-band rate of freqHz on the Zwicker scale.
func Bark(freqHz float64) float64 {
	return 13*math.Atan(0.00076*freqHz) + 3.5*math.Atan((freqHz/7500)*(freqHz/7500))
}

// BarkEdges partitions bins [0, binCount) into bands of equal width on the
// Bark scale between 0 Hz and Nyquist. The result has bands+1 ascending
// entries; band b covers bins edges[b] to edges[b+1]-1. Bands narrower than a
// bin are merged, so fewer than bands bands may be returned.
func BarkEdges(binCount int, sampleRate float64, bands int) []int {
	if binCount <= 0 {
		return nil
	}
	if bands <= 0 {
		bands = DefaultBands
	}
	if binCount == 1 || sampleRate <= 0 {
		return []int{0, binCount}
	}

	binHz := sampleRate / 2 / float64(binCount-1)
	top := Bark(sampleRate / 2)

	edges := []int{0}
	for b := 1; b < bands; b++ {
		target := top * float64(b) / float64(bands)
		// first bin whose Bark rate reaches the target
		k := sort.Search(binCount, func(i int) bool { return Bark(float64(i)*binHz) >= target })
		if k > edges[len(edges)-1] && k < binCount {
			edges = append(edges, k)
		}
	}
	return append(edges, binCount)
}

// BandEnergy returns the energy of each band: the sum of squared magnitudes
// plus a small floor so silent bands stay positive.
func BandEnergy(mag []float64, edges []int) []float64 {
	if len(edges) < 2 {
		return nil
	}
	out := make([]float64, len(edges)-1)
	for b := range out {
		e := bandEnergyFloor
		for k := edges[b]; k < edges[b+1] && k < len(mag); k++ {
			e += mag[k] * mag[k]
		}
		out[b] = e
	}
	return out
}

// Salience returns mag[k]^2 / (E_band(k) + 1e-9) for every bin.
func Salience(mag []float64, edges []int) []float64 {
	energy := BandEnergy(mag, edges)
	out := make([]float64, len(mag))
	for b, e := range energy {
		for k := edges[b]; k < edges[b+1] && k < len(mag); k++ {
			out[k] = mag[k] * mag[k] / (e + salienceFloor)
		}
	}
	return out
}
