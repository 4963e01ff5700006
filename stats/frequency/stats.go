// Package frequency computes shape descriptors of one-sided magnitude
// spectra.
//
// A spectrum holds bins 0 (DC) to Nyquist, so bin i of a spectrum with n bins
// sits at i*sampleRate/(2*(n-1)) Hz.
package frequency

import "math"

// DefaultRolloff is the energy fraction used by Calculate for Rolloff.
const DefaultRolloff = 0.85

// Stats holds spectral shape descriptors.
type Stats struct {
	BinCount int
	PeakBin  int
	PeakFreq float64 // Hz
	Centroid float64 // Hz
	Spread   float64 // Hz, standard deviation around the centroid
	Flatness float64 // 0..1
	Rolloff  float64 // Hz below which DefaultRolloff of the energy lies
}

// BinFrequency returns the frequency in Hz of bin i in a spectrum of binCount
// bins.
func BinFrequency(i, binCount int, sampleRate float64) float64 {
	if binCount < 2 {
		return 0
	}
	return float64(i) * sampleRate / float64(2*(binCount-1))
}

// Calculate computes all descriptors of a linear magnitude spectrum.
func Calculate(magnitude []float64, sampleRate float64) Stats {
	n := len(magnitude)
	s := Stats{BinCount: n}
	if n < 2 {
		return s
	}

	var sum, energy float64
	for i, v := range magnitude {
		sum += v
		energy += v * v
		if v > magnitude[s.PeakBin] {
			s.PeakBin = i
		}
	}
	s.PeakFreq = BinFrequency(s.PeakBin, n, sampleRate)
	s.Centroid = centroid(magnitude, sampleRate, sum)
	s.Spread = spread(magnitude, sampleRate, s.Centroid, sum)
	s.Flatness = Flatness(magnitude)
	s.Rolloff = rolloff(magnitude, sampleRate, DefaultRolloff, energy)
	return s
}

// centroid returns sum(f_i*|X_i|) / sum(|X_i|). An empty or silent spectrum
// yields 0.
func centroid(magnitude []float64, sampleRate, sum float64) float64 {
	n := len(magnitude)
	if n < 2 || sum == 0 {
		return 0
	}
	weighted := 0.0
	for i, v := range magnitude {
		weighted += BinFrequency(i, n, sampleRate) * v
	}
	return weighted / sum
}

func spread(magnitude []float64, sampleRate, cent, sum float64) float64 {
	n := len(magnitude)
	if n < 2 || sum == 0 {
		return 0
	}
	acc := 0.0
	for i, v := range magnitude {
		d := BinFrequency(i, n, sampleRate) - cent
		acc += d * d * v
	}
	return math.Sqrt(acc / sum)
}

// Flatness returns the ratio of geometric to arithmetic mean of bins 1..n-1.
// Any zero bin makes it 0.
func Flatness(magnitude []float64) float64 {
	if len(magnitude) < 2 {
		return 0
	}

	var sumLin, sumLog float64
	for _, v := range magnitude[1:] {
		if v <= 0 {
			return 0
		}
		sumLin += v
		sumLog += math.Log(v)
	}
	bins := float64(len(magnitude) - 1)
	return math.Exp(sumLog/bins) / (sumLin / bins)
}

// rolloff returns the frequency below which the fraction percent of the
// spectral energy (sum of squared magnitudes) lies.
func rolloff(magnitude []float64, sampleRate, percent, energy float64) float64 {
	n := len(magnitude)
	if n < 2 || energy == 0 {
		return 0
	}
	limit := percent * energy
	acc := 0.0
	for i, v := range magnitude {
		acc += v * v
		if acc >= limit {
			return BinFrequency(i, n, sampleRate)
		}
	}
	return BinFrequency(n-1, n, sampleRate)
}
