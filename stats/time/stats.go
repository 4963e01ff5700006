// Package time computes level statistics of time-domain signals.
package time

import (
	"math"

	"github.com/cwbudde/algo-codec/dsp/core"
)

// Stats holds level statistics of a signal.
//
//nolint:revive
type Stats struct {
	Length      int
	DC          float64 // mean
	RMS         float64
	RMS_dB      float64
	Peak        float64 // max |x|
	PeakPos     int
	Peak_dB     float64
	CrestFactor float64 // peak / RMS (linear)
	Energy      float64 // sum of squares
}

// Calculate computes all statistics in one pass. The mean uses Kahan
// summation. An empty signal yields zero values with -Inf dB levels.
func Calculate(signal []float64) Stats {
	s := Stats{Length: len(signal)}
	if len(signal) == 0 {
		s.RMS_dB = math.Inf(-1)
		s.Peak_dB = math.Inf(-1)
		return s
	}

	var sum, comp float64
	for i, x := range signal {
		y := x - comp
		t := sum + y
		comp = (t - sum) - y
		sum = t

		s.Energy += x * x
		if a := math.Abs(x); a > s.Peak {
			s.Peak = a
			s.PeakPos = i
		}
	}

	n := float64(len(signal))
	s.DC = sum / n
	s.RMS = math.Sqrt(s.Energy / n)
	s.RMS_dB = core.LinearToDB(s.RMS)
	s.Peak_dB = core.LinearToDB(s.Peak)
	if s.RMS > 0 {
		s.CrestFactor = s.Peak / s.RMS
	}
	return s
}

// RMS returns the root-mean-square of the signal.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	var sumSq float64
	for _, x := range signal {
		sumSq += x * x
	}
	return math.Sqrt(sumSq / float64(len(signal)))
}

// Peak returns the peak absolute amplitude of the signal.
func Peak(signal []float64) float64 {
	peak := 0.0
	for _, x := range signal {
		peak = math.Max(peak, math.Abs(x))
	}
	return peak
}

// Duration returns the length of n samples at sampleRate in seconds, or 0 for
// a non-positive rate.
func Duration(n int, sampleRate float64) float64 {
	if sampleRate <= 0 {
		return 0
	}
	return float64(n) / sampleRate
}
