// Package fidelity compares a decoded signal against its original.
package fidelity

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-codec/dsp/core"
	"github.com/cwbudde/algo-codec/dsp/spectrum"
	"github.com/cwbudde/algo-codec/dsp/transform"
	frequencystats "github.com/cwbudde/algo-codec/stats/frequency"
	timestats "github.com/cwbudde/algo-codec/stats/time"
	"github.com/cwbudde/algo-vecmath"
)

// ErrEmpty is returned when either signal has no samples.
var ErrEmpty = errors.New("fidelity: empty signal")

// eps keeps ratios of silent signals finite.
const eps = 1e-12

const (
	shapeFrame = 2048
	shapeHop   = 1024
)

// Metrics are sample-by-sample error measures over the common prefix of two
// signals.
type Metrics struct {
	Compared  int
	MSE       float64
	SNR       float64 // dB, signal energy over error energy
	PSNR      float64 // dB, squared original peak over MSE
	PeakError float64
}

// Report is a full comparison. Levels and spectral shapes describe each whole
// signal; Metrics only the overlap.
type Report struct {
	Metrics

	SampleRate       float64
	Original         timestats.Stats
	Decoded          timestats.Stats
	OriginalSpectrum frequencystats.Stats
	DecodedSpectrum  frequencystats.Stats
}

// OriginalDuration returns the original length in seconds.
func (r Report) OriginalDuration() float64 {
	return timestats.Duration(r.Original.Length, r.SampleRate)
}

// DecodedDuration returns the decoded length in seconds.
func (r Report) DecodedDuration() float64 {
	return timestats.Duration(r.Decoded.Length, r.SampleRate)
}

// Measure computes Metrics over min(len(orig), len(dec)) samples.
func Measure(orig, dec []float64) (Metrics, error) {
	n := min(len(orig), len(dec))
	if n == 0 {
		return Metrics{}, ErrEmpty
	}

	var errSum, sigSum, maxOrig, peakErr float64
	for i := range n {
		e := orig[i] - dec[i]
		errSum += e * e
		sigSum += orig[i] * orig[i]
		peakErr = math.Max(peakErr, math.Abs(e))
		maxOrig = math.Max(maxOrig, math.Abs(orig[i]))
	}

	mse := errSum / float64(n)
	return Metrics{
		Compared:  n,
		MSE:       mse,
		SNR:       core.PowerRatioDB(sigSum, errSum, eps),
		PSNR:      core.PowerRatioDB(maxOrig*maxOrig, mse, eps),
		PeakError: peakErr,
	}, nil
}

// Compare measures dec against orig and describes both signals.
func Compare(orig, dec []float64, sampleRate float64) (Report, error) {
	m, err := Measure(orig, dec)
	if err != nil {
		return Report{}, err
	}

	eng := transform.NewEngine()
	defer eng.Close()

	origShape, err := SpectralShape(eng, orig, sampleRate)
	if err != nil {
		return Report{}, err
	}
	decShape, err := SpectralShape(eng, dec, sampleRate)
	if err != nil {
		return Report{}, err
	}

	return Report{
		Metrics:          m,
		SampleRate:       sampleRate,
		Original:         timestats.Calculate(orig),
		Decoded:          timestats.Calculate(dec),
		OriginalSpectrum: origShape,
		DecodedSpectrum:  decShape,
	}, nil
}

// SpectralShape describes the long-term average magnitude spectrum of x.
// Signals shorter than one analysis frame are zero-padded.
func SpectralShape(eng *transform.Engine, x []float64, sampleRate float64) (frequencystats.Stats, error) {
	stft, err := eng.NewSTFT(shapeFrame, shapeHop)
	if err != nil {
		return frequencystats.Stats{}, err
	}

	frames := max(stft.FrameCount(len(x)), 1)
	spec := make([]complex128, stft.FrameSize())
	mag := make([]float64, stft.Bins())
	avg := make([]float64, stft.Bins())
	for f := range frames {
		if err := stft.Analyze(spec, x, f*stft.Hop()); err != nil {
			return frequencystats.Stats{}, err
		}
		spectrum.MagnitudeInto(mag, spec[:stft.Bins()])
		vecmath.AddBlockInPlace(avg, mag)
	}
	vecmath.ScaleBlockInPlace(avg, 1/float64(frames))
	return frequencystats.Calculate(avg, sampleRate), nil
}
