package transform

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-codec/dsp/spectrum"
	"github.com/cwbudde/algo-codec/dsp/window"
)

// normFloorRatio bounds the overlap-add normalization from below, relative to
// the steady-state weight, so the partially covered edges of a signal fade
// out instead of being amplified.
const normFloorRatio = 0.1

// STFT is a periodic-Hann short-time Fourier transform with fixed frame and
// hop size.
type STFT struct {
	engine *Engine
	plan   *algofft.Plan[complex128]

	size   int
	hop    int
	window []float64
	winSum float64

	frame []float64
	buf   []complex128
}

// NewSTFT creates an STFT with the given frame size and hop.
// frameSize must be a power of two; hop must be in [1, frameSize].
func (e *Engine) NewSTFT(frameSize, hop int) (*STFT, error) {
	if hop <= 0 || hop > frameSize {
		return nil, fmt.Errorf("transform: stft hop must be in [1, %d]: %d", frameSize, hop)
	}
	plan, err := e.Plan(frameSize)
	if err != nil {
		return nil, err
	}

	w := window.Generate(window.TypeHann, frameSize, window.WithPeriodic())
	return &STFT{
		engine: e,
		plan:   plan,
		size:   frameSize,
		hop:    hop,
		window: w,
		winSum: window.Sum(w),
		frame:  make([]float64, frameSize),
		buf:    make([]complex128, frameSize),
	}, nil
}

// FrameSize returns the transform size.
func (s *STFT) FrameSize() int { return s.size }

// Hop returns the hop size in samples.
func (s *STFT) Hop() int { return s.hop }

// Bins returns the number of non-redundant bins, FrameSize/2+1.
func (s *STFT) Bins() int { return s.size/2 + 1 }

// Window returns the analysis/synthesis window. It must not be modified.
func (s *STFT) Window() []float64 { return s.window }

// Amplitude converts the magnitude of bin k of an analyzed frame into the
// amplitude of the sinusoid that produced it.
func (s *STFT) Amplitude(k int, magnitude float64) float64 {
	if k == 0 || k == s.size/2 {
		return magnitude / s.winSum
	}
	return 2 * magnitude / s.winSum
}

// BinValue is the inverse of Amplitude: it returns the bin value an analyzed
// frame holds for a sinusoid of the given amplitude and phase at bin k.
func (s *STFT) BinValue(k int, amplitude, phase float64) complex128 {
	scale := s.winSum / 2
	if k == 0 || k == s.size/2 {
		scale = s.winSum
	}
	return spectrum.Polar(amplitude*scale, phase)
}

func (s *STFT) check() error {
	if s.engine.closed {
		return ErrClosed
	}
	return nil
}

// Analyze windows the frame of x starting at pos and transforms it into dst.
// Samples past either end of x read as zero. dst must hold FrameSize values.
func (s *STFT) Analyze(dst []complex128, x []float64, pos int) error {
	if err := s.check(); err != nil {
		return err
	}
	if len(dst) != s.size {
		return fmt.Errorf("%w: stft analyze dst %d != %d", ErrLength, len(dst), s.size)
	}

	for i := range s.frame {
		v := 0.0
		if idx := pos + i; idx >= 0 && idx < len(x) {
			v = x[idx]
		}
		s.frame[i] = v
	}
	if err := window.ApplyCoefficientsInPlace(s.frame, s.window); err != nil {
		return fmt.Errorf("transform: stft window: %w", err)
	}
	for i, v := range s.frame {
		dst[i] = complex(v, 0)
	}

	if err := s.plan.Forward(dst, dst); err != nil {
		return fmt.Errorf("transform: stft forward: %w", err)
	}
	return nil
}

// Synthesize inverse-transforms a full-size spectrum, re-windows it and
// overlap-adds the real part into out at pos, accumulating the squared window
// into norm. Samples beyond out are dropped. spec is not modified.
func (s *STFT) Synthesize(out, norm []float64, spec []complex128, pos int) error {
	if err := s.check(); err != nil {
		return err
	}
	if len(spec) != s.size {
		return fmt.Errorf("%w: stft synthesize spectrum %d != %d", ErrLength, len(spec), s.size)
	}
	if len(norm) < len(out) {
		return fmt.Errorf("%w: stft norm %d < out %d", ErrLength, len(norm), len(out))
	}

	if err := s.plan.Inverse(s.buf, spec); err != nil {
		return fmt.Errorf("transform: stft inverse: %w", err)
	}

	for i := range s.size {
		idx := pos + i
		if idx < 0 || idx >= len(out) {
			continue
		}
		w := s.window[i]
		out[idx] += real(s.buf[i]) * w
		norm[idx] += w * w
	}
	return nil
}

// Normalize divides out by the accumulated weight in norm. Weights below 10%
// of the largest weight are clamped to that floor.
func Normalize(out, norm []float64) {
	peak := 0.0
	for _, v := range norm[:len(out)] {
		peak = math.Max(peak, v)
	}
	if peak <= 0 {
		return
	}
	floor := normFloorRatio * peak
	for i := range out {
		out[i] /= math.Max(norm[i], floor)
	}
}

// FrameCount returns the number of full frames that fit in n samples, or 0
// when n is shorter than one frame.
func (s *STFT) FrameCount(n int) int {
	if n < s.size {
		return 0
	}
	return (n-s.size)/s.hop + 1
}

// Forward analyzes every full frame of x.
func (s *STFT) Forward(x []float64) ([][]complex128, error) {
	frames := make([][]complex128, s.FrameCount(len(x)))
	for f := range frames {
		frames[f] = make([]complex128, s.size)
		if err := s.Analyze(frames[f], x, f*s.hop); err != nil {
			return nil, err
		}
	}
	return frames, nil
}

// Inverse overlap-adds frames produced by Forward into a signal of the given
// length and normalizes it.
func (s *STFT) Inverse(frames [][]complex128, length int) ([]float64, error) {
	out := make([]float64, length)
	norm := make([]float64, length)
	for f, spec := range frames {
		if err := s.Synthesize(out, norm, spec, f*s.hop); err != nil {
			return nil, err
		}
	}
	Normalize(out, norm)
	return out, nil
}
