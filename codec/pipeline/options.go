package pipeline

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-codec/codec/quant"
	"github.com/cwbudde/algo-codec/codec/track"
	"github.com/cwbudde/algo-codec/dsp/core"
)

// Encoder defaults.
const (
	DefaultFrameSize    = 2048
	DefaultHopSize      = 512
	DefaultTopK         = 128
	DefaultMagBits      = 12
	DefaultPhaseBits    = 8
	DefaultThresholdDB  = 60
	DefaultResidualStep = 0.01
)

type config struct {
	format       track.Format
	frameSize    int
	hopSize      int
	topK         int
	magBits      uint
	phaseBits    uint
	thresholdDB  int
	salience     bool
	residual     bool
	residualStep float64
}

func defaultConfig() config {
	return config{
		format:       track.DefaultFormat,
		frameSize:    DefaultFrameSize,
		hopSize:      DefaultHopSize,
		topK:         DefaultTopK,
		magBits:      DefaultMagBits,
		phaseBits:    DefaultPhaseBits,
		thresholdDB:  DefaultThresholdDB,
		residualStep: DefaultResidualStep,
	}
}

// Option configures an [Encoder].
type Option func(*config) error

// WithFormat selects the track layout (default track.RiceDifferential).
func WithFormat(f track.Format) Option {
	return func(cfg *config) error {
		if !f.Valid() {
			return fmt.Errorf("pipeline: invalid track format: %d", uint8(f))
		}
		cfg.format = f
		return nil
	}
}

// WithFrameSize sets the analysis frame size, a power of two in [16, 32768]
// (default 2048).
func WithFrameSize(n int) Option {
	return func(cfg *config) error {
		if n < minFrameSize || n > math.MaxUint16 || !core.IsPowerOfTwo(n) {
			return fmt.Errorf("pipeline: frame size must be a power of two in [%d, 32768]: %d", minFrameSize, n)
		}
		cfg.frameSize = n
		return nil
	}
}

// WithHopSize sets the frame advance in samples (default 512). It must not
// exceed the frame size.
func WithHopSize(n int) Option {
	return func(cfg *config) error {
		if n <= 0 || n > math.MaxUint16 {
			return fmt.Errorf("pipeline: hop size must be in [1, %d]: %d", math.MaxUint16, n)
		}
		cfg.hopSize = n
		return nil
	}
}

// WithTopK sets the number of tracks kept per frame (default 128).
func WithTopK(k int) Option {
	return func(cfg *config) error {
		if k <= 0 || k > math.MaxUint16 {
			return fmt.Errorf("pipeline: top-k must be in [1, %d]: %d", math.MaxUint16, k)
		}
		cfg.topK = k
		return nil
	}
}

// WithQuantBits sets the magnitude and phase quantizer widths (default 12:8).
// The Rice layout codes phase differences in 64 buckets and only uses the
// magnitude width.
func WithQuantBits(magBits, phaseBits uint) Option {
	return func(cfg *config) error {
		if err := quant.ValidateBits(magBits); err != nil {
			return fmt.Errorf("pipeline: magnitude: %w", err)
		}
		if err := quant.ValidateBits(phaseBits); err != nil {
			return fmt.Errorf("pipeline: phase: %w", err)
		}
		cfg.magBits, cfg.phaseBits = magBits, phaseBits
		return nil
	}
}

// WithThresholdDB sets the residual gate in dB below the peak reference
// (default 60).
func WithThresholdDB(db int) Option {
	return func(cfg *config) error {
		if db < 0 || db > math.MaxUint16 {
			return fmt.Errorf("pipeline: threshold must be in [0, %d] dB: %d", math.MaxUint16, db)
		}
		cfg.thresholdDB = db
		return nil
	}
}

// WithSalience enables Bark-band salience weighting for peak selection.
func WithSalience(enabled bool) Option {
	return func(cfg *config) error {
		cfg.salience = enabled
		return nil
	}
}

// WithResidual enables the residual layer with the given quantizer step
// (coefficients are in units of sample amplitude).
func WithResidual(step float64) Option {
	return func(cfg *config) error {
		if !(step > 0) || math.IsInf(step, 0) || float32(step) == 0 {
			return fmt.Errorf("pipeline: residual step must be > 0 and finite: %v", step)
		}
		cfg.residual = true
		cfg.residualStep = step
		return nil
	}
}

func (cfg config) flags() Flags {
	var f Flags
	if cfg.residual {
		f |= FlagResidual
	}
	if cfg.salience {
		f |= FlagSalience
	}
	return f
}

// header returns the stream header for the given input. Encoders validate a
// probe header at construction, so only the input-dependent fields can fail.
func (cfg config) header(sampleRate, frames int, peak, rms float64) Header {
	h := Header{
		FrameSize:     cfg.frameSize,
		HopSize:       cfg.hopSize,
		SampleRate:    sampleRate,
		PeakReference: float32(peak),
		RMSReference:  float32(rms),
		TopK:          cfg.topK,
		MagBits:       cfg.magBits,
		PhaseBits:     cfg.phaseBits,
		ThresholdDB:   cfg.thresholdDB,
		TotalFrames:   frames,
		Format:        cfg.format,
		Flags:         cfg.flags(),
	}
	if cfg.residual {
		h.ResidualStep = float32(cfg.residualStep)
	}
	return h
}

type decodeConfig struct {
	strict    bool
	gainMatch bool
}

// DecodeOption configures a [Decoder].
type DecodeOption func(*decodeConfig)

// WithStrict makes a stream that ends early fail with codecerr.ErrTruncated
// instead of decoding the missing bits as zeros.
func WithStrict() DecodeOption {
	return func(cfg *decodeConfig) { cfg.strict = true }
}

// WithGainMatch enables or disables scaling the output so its peak equals the
// header's peak reference (default true).
func WithGainMatch(enabled bool) DecodeOption {
	return func(cfg *decodeConfig) { cfg.gainMatch = enabled }
}
