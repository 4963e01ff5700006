package quant

import (
	"errors"
	"fmt"
	"math"
)

// ErrBits is returned for bit widths outside [1, 32].
var ErrBits = errors.New("quant: bit width must be in [1, 32]")

// minPeakReference is the smallest peak reference that yields a usable scale.
const minPeakReference = 1e-12

// MaxLevel returns 2^bits-1, the largest code of a bits-wide quantizer.
func MaxLevel(bits uint) uint32 {
	if bits >= 32 {
		return math.MaxUint32
	}
	return 1<<bits - 1
}

// ValidateBits reports whether bits is a supported quantizer width.
func ValidateBits(bits uint) error {
	if bits < 1 || bits > 32 {
		return fmt.Errorf("%w: %d", ErrBits, bits)
	}
	return nil
}

// LinearMagnitude quantizes magnitudes uniformly onto [0, 2^Bits-1], with the
// largest code representing PeakReference.
type LinearMagnitude struct {
	Bits          uint
	PeakReference float64
}

// NewLinearMagnitude validates bits and returns the quantizer.
func NewLinearMagnitude(bits uint, peakReference float64) (LinearMagnitude, error) {
	if err := ValidateBits(bits); err != nil {
		return LinearMagnitude{}, err
	}
	return LinearMagnitude{Bits: bits, PeakReference: peakReference}, nil
}

func (q LinearMagnitude) scale() float64 {
	if q.PeakReference <= minPeakReference {
		return 0
	}
	return float64(MaxLevel(q.Bits)) / q.PeakReference
}

// Quantize returns round(mag*(2^Bits-1)/PeakReference) clamped to the code
// range. A negligible peak reference quantizes everything to 0.
func (q LinearMagnitude) Quantize(mag float64) uint32 {
	s := q.scale()
	if s == 0 || !(mag > 0) {
		return 0
	}
	v := math.Round(mag * s)
	top := float64(MaxLevel(q.Bits))
	if v > top {
		v = top
	}
	return uint32(v)
}

// Dequantize inverts Quantize.
func (q LinearMagnitude) Dequantize(code uint32) float64 {
	s := q.scale()
	if s == 0 {
		return 0
	}
	return float64(code) / s
}

// LogMagnitude quantizes magnitudes as round(log1p(mag*Scale)/Step).
//
// With Scale 1 this is the plain log1p quantizer. Larger scales spend more
// codes on small magnitudes.
type LogMagnitude struct {
	Step  float64
	Scale float64
}

// DefaultLogStep is the log-domain step used by the differential track format.
const DefaultLogStep = 0.125

// NewLogMagnitude returns a log quantizer whose scale maps peakReference onto
// 2^bits-1 before the log1p. A negligible peak reference uses scale 1.
func NewLogMagnitude(bits uint, peakReference float64) (LogMagnitude, error) {
	if err := ValidateBits(bits); err != nil {
		return LogMagnitude{}, err
	}
	scale := 1.0
	if peakReference > minPeakReference {
		scale = float64(MaxLevel(bits)) / peakReference
	}
	return LogMagnitude{Step: DefaultLogStep, Scale: scale}, nil
}

func (q LogMagnitude) params() (step, scale float64) {
	step, scale = q.Step, q.Scale
	if step <= 0 {
		step = DefaultLogStep
	}
	if scale <= 0 {
		scale = 1
	}
	return step, scale
}

// Quantize returns the log-domain code of mag. Non-positive magnitudes map to 0.
func (q LogMagnitude) Quantize(mag float64) int32 {
	if !(mag > 0) {
		return 0
	}
	step, scale := q.params()
	v := math.Round(log1p(mag*scale) / step)
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	return int32(v)
}

// Dequantize inverts Quantize. Negative codes, which only a corrupt stream
// can carry, decode to 0.
func (q LogMagnitude) Dequantize(code int32) float64 {
	if code <= 0 {
		return 0
	}
	step, scale := q.params()
	return math.Expm1(float64(code)*step) / scale
}
