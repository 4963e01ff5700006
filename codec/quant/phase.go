package quant

import (
	"math"
	"math/cmplx"
)

// DefaultPhaseLevels is the bucket count of the differential phase quantizer.
const DefaultPhaseLevels = 64

// Wrap maps phi onto (-pi, pi] through the unit circle.
func Wrap(phi float64) float64 {
	return cmplx.Phase(cmplx.Rect(1, phi))
}

// WrapDelta returns the wrapped difference phase-predicted, computed as the
// argument of exp(i*phase)*conj(exp(i*predicted)).
func WrapDelta(phase, predicted float64) float64 {
	return cmplx.Phase(cmplx.Rect(1, phase) * cmplx.Conj(cmplx.Rect(1, predicted)))
}

// LinearPhase quantizes absolute phases uniformly: -pi maps to 0 and pi to
// 2^Bits-1.
type LinearPhase struct {
	Bits uint
}

// NewLinearPhase validates bits and returns the quantizer.
func NewLinearPhase(bits uint) (LinearPhase, error) {
	if err := ValidateBits(bits); err != nil {
		return LinearPhase{}, err
	}
	return LinearPhase{Bits: bits}, nil
}

// Quantize returns round((phi+pi)/(2pi)*(2^Bits-1)), saturated to the code range.
func (q LinearPhase) Quantize(phi float64) uint32 {
	top := float64(MaxLevel(q.Bits))
	v := math.Round((phi + math.Pi) / (2 * math.Pi) * top)
	switch {
	case !(v > 0):
		return 0
	case v > top:
		return uint32(top)
	default:
		return uint32(v)
	}
}

// Dequantize inverts Quantize.
func (q LinearPhase) Dequantize(code uint32) float64 {
	top := float64(MaxLevel(q.Bits))
	return float64(code)/top*2*math.Pi - math.Pi
}

// DeltaPhase quantizes the wrapped difference between a phase and its
// prediction into Levels uniform buckets over [-pi, pi).
type DeltaPhase struct {
	Levels uint32
}

func (q DeltaPhase) levels() uint32 {
	if q.Levels == 0 {
		return DefaultPhaseLevels
	}
	return q.Levels
}

// Quantize returns floor((WrapDelta(phase, predicted)+pi)/(2pi)*Levels),
// saturated into [0, Levels).
func (q DeltaPhase) Quantize(phase, predicted float64) uint32 {
	levels := q.levels()
	d := WrapDelta(phase, predicted)
	b := math.Floor((d + math.Pi) / (2 * math.Pi) * float64(levels))
	switch {
	case !(b > 0):
		return 0
	case b >= float64(levels):
		return levels - 1
	default:
		return uint32(b)
	}
}

// Dequantize adds the center of bucket to predicted and wraps the sum.
// Buckets beyond the range are saturated.
func (q DeltaPhase) Dequantize(bucket uint32, predicted float64) float64 {
	levels := q.levels()
	if bucket >= levels {
		bucket = levels - 1
	}
	d := (float64(bucket)+0.5)/float64(levels)*2*math.Pi - math.Pi
	return Wrap(predicted + d)
}
