// Package residual codes sparse coefficient arrays with zero-run suppression.
//
// Coefficients below a threshold, or that quantize to zero, extend a run of
// zeros. Every other coefficient is written as a (run, value) pair: the
// preceding zero run as Rice(k=0) and the quantized value as signed
// Rice(k=3). The final zero run is written alone, followed by the sentinel
// pair (0, 0).
package residual

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-codec/codec/bitstream"
	"github.com/cwbudde/algo-codec/codec/codecerr"
	"github.com/cwbudde/algo-codec/codec/rice"
	"github.com/cwbudde/algo-codec/dsp/core"
)

const (
	runK   = 0
	valueK = 3
)

// ErrStep is returned for non-positive quantizer steps.
var ErrStep = errors.New("residual: quantizer step must be > 0")

// Quantizer maps coefficients to integers with a uniform step.
type Quantizer struct {
	Step float64
}

// NewQuantizer validates step and returns the quantizer.
func NewQuantizer(step float64) (Quantizer, error) {
	if !(step > 0) || math.IsInf(step, 0) {
		return Quantizer{}, fmt.Errorf("%w: %v", ErrStep, step)
	}
	return Quantizer{Step: step}, nil
}

// Quantize returns round(c/Step), saturated to the int32 range.
func (q Quantizer) Quantize(c float64) int32 {
	v := math.Round(c / q.Step)
	switch {
	case v > math.MaxInt32:
		return math.MaxInt32
	case v < math.MinInt32+1:
		return math.MinInt32 + 1
	case math.IsNaN(v):
		return 0
	}
	return int32(v)
}

// Dequantize returns v*Step.
func (q Quantizer) Dequantize(v int32) float64 {
	return float64(v) * q.Step
}

// Encode writes coeffs to w and returns the number of coefficients that
// survived gating.
func Encode(w *bitstream.Writer, coeffs []float64, threshold float64, q Quantizer) int {
	run := uint32(0)
	survivors := 0
	for _, c := range coeffs {
		if math.Abs(c) < threshold {
			run++
			continue
		}
		v := q.Quantize(c)
		if v == 0 {
			run++
			continue
		}
		rice.EncodeUnsigned(w, run, runK)
		rice.EncodeSigned(w, v, valueK)
		run = 0
		survivors++
	}

	rice.EncodeUnsigned(w, run, runK)
	rice.EncodeUnsigned(w, 0, runK)
	rice.EncodeSigned(w, 0, valueK)
	return survivors
}

// Decode zero-fills coeffs and replays the pairs written by Encode for an
// array of the same length. A run that reaches the end of coeffs is the tail
// run and must be followed by the sentinel. A (0, 0) pair before that stops
// decoding early.
func Decode(r *bitstream.Reader, coeffs []float64, q Quantizer) error {
	for i := range coeffs {
		coeffs[i] = 0
	}

	pos := 0
	for {
		run := int(rice.DecodeUnsigned(r, runK))
		if run >= len(coeffs)-pos {
			sr := rice.DecodeUnsigned(r, runK)
			sv := rice.DecodeSigned(r, valueK)
			if err := r.Err(); err != nil {
				return fmt.Errorf("residual: %w", err)
			}
			if sr != 0 || sv != 0 {
				return codecerr.Formatf("residual: missing sentinel after tail run, got (%d, %d)", sr, sv)
			}
			return nil
		}

		v := rice.DecodeSigned(r, valueK)
		if run == 0 && v == 0 {
			return r.Err()
		}
		pos += run
		coeffs[pos] = q.Dequantize(v)
		pos++
	}
}

// Threshold converts a level in dB below peak into an absolute gate.
func Threshold(peak, belowDB float64) float64 {
	return peak * core.DBToLinear(-belowDB)
}
