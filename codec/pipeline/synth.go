package pipeline

import (
	"github.com/cwbudde/algo-codec/codec/bitstream"
	"github.com/cwbudde/algo-codec/codec/residual"
	"github.com/cwbudde/algo-codec/codec/track"
	"github.com/cwbudde/algo-codec/dsp/core"
	"github.com/cwbudde/algo-codec/dsp/spectrum"
	"github.com/cwbudde/algo-codec/dsp/transform"
	"github.com/cwbudde/algo-vecmath"
)

// synthesizer overlap-adds track frames into a signal. The encoder's residual
// pass and the decoder share it, so both see the same track-only signal.
type synthesizer struct {
	stft *transform.STFT
	spec []complex128
	out  []float64
	norm []float64
}

func newSynthesizer(stft *transform.STFT, length int) *synthesizer {
	return &synthesizer{
		stft: stft,
		spec: make([]complex128, stft.FrameSize()),
		out:  make([]float64, length),
		norm: make([]float64, length),
	}
}

// add places each track at its bin and overlap-adds the frame at pos. Tracks
// sharing a bin add up.
func (s *synthesizer) add(tracks []track.Track, pos int) error {
	core.Zero(s.spec)
	for _, t := range tracks {
		s.spec[t.Bin] += s.stft.BinValue(t.Bin, t.Magnitude, t.Phase)
	}
	spectrum.Mirror(s.spec)
	return s.stft.Synthesize(s.out, s.norm, s.spec, pos)
}

// signal normalizes the accumulated frames and returns the result. It must be
// called once, after the last add.
func (s *synthesizer) signal() []float64 {
	transform.Normalize(s.out, s.norm)
	return s.out
}

// residualLayer maps between signal blocks and gated, scaled MDCT
// coefficients. Block f covers samples [f*hop, f*hop+2*hop).
type residualLayer struct {
	mdct   *transform.MDCT
	q      residual.Quantizer
	gate   float64
	scale  float64
	coeffs []float64
}

func newResidualLayer(eng *transform.Engine, h Header) (*residualLayer, error) {
	mdct, err := eng.NewMDCT(h.HopSize)
	if err != nil {
		return nil, err
	}
	q, err := residual.NewQuantizer(float64(h.ResidualStep))
	if err != nil {
		return nil, err
	}
	return &residualLayer{
		mdct:   mdct,
		q:      q,
		gate:   residual.Threshold(float64(h.PeakReference), float64(h.ThresholdDB)),
		scale:  2 / float64(h.HopSize),
		coeffs: make([]float64, h.HopSize),
	}, nil
}

// encode writes the residual record for the block of diff at pos and
// returns the number of coded coefficients.
func (l *residualLayer) encode(w *bitstream.Writer, diff []float64, pos int) (int, error) {
	if err := l.mdct.Forward(l.coeffs, diff, pos); err != nil {
		return 0, err
	}
	vecmath.ScaleBlockInPlace(l.coeffs, l.scale)
	return residual.Encode(w, l.coeffs, l.gate, l.q), nil
}

// decode reads one residual record and overlap-adds its block into out at
// pos. It returns the number of non-zero coefficients.
func (l *residualLayer) decode(r *bitstream.Reader, out []float64, pos int) (int, error) {
	if err := residual.Decode(r, l.coeffs, l.q); err != nil {
		return 0, err
	}
	nonzero := 0
	for _, c := range l.coeffs {
		if c != 0 {
			nonzero++
		}
	}
	vecmath.ScaleBlockInPlace(l.coeffs, 1/l.scale)
	if out == nil {
		return nonzero, nil
	}
	return nonzero, l.mdct.InverseAdd(out, l.coeffs, pos)
}
