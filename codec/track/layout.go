package track

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-codec/codec/bitstream"
	"github.com/cwbudde/algo-codec/codec/codecerr"
	"github.com/cwbudde/algo-codec/codec/quant"
	"github.com/cwbudde/algo-codec/codec/rice"
	"github.com/cwbudde/algo-codec/dsp/core"
)

// layout is one wire format. encode returns the reconstructed tracks.
type layout interface {
	encode(w *bitstream.Writer, tracks []Track, pred Predictor, dst []Track) ([]Track, error)
	decode(r *bitstream.Reader, pred Predictor, dst []Track) ([]Track, error)
}

func newLayout(p Params) (layout, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	switch p.Format {
	case FixedWidthPeak:
		return &fixedLayout{
			maxBin: p.MaxBin(),
			mag:    quant.LinearMagnitude{Bits: p.MagBits, PeakReference: p.PeakReference},
			phase:  quant.LinearPhase{Bits: p.PhaseBits},
		}, nil
	default:
		mag, err := quant.NewLogMagnitude(p.MagBits, p.PeakReference)
		if err != nil {
			return nil, err
		}
		return &riceLayout{
			maxBin: p.MaxBin(),
			mag:    mag,
			phase:  quant.DeltaPhase{Levels: quant.DefaultPhaseLevels},
		}, nil
	}
}

func checkTracks(tracks []Track, maxBin, maxCount int) error {
	if len(tracks) > maxCount {
		return fmt.Errorf("%w: %d tracks, at most %d", ErrInvalidTrack, len(tracks), maxCount)
	}
	for i, t := range tracks {
		if t.Bin < 0 || t.Bin > maxBin {
			return fmt.Errorf("%w: track %d bin %d outside [0, %d]", ErrInvalidTrack, i, t.Bin, maxBin)
		}
	}
	return nil
}

func clampBin(bin, maxBin int) int {
	return int(core.Clamp(float64(bin), 0, float64(maxBin)))
}

type fixedLayout struct {
	maxBin int
	mag    quant.LinearMagnitude
	phase  quant.LinearPhase
}

func (l *fixedLayout) encode(w *bitstream.Writer, tracks []Track, _ Predictor, dst []Track) ([]Track, error) {
	if err := checkTracks(tracks, l.maxBin, min(l.maxBin+1, math.MaxUint16)); err != nil {
		return nil, err
	}

	w.WriteBits(uint32(len(tracks)), fixedCountBits)
	for _, t := range tracks {
		qm := l.mag.Quantize(t.Magnitude)
		qp := l.phase.Quantize(t.Phase)
		w.WriteBits(uint32(t.Bin), fixedBinBits)
		w.WriteBits(qm, l.mag.Bits)
		w.WriteBits(qp, l.phase.Bits)
		dst = append(dst, Track{Bin: t.Bin, Magnitude: l.mag.Dequantize(qm), Phase: l.phase.Dequantize(qp)})
	}
	return dst, nil
}

func (l *fixedLayout) decode(r *bitstream.Reader, _ Predictor, dst []Track) ([]Track, error) {
	count := int(r.ReadBits(fixedCountBits))
	if count > l.maxBin+1 {
		return nil, codecerr.Formatf("track: frame declares %d tracks, at most %d", count, l.maxBin+1)
	}
	for range count {
		bin := int(r.ReadBits(fixedBinBits))
		qm := r.ReadBits(l.mag.Bits)
		qp := r.ReadBits(l.phase.Bits)
		dst = append(dst, Track{
			Bin:       clampBin(bin, l.maxBin),
			Magnitude: l.mag.Dequantize(qm),
			Phase:     l.phase.Dequantize(qp),
		})
	}
	return dst, nil
}

type riceLayout struct {
	maxBin int
	mag    quant.LogMagnitude
	phase  quant.DeltaPhase
}

func (l *riceLayout) encode(w *bitstream.Writer, tracks []Track, pred Predictor, dst []Track) ([]Track, error) {
	if err := checkTracks(tracks, l.maxBin, l.maxBin+1); err != nil {
		return nil, err
	}

	rice.EncodeUnsigned(w, uint32(len(tracks)), riceCountK)
	for i, t := range tracks {
		predBin, predPhase := pred.Predict(i)
		qm := l.mag.Quantize(t.Magnitude)
		qp := l.phase.Quantize(t.Phase, predPhase)

		rice.EncodeSigned(w, int32(t.Bin-predBin), riceBinK)
		rice.EncodeSigned(w, qm, riceMagK)
		rice.EncodeUnsigned(w, qp, ricePhaseK)

		dst = append(dst, Track{
			Bin:       t.Bin,
			Magnitude: l.mag.Dequantize(qm),
			Phase:     l.phase.Dequantize(qp, predPhase),
		})
	}
	return dst, nil
}

func (l *riceLayout) decode(r *bitstream.Reader, pred Predictor, dst []Track) ([]Track, error) {
	count := int(rice.DecodeUnsigned(r, riceCountK))
	if count > l.maxBin+1 {
		return nil, codecerr.Formatf("track: frame declares %d tracks, at most %d", count, l.maxBin+1)
	}
	for i := range count {
		predBin, predPhase := pred.Predict(i)
		delta := rice.DecodeSigned(r, riceBinK)
		qm := rice.DecodeSigned(r, riceMagK)
		qp := rice.DecodeUnsigned(r, ricePhaseK)

		dst = append(dst, Track{
			Bin:       clampBin(predBin+int(delta), l.maxBin),
			Magnitude: l.mag.Dequantize(qm),
			Phase:     l.phase.Dequantize(qp, predPhase),
		})
	}
	return dst, nil
}
