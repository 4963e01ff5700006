package pipeline

import (
	"fmt"
	"io"

	"github.com/cwbudde/algo-codec/codec/bitstream"
	"github.com/cwbudde/algo-codec/codec/codecerr"
	"github.com/cwbudde/algo-codec/codec/track"
	"github.com/cwbudde/algo-codec/dsp/transform"
	timestats "github.com/cwbudde/algo-codec/stats/time"
	"github.com/cwbudde/algo-vecmath"
)

// minGainPeak is the output peak below which gain matching is skipped.
const minGainPeak = 1e-12

// Result is a decoded stream.
type Result struct {
	Header  Header
	Samples []float64
	// Gain is the factor applied by gain matching, 1 when disabled.
	Gain float64
}

// FrameInfo describes one frame record.
type FrameInfo struct {
	Tracks               int
	ResidualCoefficients int
	Bits                 int
}

// Decoder reconstructs PCM from streams written by an Encoder.
type Decoder struct {
	cfg decodeConfig
}

// NewDecoder returns a Decoder. Without options it decodes best-effort and
// gain-matches the output.
func NewDecoder(opts ...DecodeOption) *Decoder {
	cfg := decodeConfig{gainMatch: true}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &Decoder{cfg: cfg}
}

// open reads the header of data. Every frame record takes at least one bit,
// so a frame count above the remaining bits is rejected before any buffer is
// sized from it.
func (d *Decoder) open(data []byte) (*bitstream.Reader, Header, error) {
	var r *bitstream.Reader
	if d.cfg.strict {
		r = bitstream.NewReader(data, bitstream.WithStrict())
	} else {
		r = bitstream.NewReader(data)
	}

	h, err := ReadHeader(r)
	if err != nil {
		return nil, Header{}, err
	}
	if h.TotalFrames > r.BitsRemaining() {
		return nil, Header{}, fmt.Errorf("pipeline: %d frames declared, %d bits left: %w", h.TotalFrames, r.BitsRemaining(), codecerr.ErrTruncated)
	}
	return r, h, nil
}

// DecodeReader reads the whole stream from r and decodes it.
func (d *Decoder) DecodeReader(r io.Reader) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("pipeline: read stream: %w: %w", codecerr.ErrIO, err)
	}
	return d.Decode(data)
}

// Decode reconstructs the samples of data. Frames are decoded strictly in
// order; a frame that fails to decode aborts the call.
func (d *Decoder) Decode(data []byte) (*Result, error) {
	r, h, err := d.open(data)
	if err != nil {
		return nil, err
	}

	eng := transform.NewEngine()
	defer eng.Close()

	stft, err := eng.NewSTFT(h.FrameSize, h.HopSize)
	if err != nil {
		return nil, err
	}
	dec, err := track.NewDecoder(h.TrackParams())
	if err != nil {
		return nil, err
	}
	var res *residualLayer
	if h.Flags.Has(FlagResidual) {
		if res, err = newResidualLayer(eng, h); err != nil {
			return nil, err
		}
	}

	synth := newSynthesizer(stft, h.OutputLength())
	blocks := make([]float64, h.OutputLength())
	for f := range h.TotalFrames {
		tracks, err := decodeTracks(dec, r, h)
		if err != nil {
			return nil, err
		}
		if err := synth.add(tracks, f*h.HopSize); err != nil {
			return nil, err
		}
		if res != nil {
			if _, err := res.decode(r, blocks, f*h.HopSize); err != nil {
				return nil, fmt.Errorf("pipeline: residual frame %d: %w", f, err)
			}
		}
	}
	dec.Finalize()

	out := synth.signal()
	if res != nil {
		vecmath.AddBlockInPlace(out, blocks)
	}

	gain := 1.0
	if d.cfg.gainMatch {
		if p := timestats.Peak(out); p > minGainPeak && h.PeakReference > 0 {
			gain = float64(h.PeakReference) / p
			vecmath.ScaleBlockInPlace(out, gain)
		}
	}
	return &Result{Header: h, Samples: out, Gain: gain}, nil
}

func decodeTracks(dec *track.Decoder, r *bitstream.Reader, h Header) ([]track.Track, error) {
	tracks, err := dec.DecodeFrame(r)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	if len(tracks) > h.TopK {
		return nil, codecerr.Formatf("pipeline: frame %d holds %d tracks, header allows %d", dec.Frames()-1, len(tracks), h.TopK)
	}
	return tracks, nil
}

// Inspect parses the header and walks every frame record without
// synthesizing audio.
func (d *Decoder) Inspect(data []byte) (Header, []FrameInfo, error) {
	r, h, err := d.open(data)
	if err != nil {
		return Header{}, nil, err
	}

	dec, err := track.NewDecoder(h.TrackParams())
	if err != nil {
		return h, nil, err
	}
	var res *residualLayer
	if h.Flags.Has(FlagResidual) {
		eng := transform.NewEngine()
		defer eng.Close()
		if res, err = newResidualLayer(eng, h); err != nil {
			return h, nil, err
		}
	}

	frames := make([]FrameInfo, 0, h.TotalFrames)
	for f := range h.TotalFrames {
		start := r.Pos()
		tracks, err := decodeTracks(dec, r, h)
		if err != nil {
			return h, frames, err
		}
		info := FrameInfo{Tracks: len(tracks)}
		if res != nil {
			if info.ResidualCoefficients, err = res.decode(r, nil, 0); err != nil {
				return h, frames, fmt.Errorf("pipeline: residual frame %d: %w", f, err)
			}
		}
		info.Bits = r.Pos() - start
		frames = append(frames, info)
	}
	return h, frames, nil
}
