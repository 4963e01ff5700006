package track

import (
	"fmt"

	"github.com/cwbudde/algo-codec/codec/bitstream"
)

// Option configures an Encoder or Decoder.
type Option func(*options)

type options struct {
	predictor Predictor
}

// WithPredictor replaces the default SlotPredictor.
func WithPredictor(p Predictor) Option {
	return func(o *options) {
		if p != nil {
			o.predictor = p
		}
	}
}

func applyOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.predictor == nil {
		o.predictor = NewSlotPredictor()
	}
	return o
}

// lifecycle is the state machine shared by Encoder and Decoder.
type lifecycle struct {
	state  State
	frames int
}

func (l *lifecycle) begin() error {
	if l.state == StateFinalized {
		return ErrFinalized
	}
	l.state = StateStreaming
	return nil
}

// Encoder writes frames of tracks in one layout.
//
// An Encoder is not safe for concurrent use.
type Encoder struct {
	lifecycle
	params Params
	layout layout
	pred   Predictor
}

// NewEncoder validates p and returns an Encoder in StateUninitialized.
func NewEncoder(p Params, opts ...Option) (*Encoder, error) {
	l, err := newLayout(p)
	if err != nil {
		return nil, err
	}
	o := applyOptions(opts)
	return &Encoder{params: p, layout: l, pred: o.predictor}, nil
}

// Params returns the encoder parameters.
func (e *Encoder) Params() Params { return e.params }

// State returns the lifecycle state.
func (e *Encoder) State() State { return e.state }

// Frames returns the number of frames encoded since the last Reset.
func (e *Encoder) Frames() int { return e.frames }

// EncodeFrame appends the frame to w and returns the tracks exactly as a
// decoder will reconstruct them. The reconstruction becomes the prediction
// state for the next frame.
func (e *Encoder) EncodeFrame(w *bitstream.Writer, tracks []Track) ([]Track, error) {
	if err := e.begin(); err != nil {
		return nil, err
	}
	recon, err := e.layout.encode(w, tracks, e.pred, make([]Track, 0, len(tracks)))
	if err != nil {
		return nil, fmt.Errorf("track: encode frame %d: %w", e.frames, err)
	}
	e.pred.Update(recon)
	e.frames++
	return recon, nil
}

// Finalize ends the stream. Later EncodeFrame calls fail with ErrFinalized.
func (e *Encoder) Finalize() {
	e.state = StateFinalized
}

// Reset returns the encoder to StateUninitialized with empty prediction state.
func (e *Encoder) Reset() {
	e.lifecycle = lifecycle{}
	e.pred.Reset()
}

// Decoder reads frames written by an Encoder with identical Params.
//
// A Decoder is not safe for concurrent use.
type Decoder struct {
	lifecycle
	params Params
	layout layout
	pred   Predictor
}

// NewDecoder validates p and returns a Decoder in StateUninitialized.
func NewDecoder(p Params, opts ...Option) (*Decoder, error) {
	l, err := newLayout(p)
	if err != nil {
		return nil, err
	}
	o := applyOptions(opts)
	return &Decoder{params: p, layout: l, pred: o.predictor}, nil
}

// Params returns the decoder parameters.
func (d *Decoder) Params() Params { return d.params }

// State returns the lifecycle state.
func (d *Decoder) State() State { return d.state }

// Frames returns the number of frames decoded since the last Reset.
func (d *Decoder) Frames() int { return d.frames }

// DecodeFrame reads the next frame from r. Bins are clamped to
// [0, FrameSize/2]. If r is strict and the frame ran past the end of the
// data, the error wraps codecerr.ErrTruncated.
func (d *Decoder) DecodeFrame(r *bitstream.Reader) ([]Track, error) {
	if err := d.begin(); err != nil {
		return nil, err
	}
	tracks, err := d.layout.decode(r, d.pred, nil)
	if err == nil {
		err = r.Err()
	}
	if err != nil {
		return nil, fmt.Errorf("track: decode frame %d: %w", d.frames, err)
	}
	d.pred.Update(tracks)
	d.frames++
	return tracks, nil
}

// Finalize ends the stream. Later DecodeFrame calls fail with ErrFinalized.
func (d *Decoder) Finalize() {
	d.state = StateFinalized
}

// Reset returns the decoder to StateUninitialized with empty prediction state.
func (d *Decoder) Reset() {
	d.lifecycle = lifecycle{}
	d.pred.Reset()
}
