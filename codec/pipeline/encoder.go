package pipeline

import (
	"bytes"
	"fmt"
	"io"

	"github.com/cwbudde/algo-codec/codec/bitstream"
	"github.com/cwbudde/algo-codec/codec/peak"
	"github.com/cwbudde/algo-codec/codec/track"
	"github.com/cwbudde/algo-codec/dsp/spectrum"
	"github.com/cwbudde/algo-codec/dsp/transform"
	timestats "github.com/cwbudde/algo-codec/stats/time"
)

// Stats summarizes one Encode call.
type Stats struct {
	Header               Header
	Frames               int
	Tracks               int
	ResidualCoefficients int
	Bytes                int64
}

// Encoder compresses mono PCM. Its configuration is fixed at construction;
// every Encode call owns its transforms and codec state, so an Encoder can
// be reused for many inputs.
type Encoder struct {
	cfg config
}

// NewEncoder applies opts and checks that the resulting frame geometry and
// quantizer settings can be written to a header.
func NewEncoder(opts ...Option) (*Encoder, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.header(1, 0, 0, 0).Validate(); err != nil {
		return nil, fmt.Errorf("pipeline: encoder config: %w", err)
	}
	return &Encoder{cfg: cfg}, nil
}

// EncodeBytes is Encode into a byte slice.
func (e *Encoder) EncodeBytes(samples []float64, sampleRate int) ([]byte, Stats, error) {
	var buf bytes.Buffer
	st, err := e.Encode(&buf, samples, sampleRate)
	if err != nil {
		return nil, st, err
	}
	return buf.Bytes(), st, nil
}

// Encode writes the stream for samples to w. Nothing is written unless
// encoding succeeds. Input shorter than one frame yields a header with zero
// frames.
func (e *Encoder) Encode(w io.Writer, samples []float64, sampleRate int) (Stats, error) {
	levels := timestats.Calculate(samples)
	eng := transform.NewEngine()
	defer eng.Close()

	stft, err := eng.NewSTFT(e.cfg.frameSize, e.cfg.hopSize)
	if err != nil {
		return Stats{}, err
	}
	h := e.cfg.header(sampleRate, stft.FrameCount(len(samples)), levels.Peak, levels.RMS)
	if err := h.Validate(); err != nil {
		return Stats{}, err
	}

	frames, err := analyze(stft, h, samples)
	if err != nil {
		return Stats{}, err
	}

	bw := bitstream.NewWriter()
	if err := h.WriteTo(bw); err != nil {
		return Stats{}, err
	}
	st := Stats{Header: h, Frames: h.TotalFrames}

	var (
		res  *residualLayer
		diff []float64
	)
	if h.Flags.Has(FlagResidual) {
		if res, err = newResidualLayer(eng, h); err != nil {
			return Stats{}, err
		}
		if diff, err = trackResidual(stft, h, frames, samples); err != nil {
			return Stats{}, err
		}
	}

	enc, err := track.NewEncoder(h.TrackParams())
	if err != nil {
		return Stats{}, err
	}
	for f, tracks := range frames {
		if _, err := enc.EncodeFrame(bw, tracks); err != nil {
			return Stats{}, err
		}
		st.Tracks += len(tracks)

		if res != nil {
			n, err := res.encode(bw, diff, f*h.HopSize)
			if err != nil {
				return Stats{}, fmt.Errorf("pipeline: residual frame %d: %w", f, err)
			}
			st.ResidualCoefficients += n
		}
	}
	enc.Finalize()

	st.Bytes, err = bw.WriteTo(w)
	if err != nil {
		return st, fmt.Errorf("pipeline: write stream: %w", err)
	}
	return st, nil
}

// analyze picks the tracks of every frame. Track magnitudes are sinusoid
// amplitudes, so they share a scale with the header's peak reference.
func analyze(stft *transform.STFT, h Header, samples []float64) ([][]track.Track, error) {
	bins := stft.Bins()
	spec := make([]complex128, stft.FrameSize())
	mag := make([]float64, bins)
	phase := make([]float64, bins)

	var opts []peak.Option
	if h.Flags.Has(FlagSalience) {
		opts = append(opts, peak.WithSalience(float64(h.SampleRate)))
	}

	frames := make([][]track.Track, h.TotalFrames)
	for f := range frames {
		if err := stft.Analyze(spec, samples, f*h.HopSize); err != nil {
			return nil, err
		}
		if err := spectrum.HalfSpectrum(mag, phase, spec); err != nil {
			return nil, err
		}

		// Bins are ranked by raw magnitude; only the chosen ones become
		// amplitudes.
		tracks, err := peak.Select(mag, phase, h.TopK, opts...)
		if err != nil {
			return nil, fmt.Errorf("pipeline: frame %d: %w", f, err)
		}
		for i := range tracks {
			tracks[i].Magnitude = stft.Amplitude(tracks[i].Bin, tracks[i].Magnitude)
		}
		frames[f] = tracks
	}
	return frames, nil
}

// trackResidual returns samples minus the track-only signal a decoder will
// synthesize from frames.
func trackResidual(stft *transform.STFT, h Header, frames [][]track.Track, samples []float64) ([]float64, error) {
	enc, err := track.NewEncoder(h.TrackParams())
	if err != nil {
		return nil, err
	}
	scratch := bitstream.NewWriter()
	synth := newSynthesizer(stft, h.OutputLength())

	for f, tracks := range frames {
		scratch.Reset()
		recon, err := enc.EncodeFrame(scratch, tracks)
		if err != nil {
			return nil, err
		}
		if err := synth.add(recon, f*h.HopSize); err != nil {
			return nil, err
		}
	}

	diff := synth.signal()
	for i := range diff {
		diff[i] = samples[i] - diff[i]
	}
	return diff, nil
}
