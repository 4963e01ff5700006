package pipeline

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-codec/codec/bitstream"
	"github.com/cwbudde/algo-codec/codec/codecerr"
	"github.com/cwbudde/algo-codec/codec/quant"
	"github.com/cwbudde/algo-codec/codec/track"
	"github.com/cwbudde/algo-codec/dsp/core"
)

// Flags are the header feature bits.
type Flags uint8

const (
	// FlagResidual marks a residual record after every track record.
	FlagResidual Flags = 1 << iota
	// FlagSalience records that peaks were picked by Bark salience. The
	// decoder does not need it.
	FlagSalience

	knownFlags = FlagResidual | FlagSalience
)

// Has reports whether all bits of f are set.
func (fl Flags) Has(f Flags) bool { return fl&f == f }

const (
	headerSize         = 28
	residualHeaderSize = 4

	minFrameSize = 16
)

// Header describes a stream. Sizes are stored in fixed-width fields, so
// Validate bounds them before they are written.
type Header struct {
	FrameSize     int
	HopSize       int
	SampleRate    int
	PeakReference float32
	RMSReference  float32
	TopK          int
	MagBits       uint
	PhaseBits     uint
	ThresholdDB   int
	TotalFrames   int
	Format        track.Format
	Flags         Flags
	ResidualStep  float32
}

// Size returns the encoded header size in bytes.
func (h Header) Size() int {
	if h.Flags.Has(FlagResidual) {
		return headerSize + residualHeaderSize
	}
	return headerSize
}

// OutputLength returns the number of samples a decoder produces.
func (h Header) OutputLength() int {
	if h.TotalFrames <= 0 {
		return 0
	}
	return (h.TotalFrames-1)*h.HopSize + h.FrameSize
}

// Duration returns the decoded length in seconds.
func (h Header) Duration() float64 {
	if h.SampleRate <= 0 {
		return 0
	}
	return float64(h.OutputLength()) / float64(h.SampleRate)
}

// TrackParams returns the track codec parameters both sides derive from h.
func (h Header) TrackParams() track.Params {
	return track.Params{
		Format:        h.Format,
		FrameSize:     h.FrameSize,
		MagBits:       h.MagBits,
		PhaseBits:     h.PhaseBits,
		PeakReference: float64(h.PeakReference),
	}
}

// Validate checks h for values that cannot be encoded or decoded. Errors wrap
// codecerr.ErrFormat.
func (h Header) Validate() error {
	switch {
	case h.FrameSize < minFrameSize || h.FrameSize > math.MaxUint16 || !core.IsPowerOfTwo(h.FrameSize):
		return codecerr.Formatf("pipeline: header: frame size %d is not a power of two in [%d, 32768]", h.FrameSize, minFrameSize)
	case h.HopSize <= 0 || h.HopSize > h.FrameSize:
		return codecerr.Formatf("pipeline: header: hop size %d outside [1, %d]", h.HopSize, h.FrameSize)
	case h.SampleRate <= 0 || int64(h.SampleRate) > math.MaxUint32:
		return codecerr.Formatf("pipeline: header: sample rate %d", h.SampleRate)
	case h.TopK <= 0 || h.TopK > math.MaxUint16:
		return codecerr.Formatf("pipeline: header: top-k %d outside [1, %d]", h.TopK, math.MaxUint16)
	case h.ThresholdDB < 0 || h.ThresholdDB > math.MaxUint16:
		return codecerr.Formatf("pipeline: header: threshold %d dB", h.ThresholdDB)
	case h.TotalFrames < 0 || h.TotalFrames > math.MaxInt32:
		return codecerr.Formatf("pipeline: header: frame count %d", h.TotalFrames)
	case !h.Format.Valid():
		return codecerr.Formatf("pipeline: header: unknown track format %d", uint8(h.Format))
	case h.Flags&^knownFlags != 0:
		return codecerr.Formatf("pipeline: header: unknown flags %#02x", uint8(h.Flags))
	case !isFinite32(h.PeakReference) || h.PeakReference < 0:
		return codecerr.Formatf("pipeline: header: peak reference %v", h.PeakReference)
	case !isFinite32(h.RMSReference) || h.RMSReference < 0:
		return codecerr.Formatf("pipeline: header: rms reference %v", h.RMSReference)
	}
	if err := quant.ValidateBits(h.MagBits); err != nil {
		return codecerr.Formatf("pipeline: header: magnitude bits: %v", err)
	}
	if err := quant.ValidateBits(h.PhaseBits); err != nil {
		return codecerr.Formatf("pipeline: header: phase bits: %v", err)
	}
	if err := h.TrackParams().Validate(); err != nil {
		return codecerr.Formatf("pipeline: header: %v", err)
	}

	if h.Flags.Has(FlagResidual) {
		switch {
		case !(h.ResidualStep > 0) || !isFinite32(h.ResidualStep):
			return codecerr.Formatf("pipeline: header: residual step %v", h.ResidualStep)
		case 2*h.HopSize > h.FrameSize || !core.IsPowerOfTwo(h.HopSize):
			return codecerr.Formatf("pipeline: header: residual layer needs a power-of-two hop <= frame size/2, got %d/%d", h.HopSize, h.FrameSize)
		}
	}
	return nil
}

func isFinite32(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// WriteTo validates h and appends it to w.
func (h Header) WriteTo(w *bitstream.Writer) error {
	if err := h.Validate(); err != nil {
		return err
	}
	w.WriteUint16(uint16(h.FrameSize))
	w.WriteUint16(uint16(h.HopSize))
	w.WriteUint32(uint32(h.SampleRate))
	w.WriteFloat32(h.PeakReference)
	w.WriteFloat32(h.RMSReference)
	w.WriteUint16(uint16(h.TopK))
	w.WriteUint8(uint8(h.MagBits))
	w.WriteUint8(uint8(h.PhaseBits))
	w.WriteUint16(uint16(h.ThresholdDB))
	w.WriteUint32(uint32(h.TotalFrames))
	w.WriteUint8(uint8(h.Format))
	w.WriteUint8(uint8(h.Flags))
	if h.Flags.Has(FlagResidual) {
		w.WriteFloat32(h.ResidualStep)
	}
	return nil
}

// ReadHeader reads and validates a header. A header cut short fails with
// codecerr.ErrTruncated regardless of the reader's strictness.
func ReadHeader(r *bitstream.Reader) (Header, error) {
	var h Header
	h.FrameSize = int(r.ReadUint16())
	h.HopSize = int(r.ReadUint16())
	h.SampleRate = int(r.ReadUint32())
	h.PeakReference = r.ReadFloat32()
	h.RMSReference = r.ReadFloat32()
	h.TopK = int(r.ReadUint16())
	h.MagBits = uint(r.ReadUint8())
	h.PhaseBits = uint(r.ReadUint8())
	h.ThresholdDB = int(r.ReadUint16())
	h.TotalFrames = int(r.ReadUint32())
	h.Format = track.Format(r.ReadUint8())
	h.Flags = Flags(r.ReadUint8())
	if h.Flags.Has(FlagResidual) {
		h.ResidualStep = r.ReadFloat32()
	}

	if r.Underrun() {
		return Header{}, fmt.Errorf("pipeline: header: %w", codecerr.ErrTruncated)
	}
	if err := h.Validate(); err != nil {
		return Header{}, err
	}
	return h, nil
}
