package track

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cwbudde/algo-codec/codec/quant"
)

var (
	// ErrFinalized is returned when a frame is coded after Finalize.
	ErrFinalized = errors.New("track: codec finalized")
	// ErrInvalidTrack is returned for tracks the configured layout cannot carry.
	ErrInvalidTrack = errors.New("track: invalid track")
	// ErrConfig is returned for unusable codec parameters.
	ErrConfig = errors.New("track: invalid configuration")
)

// Track is one sinusoidal component of a frame.
type Track struct {
	Bin       int
	Magnitude float64
	Phase     float64
}

// Format selects the wire layout of a frame's tracks.
type Format uint8

const (
	// FixedWidthPeak stores every field with a fixed bit width.
	FixedWidthPeak Format = iota
	// RiceDifferential stores predicted differences with Rice codes.
	RiceDifferential
)

// DefaultFormat is the canonical layout.
const DefaultFormat = RiceDifferential

// String returns the short name used on the command line.
func (f Format) String() string {
	switch f {
	case FixedWidthPeak:
		return "fixed"
	case RiceDifferential:
		return "rice"
	default:
		return fmt.Sprintf("format(%d)", uint8(f))
	}
}

// Valid reports whether f is a known layout.
func (f Format) Valid() bool {
	return f == FixedWidthPeak || f == RiceDifferential
}

// ParseFormat parses "fixed" or "rice".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fixed", "fixed-width", "fixedwidthpeak":
		return FixedWidthPeak, nil
	case "rice", "rice-differential", "ricedifferential":
		return RiceDifferential, nil
	default:
		return 0, fmt.Errorf("%w: unknown format %q", ErrConfig, s)
	}
}

// Params configures an Encoder or Decoder. Both sides of a stream must use
// identical values.
type Params struct {
	Format        Format
	FrameSize     int
	MagBits       uint
	PhaseBits     uint
	PeakReference float64
}

const (
	fixedCountBits = 16
	fixedBinBits   = 12

	riceCountK = 0
	riceBinK   = 2
	riceMagK   = 3
	ricePhaseK = 6
)

// MaxBin returns the highest representable bin, FrameSize/2.
func (p Params) MaxBin() int { return p.FrameSize / 2 }

// Validate checks the parameters against the selected layout.
func (p Params) Validate() error {
	if !p.Format.Valid() {
		return fmt.Errorf("%w: unknown format %d", ErrConfig, uint8(p.Format))
	}
	if p.FrameSize < 2 {
		return fmt.Errorf("%w: frame size %d", ErrConfig, p.FrameSize)
	}
	if err := quant.ValidateBits(p.MagBits); err != nil {
		return fmt.Errorf("%w: magnitude: %w", ErrConfig, err)
	}
	if err := quant.ValidateBits(p.PhaseBits); err != nil {
		return fmt.Errorf("%w: phase: %w", ErrConfig, err)
	}
	if p.Format == FixedWidthPeak && p.MaxBin() >= 1<<fixedBinBits {
		return fmt.Errorf("%w: frame size %d exceeds %d-bit bin field", ErrConfig, p.FrameSize, fixedBinBits)
	}
	return nil
}

// State is the lifecycle stage of an Encoder or Decoder.
type State int

const (
	StateUninitialized State = iota
	StateStreaming
	StateFinalized
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateStreaming:
		return "streaming"
	case StateFinalized:
		return "finalized"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}
