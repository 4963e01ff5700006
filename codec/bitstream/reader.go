package bitstream

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cwbudde/algo-codec/codec/codecerr"
)

// Option configures a Reader.
type Option func(*Reader)

// WithStrict makes Err report the first read past the end of the data.
func WithStrict() Option {
	return func(r *Reader) {
		r.strict = true
	}
}

// Reader consumes an LSB-first bit buffer sequentially.
type Reader struct {
	data   []byte
	pos    int
	strict bool

	underrun   bool
	underrunAt int
}

// NewReader returns a Reader positioned at the first bit of data.
func NewReader(data []byte, opts ...Option) *Reader {
	r := &Reader{data: data}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Pos returns the current bit position.
func (r *Reader) Pos() int { return r.pos }

// BitsRemaining returns the number of unread bits.
func (r *Reader) BitsRemaining() int { return len(r.data)*8 - r.pos }

// EOF reports whether every bit has been consumed.
func (r *Reader) EOF() bool { return r.pos >= len(r.data)*8 }

// Underrun reports whether any read ran past the end of the data.
func (r *Reader) Underrun() bool { return r.underrun }

// Strict reports whether the reader was created with WithStrict.
func (r *Reader) Strict() bool { return r.strict }

// Err returns an error wrapping codecerr.ErrTruncated if the reader is strict
// and a read ran past the end. Best-effort readers always return nil.
func (r *Reader) Err() error {
	if r.strict && r.underrun {
		return fmt.Errorf("bitstream: read past end at bit %d of %d: %w",
			r.underrunAt, len(r.data)*8, codecerr.ErrTruncated)
	}
	return nil
}

func (r *Reader) markUnderrun() {
	if !r.underrun {
		r.underrun = true
		r.underrunAt = r.pos
	}
}

// ReadBit returns the next bit, or 0 past the end.
func (r *Reader) ReadBit() uint32 {
	if r.pos >= len(r.data)*8 {
		r.markUnderrun()
		return 0
	}
	bit := uint32(r.data[r.pos>>3]>>uint(r.pos&7)) & 1
	r.pos++
	return bit
}

// ReadBits returns the next n bits assembled least significant first.
// Bits past the end read as zero. n is clamped to 32.
func (r *Reader) ReadBits(n uint) uint32 {
	if n > 32 {
		n = 32
	}
	var v uint32
	var shift uint
	for shift < n {
		if r.pos >= len(r.data)*8 {
			r.markUnderrun()
			break
		}
		off := uint(r.pos & 7)
		take := min(8-off, n-shift)
		chunk := uint32(r.data[r.pos>>3]>>off) & (1<<take - 1)
		v |= chunk << shift
		shift += take
		r.pos += int(take)
	}
	return v
}

// Read32 returns the next 32 bits.
func (r *Reader) Read32() uint32 { return r.ReadBits(32) }

// Align skips to the next byte boundary.
func (r *Reader) Align() {
	r.pos = (r.pos + 7) &^ 7
}

func (r *Reader) rawBytes(n int) []byte {
	r.Align()
	start := r.pos >> 3
	if start+n > len(r.data) {
		r.markUnderrun()
		r.pos = len(r.data) * 8
		return nil
	}
	r.pos += n * 8
	return r.data[start : start+n]
}

// ReadUint8 aligns and reads one byte, or 0 if fewer than one byte remains.
func (r *Reader) ReadUint8() uint8 {
	b := r.rawBytes(1)
	if b == nil {
		return 0
	}
	return b[0]
}

// ReadUint16 aligns and reads a little-endian uint16, or 0 if the data is short.
func (r *Reader) ReadUint16() uint16 {
	b := r.rawBytes(2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

// ReadUint32 aligns and reads a little-endian uint32, or 0 if the data is short.
func (r *Reader) ReadUint32() uint32 {
	b := r.rawBytes(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

// ReadFloat32 aligns and reads an IEEE-754 float32, or 0 if the data is short.
func (r *Reader) ReadFloat32() float32 {
	return math.Float32frombits(r.ReadUint32())
}
