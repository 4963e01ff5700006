package bitstream

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/cwbudde/algo-codec/codec/codecerr"
)

// Writer is an append-only LSB-first bit buffer.
//
// The zero value is ready to use.
type Writer struct {
	buf   []byte
	nbits int
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Len returns the number of bits written so far.
func (w *Writer) Len() int { return w.nbits }

// Bytes returns the written bytes. A partially filled last byte is included
// with its unused high bits set to zero. The slice aliases the internal buffer.
func (w *Writer) Bytes() []byte { return w.buf }

// Reset discards all written bits, keeping the allocated capacity.
func (w *Writer) Reset() {
	w.buf = w.buf[:0]
	w.nbits = 0
}

// WriteBit appends a single bit. Any nonzero value writes a one.
func (w *Writer) WriteBit(bit uint32) {
	if w.nbits&7 == 0 {
		w.buf = append(w.buf, 0)
	}
	if bit != 0 {
		w.buf[w.nbits>>3] |= 1 << uint(w.nbits&7)
	}
	w.nbits++
}

// WriteBits appends the low n bits of v, least significant first.
// n is clamped to 32.
func (w *Writer) WriteBits(v uint32, n uint) {
	if n > 32 {
		n = 32
	}
	for n > 0 {
		if w.nbits&7 == 0 {
			w.buf = append(w.buf, 0)
		}
		off := uint(w.nbits & 7)
		take := min(8-off, n)
		chunk := byte(v&(1<<take-1)) << off
		w.buf[w.nbits>>3] |= chunk
		v >>= take
		n -= take
		w.nbits += int(take)
	}
}

// Write32 appends all 32 bits of v.
func (w *Writer) Write32(v uint32) { w.WriteBits(v, 32) }

// Align pads with zero bits up to the next byte boundary.
func (w *Writer) Align() {
	w.nbits = len(w.buf) * 8
}

// WriteUint8 aligns and appends one byte.
func (w *Writer) WriteUint8(v uint8) {
	w.Align()
	w.buf = append(w.buf, v)
	w.nbits += 8
}

// WriteUint16 aligns and appends v in little-endian order.
func (w *Writer) WriteUint16(v uint16) {
	w.Align()
	w.buf = binary.LittleEndian.AppendUint16(w.buf, v)
	w.nbits += 16
}

// WriteUint32 aligns and appends v in little-endian order.
func (w *Writer) WriteUint32(v uint32) {
	w.Align()
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
	w.nbits += 32
}

// WriteFloat32 aligns and appends the IEEE-754 bit pattern of v.
func (w *Writer) WriteFloat32(v float32) {
	w.WriteUint32(math.Float32bits(v))
}

// WriteTo flushes the buffer to dst. Only the flush can fail.
func (w *Writer) WriteTo(dst io.Writer) (int64, error) {
	n, err := dst.Write(w.buf)
	if err != nil {
		return int64(n), fmt.Errorf("bitstream: flush: %w: %w", codecerr.ErrIO, err)
	}
	return int64(n), nil
}
