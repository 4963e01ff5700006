// Package bitstream packs and unpacks bit-granular data.
//
// Bits are appended least-significant-bit first: bit i of a value written
// with WriteBits lands at stream position pos+i, and stream position p lives
// in byte p/8 at bit p%8. Aligned scalar writes (WriteUint8/16/32 and
// WriteFloat32) first pad to a byte boundary and then append the value's
// little-endian bytes.
//
// Readers are best-effort by default: reading past the end yields zero bits
// and never panics. Underrun reports whether that happened. A strict reader
// additionally surfaces the condition through Err as an error wrapping
// codecerr.ErrTruncated.
//
// # Usage
//
//	w := bitstream.NewWriter()
//	w.WriteUint16(2048)
//	w.WriteBits(5, 3)
//
//	r := bitstream.NewReader(w.Bytes(), bitstream.WithStrict())
//	frame := r.ReadUint16()
//	v := r.ReadBits(3)
//	if err := r.Err(); err != nil {
//		// truncated
//	}
package bitstream
