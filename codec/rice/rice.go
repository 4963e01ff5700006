// Package rice implements Rice/Golomb coding of integers over a bit stream.
//
// An unsigned value v with parameter k is written as v>>k one-bits, a
// terminating zero bit, and then the low k bits of v. Signed values are
// mapped onto unsigned ones with zigzag encoding first, so small magnitudes
// of either sign get short codes.
package rice

// BitWriter is the subset of a bit writer the coder needs.
type BitWriter interface {
	WriteBit(bit uint32)
	WriteBits(v uint32, n uint)
}

// BitReader is the subset of a bit reader the coder needs.
type BitReader interface {
	ReadBit() uint32
	ReadBits(n uint) uint32
}

// MaxParameter is the largest supported Rice parameter.
const MaxParameter = 31

// Zigzag maps a signed value onto an unsigned one: 0, -1, 1, -2, 2, ...
// become 0, 1, 2, 3, 4, ...
func Zigzag(x int32) uint32 {
	return uint32(x<<1) ^ uint32(x>>31)
}

// Unzigzag is the inverse of Zigzag.
func Unzigzag(u uint32) int32 {
	return int32(u>>1) ^ -int32(u&1)
}

// EncodeUnsigned writes v with Rice parameter k.
//
// The unary prefix is unbounded: large values with a small k produce long
// runs of one-bits.
func EncodeUnsigned(w BitWriter, v uint32, k uint) {
	if k > MaxParameter {
		k = MaxParameter
	}
	for q := v >> k; q > 0; q-- {
		w.WriteBit(1)
	}
	w.WriteBit(0)
	if k > 0 {
		w.WriteBits(v, k)
	}
}

// DecodeUnsigned reads a value written by EncodeUnsigned with the same k.
//
// A reader that returns zero bits past its end terminates the unary prefix,
// so truncated input never loops.
func DecodeUnsigned(r BitReader, k uint) uint32 {
	if k > MaxParameter {
		k = MaxParameter
	}
	var q uint32
	for r.ReadBit() == 1 {
		q++
	}
	v := q << k
	if k > 0 {
		v |= r.ReadBits(k)
	}
	return v
}

// EncodeSigned zigzag-maps x and writes it with parameter k.
func EncodeSigned(w BitWriter, x int32, k uint) {
	EncodeUnsigned(w, Zigzag(x), k)
}

// DecodeSigned reads a value written by EncodeSigned with the same k.
func DecodeSigned(r BitReader, k uint) int32 {
	return Unzigzag(DecodeUnsigned(r, k))
}
