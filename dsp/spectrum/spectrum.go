package spectrum

import (
	"fmt"
	"math"
	"math/cmplx"
	"sync"

	"github.com/cwbudde/algo-vecmath"
)

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n:need], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}

func split(in []complex128, re, im []float64) {
	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}
}

// Magnitude returns |X[k]| for each complex spectrum bin.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}
	out := make([]float64, len(in))
	MagnitudeInto(out, in)
	return out
}

// MagnitudeInto computes |X[k]| into dst, which must be at least len(in) long.
//
// Scratch buffers are pooled internally, so in steady state this does not
// allocate.
func MagnitudeInto(dst []float64, in []complex128) {
	if len(in) == 0 {
		return
	}
	re, im, buf := getScratch(len(in))
	split(in, re, im)
	vecmath.Magnitude(dst[:len(in)], re, im)
	putScratch(buf)
}

// PhaseInto computes arg(X[k]) into dst, which must be at least len(in) long.
func PhaseInto(dst []float64, in []complex128) {
	for i, c := range in {
		dst[i] = cmplx.Phase(c)
	}
}

// HalfSpectrum computes magnitude and phase of bins [0, n/2] of a full-size
// spectrum of a real signal. mag and phase must hold at least n/2+1 values.
func HalfSpectrum(mag, phase []float64, full []complex128) error {
	bins := len(full)/2 + 1
	if len(full) < 2 {
		return fmt.Errorf("spectrum: half spectrum needs at least 2 bins: %d", len(full))
	}
	if len(mag) < bins || len(phase) < bins {
		return fmt.Errorf("spectrum: half spectrum output too short: %d/%d < %d", len(mag), len(phase), bins)
	}
	MagnitudeInto(mag, full[:bins])
	PhaseInto(phase, full[:bins])
	return nil
}

// Mirror completes a full-size spectrum of a real signal from its lower half.
//
// Bins 1..n/2-1 are copied conjugated into n-1..n/2+1. DC and Nyquist are
// forced real, since a real signal cannot carry an imaginary part there.
func Mirror(full []complex128) {
	n := len(full)
	if n < 2 {
		return
	}
	half := n / 2
	full[0] = complex(real(full[0]), 0)
	full[half] = complex(real(full[half]), 0)
	for k := 1; k < half; k++ {
		full[n-k] = cmplx.Conj(full[k])
	}
}

// Polar returns the complex bin value with the given magnitude and phase.
func Polar(magnitude, phase float64) complex128 {
	s, c := math.Sincos(phase)
	return complex(magnitude*c, magnitude*s)
}
