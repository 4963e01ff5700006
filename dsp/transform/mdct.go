package transform

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-codec/dsp/core"
	"github.com/cwbudde/algo-codec/dsp/window"
)

// MDCT is a sine-windowed modified discrete cosine transform producing n
// coefficients from 2n input samples:
//
//	X[k] = sum_{m=0}^{2n-1} w[m] x[m] cos(pi/n * (m + 1/2 + n/2) * (k + 1/2))
//
// Blocks taken at hop n and inverse-transformed with InverseAdd reconstruct
// the input exactly wherever two blocks overlap.
type MDCT struct {
	engine *Engine
	plan   *algofft.Plan[complex128]

	n      int
	window []float64

	// pre[m] = exp(-i*pi*m/(2n)), m in [0, 2n)
	// post[k] = exp(-i*pi*n0*(k+1/2)/n), k in [0, n)
	// inPre[k] = exp(i*pi*n0*k/n), k in [0, n)
	// inPost[m] = exp(i*pi*(m+n0)/(2n)), m in [0, 2n)
	pre, post, inPre, inPost []complex128

	buf []complex128
	tmp []float64
}

// NewMDCT creates an MDCT with n coefficients per block. n must be a power
// of two.
func (e *Engine) NewMDCT(n int) (*MDCT, error) {
	if !core.IsPowerOfTwo(n) {
		return nil, fmt.Errorf("%w: mdct %d", ErrSize, n)
	}
	plan, err := e.Plan(2 * n)
	if err != nil {
		return nil, err
	}

	m := &MDCT{
		engine: e,
		plan:   plan,
		n:      n,
		window: window.Generate(window.TypeSine, 2*n),
		pre:    make([]complex128, 2*n),
		post:   make([]complex128, n),
		inPre:  make([]complex128, n),
		inPost: make([]complex128, 2*n),
		buf:    make([]complex128, 2*n),
		tmp:    make([]float64, 2*n),
	}

	fn := float64(n)
	n0 := 0.5 + fn/2
	for i := range 2 * n {
		fi := float64(i)
		m.pre[i] = unit(-math.Pi * fi / (2 * fn))
		m.inPost[i] = unit(math.Pi * (fi + n0) / (2 * fn))
	}
	for k := range n {
		fk := float64(k)
		m.post[k] = unit(-math.Pi * n0 * (fk + 0.5) / fn)
		m.inPre[k] = unit(math.Pi * n0 * fk / fn)
	}
	return m, nil
}

func unit(theta float64) complex128 {
	s, c := math.Sincos(theta)
	return complex(c, s)
}

// Size returns the number of coefficients per block.
func (m *MDCT) Size() int { return m.n }

// BlockLen returns the number of input samples per block, 2*Size.
func (m *MDCT) BlockLen() int { return 2 * m.n }

func (m *MDCT) check() error {
	if m.engine.closed {
		return ErrClosed
	}
	return nil
}

func (m *MDCT) block(x []float64, pos int) error {
	for i := range m.tmp {
		v := 0.0
		if idx := pos + i; idx >= 0 && idx < len(x) {
			v = x[idx]
		}
		m.tmp[i] = v
	}
	if err := window.ApplyCoefficientsInPlace(m.tmp, m.window); err != nil {
		return fmt.Errorf("transform: mdct window: %w", err)
	}
	return nil
}

// Forward computes the n coefficients of the block of x starting at pos into
// dst. Samples past either end of x read as zero.
func (m *MDCT) Forward(dst, x []float64, pos int) error {
	if err := m.check(); err != nil {
		return err
	}
	if len(dst) != m.n {
		return fmt.Errorf("%w: mdct forward dst %d != %d", ErrLength, len(dst), m.n)
	}

	if err := m.block(x, pos); err != nil {
		return err
	}
	for i, v := range m.tmp {
		m.buf[i] = complex(v, 0) * m.pre[i]
	}
	if err := m.plan.Forward(m.buf, m.buf); err != nil {
		return fmt.Errorf("transform: mdct forward: %w", err)
	}
	for k := range m.n {
		dst[k] = real(m.buf[k] * m.post[k])
	}
	return nil
}

// ForwardReference computes the same coefficients as Forward by direct
// summation in O(n^2).
func (m *MDCT) ForwardReference(dst, x []float64, pos int) error {
	if len(dst) != m.n {
		return fmt.Errorf("%w: mdct forward dst %d != %d", ErrLength, len(dst), m.n)
	}

	if err := m.block(x, pos); err != nil {
		return err
	}
	fn := float64(m.n)
	n0 := 0.5 + fn/2
	for k := range m.n {
		sum := 0.0
		for i, v := range m.tmp {
			sum += v * math.Cos(math.Pi/fn*(float64(i)+n0)*(float64(k)+0.5))
		}
		dst[k] = sum
	}
	return nil
}

// Inverse writes the windowed 2n-sample time-domain block of coeffs to dst.
func (m *MDCT) Inverse(dst, coeffs []float64) error {
	if err := m.check(); err != nil {
		return err
	}
	if len(coeffs) != m.n || len(dst) != 2*m.n {
		return fmt.Errorf("%w: mdct inverse coeffs %d dst %d", ErrLength, len(coeffs), len(dst))
	}

	// Only the lower half of the spectrum is populated; taking the real part
	// afterwards supplies the odd-symmetric upper half.
	for k := range m.n {
		m.buf[k] = complex(coeffs[k], 0) * m.inPre[k]
	}
	for k := m.n; k < 2*m.n; k++ {
		m.buf[k] = 0
	}
	if err := m.plan.Inverse(m.buf, m.buf); err != nil {
		return fmt.Errorf("transform: mdct inverse: %w", err)
	}

	// Inverse is normalized by 1/(2n); undo that and apply the 2/n synthesis
	// scale in one factor.
	scale := 4.0
	for i := range 2 * m.n {
		dst[i] = scale * m.window[i] * real(m.inPost[i]*m.buf[i])
	}
	return nil
}

// InverseAdd inverse-transforms coeffs and overlap-adds the block into out at
// pos. Samples beyond out are dropped.
func (m *MDCT) InverseAdd(out, coeffs []float64, pos int) error {
	if err := m.Inverse(m.tmp, coeffs); err != nil {
		return err
	}
	for i, v := range m.tmp {
		if idx := pos + i; idx >= 0 && idx < len(out) {
			out[idx] += v
		}
	}
	return nil
}
