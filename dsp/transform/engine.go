package transform

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-codec/dsp/core"
)

var (
	// ErrClosed is returned when an engine is used after Close.
	ErrClosed = errors.New("transform: engine closed")
	// ErrSize is returned for transform sizes that are not a power of two.
	ErrSize = errors.New("transform: size must be a power of two >= 2")
	// ErrLength is returned when buffers are shorter than the transform needs.
	ErrLength = errors.New("transform: buffer length mismatch")
)

// Engine owns FFT plans keyed by size.
type Engine struct {
	plans  map[int]*algofft.Plan[complex128]
	closed bool
}

// NewEngine returns an engine with no plans allocated.
func NewEngine() *Engine {
	return &Engine{plans: make(map[int]*algofft.Plan[complex128])}
}

// Plan returns the FFT plan for size, creating it on first use.
func (e *Engine) Plan(size int) (*algofft.Plan[complex128], error) {
	if e.closed {
		return nil, ErrClosed
	}
	if !core.IsPowerOfTwo(size) {
		return nil, fmt.Errorf("%w: %d", ErrSize, size)
	}
	if p, ok := e.plans[size]; ok {
		return p, nil
	}

	p, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("transform: create plan of size %d: %w", size, err)
	}
	e.plans[size] = p
	return p, nil
}

// Plans returns the number of plans currently held.
func (e *Engine) Plans() int { return len(e.plans) }

// Close releases all plans. Further use of the engine, or of transforms
// created from it, fails with ErrClosed.
func (e *Engine) Close() error {
	e.plans = nil
	e.closed = true
	return nil
}
