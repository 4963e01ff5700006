package peak

import (
	"container/heap"
	"fmt"
	"sort"

	"github.com/cwbudde/algo-codec/codec/track"
)

// Option configures Select.
type Option func(*config)

type config struct {
	salience   bool
	sampleRate float64
	bands      int
}

// WithSalience ranks bins by band-relative power instead of magnitude.
func WithSalience(sampleRate float64) Option {
	return func(c *config) {
		c.salience = true
		c.sampleRate = sampleRate
	}
}

// WithBands sets the number of critical bands used by WithSalience.
func WithBands(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.bands = n
		}
	}
}

type candidate struct {
	bin   int
	score float64
}

// minHeap keeps the weakest candidate on top. Among equal scores the higher
// bin is weaker, so ties resolve toward lower bins.
type minHeap []candidate

func (h minHeap) Len() int { return len(h) }
func (h minHeap) Less(i, j int) bool {
	if h[i].score != h[j].score {
		return h[i].score < h[j].score
	}
	return h[i].bin > h[j].bin
}
func (h minHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *minHeap) Push(x any)   { *h = append(*h, x.(candidate)) }
func (h *minHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

func stronger(a, b candidate) bool {
	if a.score != b.score {
		return a.score > b.score
	}
	return a.bin < b.bin
}

// Select returns the k strongest bins of a one-sided spectrum as tracks
// sorted by ascending bin. mag and phase cover bins [0, N/2] and must have
// equal length. The tracks carry the bin's own magnitude and phase, never
// its score.
func Select(mag, phase []float64, k int, opts ...Option) ([]track.Track, error) {
	if len(mag) != len(phase) {
		return nil, fmt.Errorf("peak: magnitude/phase length mismatch: %d != %d", len(mag), len(phase))
	}
	if k <= 0 || len(mag) == 0 {
		return nil, nil
	}

	cfg := config{bands: DefaultBands}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	score := mag
	if cfg.salience {
		score = Salience(mag, BarkEdges(len(mag), cfg.sampleRate, cfg.bands))
	}

	k = min(k, len(mag))
	h := make(minHeap, 0, k)
	for bin, s := range score {
		c := candidate{bin: bin, score: s}
		switch {
		case len(h) < k:
			heap.Push(&h, c)
		case stronger(c, h[0]):
			h[0] = c
			heap.Fix(&h, 0)
		}
	}

	sort.Slice(h, func(i, j int) bool { return h[i].bin < h[j].bin })
	out := make([]track.Track, len(h))
	for i, c := range h {
		out[i] = track.Track{Bin: c.bin, Magnitude: mag[c.bin], Phase: phase[c.bin]}
	}
	return out, nil
}
