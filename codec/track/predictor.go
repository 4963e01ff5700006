package track

// Predictor supplies the per-slot prior for differential coding.
type Predictor interface {
	// Predict returns the prior bin and phase for slot. Slots the previous
	// frame did not have predict bin 0 and phase 0.
	Predict(slot int) (bin int, phase float64)
	// Update replaces the state with the reconstructed tracks of a frame.
	Update(tracks []Track)
	// Reset clears all state.
	Reset()
}

// SlotPredictor predicts slot i from slot i of the previous frame.
//
// The state always has exactly as many slots as the previous frame had
// tracks.
type SlotPredictor struct {
	bins   []int
	phases []float64
}

// NewSlotPredictor returns an empty SlotPredictor.
func NewSlotPredictor() *SlotPredictor {
	return &SlotPredictor{}
}

// Len returns the number of slots carried from the previous frame.
func (p *SlotPredictor) Len() int { return len(p.bins) }

// Predict implements Predictor.
func (p *SlotPredictor) Predict(slot int) (int, float64) {
	if slot < 0 || slot >= len(p.bins) {
		return 0, 0
	}
	return p.bins[slot], p.phases[slot]
}

// Update implements Predictor.
func (p *SlotPredictor) Update(tracks []Track) {
	p.bins = p.bins[:0]
	p.phases = p.phases[:0]
	for _, t := range tracks {
		p.bins = append(p.bins, t.Bin)
		p.phases = append(p.phases, t.Phase)
	}
}

// Reset implements Predictor.
func (p *SlotPredictor) Reset() {
	p.bins = p.bins[:0]
	p.phases = p.phases[:0]
}
