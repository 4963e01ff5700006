// Package peak selects the sinusoidal tracks of a frame from its one-sided
// magnitude and phase spectrum.
//
// Selection keeps the K bins with the highest score in a bounded min-heap,
// O(N log K). By default the score is the magnitude. With WithSalience the
// score is the bin's power relative to the energy of its critical band, so a
// quiet component in an empty band can outrank a loud neighbour of an already
// dominant component.
package peak
