// Package track encodes per-frame sets of sinusoidal tracks.
//
// A frame is a slice of Track values ordered by increasing bin. Two wire
// layouts exist and are selected once per stream:
//
//   - FixedWidthPeak: a raw 16-bit count, then per track a raw 12-bit bin, a
//     linear magnitude code and a linear phase code of configurable widths.
//   - RiceDifferential: a Rice(k=0) count, then per track the bin difference
//     to the predicted bin (signed Rice k=2), a log magnitude code (signed
//     Rice k=3) and a 64-level phase-difference bucket (Rice k=6).
//
// Prediction is index based: slot i of a frame is predicted from slot i of
// the previous frame, regardless of which bins the slots hold. Encoder and
// decoder both update prediction state from reconstructed (dequantized)
// tracks, so their states stay identical and frames must be decoded strictly
// in order.
package track
