// Package pipeline turns PCM samples into a compressed stream and back.
//
// A stream is a fixed header followed by one record per analysis frame:
//
//	frameSize:u16 hopSize:u16 sampleRate:u32 peakReference:f32 rmsReference:f32
//	topK:u16 magBits:u8 phaseBits:u8 thresholdDb:u16 totalFrames:u32
//	format:u8 flags:u8 [residualStep:f32]
//	frame*totalFrames: trackRecord [residualRecord]
//
// Header scalars are byte aligned and little-endian. Frame records are packed
// LSB-first without padding between frames. The format byte selects one of
// the two track layouts of package track. The residual record is present
// only when the header carries FlagResidual.
//
// The encoder analyzes overlapping periodic-Hann frames, keeps the TopK
// strongest bins of each frame as tracks and codes them with the track
// codec. The decoder turns each track back into the bin value the analysis
// would have produced for it, inverse-transforms the sparse spectrum and
// overlap-adds the frames.
//
// With the residual layer enabled the encoder first reconstructs the
// track-only signal exactly as the decoder will, then codes the MDCT of what
// the tracks missed, one block of hopSize coefficients per frame.
package pipeline
