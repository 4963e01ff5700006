// Package transform implements the frame transforms used by the codec: a
// Hann-windowed short-time Fourier transform and a sine-windowed modified
// discrete cosine transform.
//
// An Engine owns the FFT plans. Plans are created lazily, one per power-of-two
// size, and are shared by every STFT and MDCT created from the same engine.
// Engines are not safe for concurrent use.
//
// # Usage
//
//	eng := transform.NewEngine()
//	defer eng.Close()
//
//	stft, err := eng.NewSTFT(2048, 512)
//	if err != nil {
//		return err
//	}
//	frames, err := stft.Forward(samples)
//	...
//	recon, err := stft.Inverse(frames, len(samples))
//
// The inverse FFT of the underlying plans is normalized by 1/size, so the
// transforms here never rescale after Inverse.
package transform
