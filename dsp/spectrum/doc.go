// Package spectrum provides FFT-adjacent spectrum-domain utilities.
//
// The package does not implement FFT itself. It operates on complex spectrum
// bins produced by the transform engine: magnitude and phase
// extraction for the one-sided half of a real signal's spectrum, and
// Hermitian mirroring so a one-sided spectrum can be fed to a full-size
// inverse transform.
package spectrum
