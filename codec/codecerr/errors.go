// Package codecerr defines the error kinds shared by the codec packages.
//
// Errors from the bitstream, track, pipeline and wavio packages that concern
// stream or file contents wrap one of these sentinels, so callers can branch
// with errors.Is regardless of which layer produced the failure.
package codecerr

import (
	"errors"
	"fmt"
)

var (
	// ErrIO reports a failure to open, read or write external storage.
	ErrIO = errors.New("codec: i/o failure")
	// ErrFormat reports a corrupt header or malformed frame data.
	ErrFormat = errors.New("codec: malformed data")
	// ErrUnsupportedFormat reports a PCM container that is not 16-bit integer PCM.
	ErrUnsupportedFormat = errors.New("codec: unsupported pcm format")
	// ErrTruncated reports a bitstream that ended before the decoder was done.
	// It wraps ErrFormat.
	ErrTruncated = fmt.Errorf("%w: bitstream truncated", ErrFormat)
)

// Formatf returns an ErrFormat-wrapping error with a formatted detail message.
func Formatf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrFormat, fmt.Sprintf(format, args...))
}

// IO wraps err as an ErrIO failure for the given operation and path.
func IO(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s %s: %w", ErrIO, op, path, err)
}
