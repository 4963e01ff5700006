// Package cliutil holds argument handling shared by the commands.
package cliutil

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-codec/codec/codecerr"
	"github.com/cwbudde/algo-codec/internal/atomicfile"
)

// ErrUsage is returned for malformed command lines.
var ErrUsage = errors.New("usage error")

// Parse parses args with fs, allowing flags before, between and after
// positional arguments. Everything after a "--" is positional. It returns the
// positional arguments in order.
func Parse(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if len(rest) == 0 {
			return positional, nil
		}
		if consumed := len(args) - len(rest); consumed > 0 && args[consumed-1] == "--" {
			return append(positional, rest...), nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}

// Positional checks that exactly n positional arguments were given.
func Positional(args []string, n int, names ...string) error {
	if len(args) != n {
		return fmt.Errorf("%w: want %d arguments (%s), got %d", ErrUsage, n, strings.Join(names, " "), len(args))
	}
	return nil
}

// ParseQBits parses a "M:P" pair of magnitude and phase bit widths.
func ParseQBits(s string) (magBits, phaseBits uint, err error) {
	m, p, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("%w: qbits %q is not M:P", ErrUsage, s)
	}
	mv, err := strconv.ParseUint(strings.TrimSpace(m), 10, 8)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: qbits magnitude %q: %w", ErrUsage, m, err)
	}
	pv, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: qbits phase %q: %w", ErrUsage, p, err)
	}
	return uint(mv), uint(pv), nil
}

// WriteFile writes data to a temporary file next to path and renames it into
// place, so a failed write leaves no partial output.
func WriteFile(path string, data []byte) error {
	return atomicfile.Write(path, func(f *os.File) error {
		if _, err := f.Write(data); err != nil {
			return codecerr.IO("write", f.Name(), err)
		}
		return nil
	})
}
