package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwbudde/algo-codec/codec/codecerr"
	"github.com/cwbudde/algo-codec/codec/pipeline"
	"github.com/cwbudde/algo-codec/internal/testutil"
)

func writeStream(t *testing.T, dir string, opts ...pipeline.Option) string {
	t.Helper()
	enc, err := pipeline.NewEncoder(opts...)
	if err != nil {
		t.Fatal(err)
	}
	data, _, err := enc.EncodeBytes(testutil.DeterministicSine(300, 8000, 0.4, 4000), 8000)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "s.bin")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunPrintsHeader(t *testing.T) {
	path := writeStream(t, t.TempDir(), pipeline.WithFrameSize(256), pipeline.WithHopSize(64), pipeline.WithTopK(4), pipeline.WithResidual(0.02))

	var stdout bytes.Buffer
	if err := run([]string{path, "--frames"}, &stdout, io.Discard); err != nil {
		t.Fatal(err)
	}
	out := stdout.String()
	for _, want := range []string{"Frame size", "256", "Overlap [%]", "75.0", "Coherent gain", "0.5000", "ENBW [bins]", "1.5000", "Top-K", "Residual step", "0.02", "Frame", "Tracks"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output lacks %q:\n%s", want, out)
		}
	}
	// (4000-256)/64+1 frames, one table row each.
	if rows := strings.Count(out, "\n"); rows < 59+16 {
		t.Fatalf("output has %d lines, want header plus 59 frame rows", rows)
	}
}

func TestRunCorruptStream(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.bin")
	if err := os.WriteFile(path, []byte{0, 0, 0}, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := run([]string{path}, io.Discard, io.Discard); !errors.Is(err, codecerr.ErrFormat) {
		t.Fatalf("err = %v, want ErrFormat", err)
	}
}

var errWrite = errors.New("write failed")

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errWrite }

func TestPrintFramesWriteError(t *testing.T) {
	err := printFrames(failingWriter{}, []pipeline.FrameInfo{{Tracks: 1, Bits: 40}})
	if !errors.Is(err, errWrite) {
		t.Fatalf("err = %v, want write error", err)
	}
	// The blank line before the header flushes, so the header write fails.
	if !strings.Contains(err.Error(), "write frame table") {
		t.Fatalf("err = %v, want wrapped by the table writer", err)
	}
}
