package pipeline

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-codec/codec/bitstream"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func encodeHeader(t *testing.T, h Header) []byte {
	t.Helper()
	w := bitstream.NewWriter()
	if err := h.WriteTo(w); err != nil {
		t.Fatal(err)
	}
	return w.Bytes()
}
