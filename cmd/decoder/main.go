// Command decoder reconstructs a 16-bit mono WAV file from a stream written
// by encoder.
//
// Usage:
//
//	decoder <in.bin> <out.wav> [--strict] [--gain-match=true|false]
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/cwbudde/algo-codec/audio/wavio"
	"github.com/cwbudde/algo-codec/codec/codecerr"
	"github.com/cwbudde/algo-codec/codec/pipeline"
	"github.com/cwbudde/algo-codec/internal/cliutil"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("decoder: ")
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		log.Fatal(err)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("decoder", flag.ContinueOnError)
	fs.SetOutput(stderr)
	strict := fs.Bool("strict", false, "fail on truncated streams instead of decoding missing bits as zeros")
	gainMatch := fs.Bool("gain-match", true, "scale the output peak to the encoder's peak reference")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: decoder <in.bin> <out.wav> [flags]\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	pos, err := cliutil.Parse(fs, args)
	if err != nil {
		return err
	}
	if err := cliutil.Positional(pos, 2, "in.bin", "out.wav"); err != nil {
		fs.Usage()
		return err
	}

	opts := []pipeline.DecodeOption{pipeline.WithGainMatch(*gainMatch)}
	if *strict {
		opts = append(opts, pipeline.WithStrict())
	}

	data, err := os.ReadFile(pos[0])
	if err != nil {
		return codecerr.IO("read", pos[0], err)
	}
	res, err := pipeline.NewDecoder(opts...).Decode(data)
	if err != nil {
		return err
	}
	if err := wavio.Write(pos[1], res.Samples, res.Header.SampleRate); err != nil {
		return err
	}

	h := res.Header
	fmt.Fprintf(stdout, "Metadata loaded: frame_size=%d hop=%d frames=%d ktop=%d format=%s\n",
		h.FrameSize, h.HopSize, h.TotalFrames, h.TopK, h.Format)
	fmt.Fprintf(stdout, "Reference: peak=%.6f rms=%.6f\n", h.PeakReference, h.RMSReference)
	fmt.Fprintf(stdout, "Decoded %d samples @ %d Hz\n", len(res.Samples), h.SampleRate)
	fmt.Fprintf(stdout, "Gain applied=%.6f\n", res.Gain)
	return nil
}
