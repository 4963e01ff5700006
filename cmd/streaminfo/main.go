// Command streaminfo prints the header of a stream written by encoder and,
// optionally, per-frame statistics.
//
// Usage:
//
//	streaminfo [--frames] [--strict] <in.bin>
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-codec/codec/codecerr"
	"github.com/cwbudde/algo-codec/codec/pipeline"
	"github.com/cwbudde/algo-codec/dsp/window"
	"github.com/cwbudde/algo-codec/internal/cliutil"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("streaminfo: ")
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		log.Fatal(err)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("streaminfo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	frames := fs.Bool("frames", false, "list track count, residual coefficients and size of every frame")
	strict := fs.Bool("strict", false, "fail on truncated streams")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: streaminfo [flags] <in.bin>\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	pos, err := cliutil.Parse(fs, args)
	if err != nil {
		return err
	}
	if err := cliutil.Positional(pos, 1, "in.bin"); err != nil {
		fs.Usage()
		return err
	}

	data, err := os.ReadFile(pos[0])
	if err != nil {
		return codecerr.IO("read", pos[0], err)
	}
	var opts []pipeline.DecodeOption
	if *strict {
		opts = append(opts, pipeline.WithStrict())
	}
	h, info, err := pipeline.NewDecoder(opts...).Inspect(data)
	if err != nil {
		return err
	}

	if err := printHeader(stdout, h, len(data)); err != nil {
		return err
	}
	if *frames {
		return printFrames(stdout, info)
	}
	return nil
}

type row struct {
	name  string
	value any
}

func printHeader(w io.Writer, h pipeline.Header, size int) error {
	win := window.Generate(window.TypeHann, h.FrameSize, window.WithPeriodic())
	cg, err := window.CoherentGain(win)
	if err != nil {
		return err
	}
	enbw, err := window.EquivalentNoiseBandwidth(win)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	rows := []row{
		{"Frame size", h.FrameSize},
		{"Hop size", h.HopSize},
		{"Overlap [%]", fmt.Sprintf("%.1f", 100*float64(h.FrameSize-h.HopSize)/float64(h.FrameSize))},
		{"Window", window.TypeHann},
		{"Coherent gain", fmt.Sprintf("%.4f", cg)},
		{"ENBW [bins]", fmt.Sprintf("%.4f", enbw)},
		{"Sample rate [Hz]", h.SampleRate},
		{"Frames", h.TotalFrames},
		{"Duration [s]", fmt.Sprintf("%.4f", h.Duration())},
		{"Top-K", h.TopK},
		{"Magnitude bits", h.MagBits},
		{"Phase bits", h.PhaseBits},
		{"Threshold [dB]", h.ThresholdDB},
		{"Format", h.Format},
		{"Salience", h.Flags.Has(pipeline.FlagSalience)},
		{"Residual", h.Flags.Has(pipeline.FlagResidual)},
		{"Peak reference", fmt.Sprintf("%.6f", h.PeakReference)},
		{"RMS reference", fmt.Sprintf("%.6f", h.RMSReference)},
		{"Stream bytes", size},
	}
	if h.Flags.Has(pipeline.FlagResidual) {
		rows = append(rows, row{"Residual step", h.ResidualStep})
	}

	for _, r := range rows {
		if _, err := fmt.Fprintf(tw, "%s\t%v\n", r.name, r.value); err != nil {
			return fmt.Errorf("write header table: %w", err)
		}
	}
	return tw.Flush()
}

func printFrames(w io.Writer, info []pipeline.FrameInfo) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	if _, err := fmt.Fprintf(tw, "\nFrame\tTracks\tResidual\tBits\t\n"); err != nil {
		return fmt.Errorf("write frame table: %w", err)
	}
	for i, fi := range info {
		if _, err := fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t\n", i, fi.Tracks, fi.ResidualCoefficients, fi.Bits); err != nil {
			return fmt.Errorf("write frame table: %w", err)
		}
	}
	return tw.Flush()
}
