// Command validate compares a decoded WAV file against its original.
//
// Usage:
//
//	validate <original.wav> <decoded.wav>
//
// It prints sample counts, durations, levels of both signals, MSE, SNR, PSNR,
// peak error and the spectral centroid, spread, flatness and rolloff of both
// signals.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-codec/audio/wavio"
	"github.com/cwbudde/algo-codec/internal/cliutil"
	"github.com/cwbudde/algo-codec/measure/fidelity"
	frequencystats "github.com/cwbudde/algo-codec/stats/frequency"
	timestats "github.com/cwbudde/algo-codec/stats/time"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("validate: ")
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		log.Fatal(err)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: validate <original.wav> <decoded.wav>\n")
	}

	pos, err := cliutil.Parse(fs, args)
	if err != nil {
		return err
	}
	if err := cliutil.Positional(pos, 2, "original.wav", "decoded.wav"); err != nil {
		fs.Usage()
		return err
	}

	orig, err := wavio.Read(pos[0])
	if err != nil {
		return fmt.Errorf("load original: %w", err)
	}
	dec, err := wavio.Read(pos[1])
	if err != nil {
		return fmt.Errorf("load decoded: %w", err)
	}
	if orig.SampleRate != dec.SampleRate {
		fmt.Fprintf(stderr, "warning: sample rates differ: %d vs %d Hz\n", orig.SampleRate, dec.SampleRate)
	}

	r, err := fidelity.Compare(orig.Samples, dec.Samples, float64(orig.SampleRate))
	if err != nil {
		return err
	}
	return printReport(stdout, r, orig, dec)
}

func printReport(w io.Writer, r fidelity.Report, orig, dec *wavio.Clip) error {
	fmt.Fprintf(w, "Validation Report\n=================\n")
	fmt.Fprintf(w, "Samples compared: %d\n", r.Compared)
	fmt.Fprintf(w, "Durations: orig=%.4f s, dec=%.4f s\n\n", orig.Duration(), dec.Duration())

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Signal\tPeak\tRMS\tCrest\tCentroid [Hz]\tSpread [Hz]\tFlatness\tRolloff [Hz]\n")
	fmt.Fprintf(tw, "------\t----\t---\t-----\t-------------\t-----------\t--------\t------------\n")
	printSignalRow(tw, "Original", r.Original, r.OriginalSpectrum)
	printSignalRow(tw, "Decoded", r.Decoded, r.DecodedSpectrum)
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	fmt.Fprintf(w, "\nMetrics:\n")
	fmt.Fprintf(w, "  MSE:        %.8g\n", r.MSE)
	fmt.Fprintf(w, "  SNR:        %.2f dB\n", r.SNR)
	fmt.Fprintf(w, "  PSNR:       %.2f dB\n", r.PSNR)
	_, err := fmt.Fprintf(w, "  Peak Error: %.6f\n", r.PeakError)
	return err
}

func printSignalRow(w io.Writer, name string, lv timestats.Stats, sp frequencystats.Stats) {
	fmt.Fprintf(w, "%s\t%.6f\t%.6f\t%.3f\t%.1f\t%.1f\t%.4f\t%.1f\n",
		name, lv.Peak, lv.RMS, lv.CrestFactor, sp.Centroid, sp.Spread, sp.Flatness, sp.Rolloff)
}
