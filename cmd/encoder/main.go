// Command encoder compresses a 16-bit PCM WAV file into a parametric stream.
//
// Usage:
//
//	encoder <in.wav> <out.bin> [flags]
//
// Examples:
//
//	encoder speech.wav speech.bin
//	encoder music.wav music.bin --ktop=64 --qbits=10:6 --format=fixed
//	encoder music.wav music.bin --residual --residual-step=0.005
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/cwbudde/algo-codec/audio/wavio"
	"github.com/cwbudde/algo-codec/codec/pipeline"
	"github.com/cwbudde/algo-codec/codec/track"
	"github.com/cwbudde/algo-codec/internal/cliutil"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("encoder: ")
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		log.Fatal(err)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("encoder", flag.ContinueOnError)
	fs.SetOutput(stderr)
	ktop := fs.Int("ktop", pipeline.DefaultTopK, "tracks kept per frame")
	qbits := fs.String("qbits", fmt.Sprintf("%d:%d", pipeline.DefaultMagBits, pipeline.DefaultPhaseBits), "magnitude:phase quantizer bits")
	threshold := fs.Int("threshold", pipeline.DefaultThresholdDB, "residual gate in dB below the peak")
	nfft := fs.Int("nfft", pipeline.DefaultFrameSize, "analysis frame size (power of two)")
	hop := fs.Int("hop", pipeline.DefaultHopSize, "frame advance in samples")
	format := fs.String("format", track.DefaultFormat.String(), "track layout: rice or fixed")
	salience := fs.Bool("salience", false, "pick peaks by Bark-band salience")
	withResidual := fs.Bool("residual", false, "code the MDCT residual after the tracks")
	residualStep := fs.Float64("residual-step", pipeline.DefaultResidualStep, "residual quantizer step")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: encoder <in.wav> <out.bin> [flags]\n\n")
		fmt.Fprintf(stderr, "Compresses 16-bit PCM WAV audio into a parametric stream.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	pos, err := cliutil.Parse(fs, args)
	if err != nil {
		return err
	}
	if err := cliutil.Positional(pos, 2, "in.wav", "out.bin"); err != nil {
		fs.Usage()
		return err
	}

	magBits, phaseBits, err := cliutil.ParseQBits(*qbits)
	if err != nil {
		return err
	}
	f, err := track.ParseFormat(*format)
	if err != nil {
		return err
	}
	opts := []pipeline.Option{
		pipeline.WithFormat(f),
		pipeline.WithFrameSize(*nfft),
		pipeline.WithHopSize(*hop),
		pipeline.WithTopK(*ktop),
		pipeline.WithQuantBits(magBits, phaseBits),
		pipeline.WithThresholdDB(*threshold),
		pipeline.WithSalience(*salience),
	}
	if *withResidual {
		opts = append(opts, pipeline.WithResidual(*residualStep))
	}
	enc, err := pipeline.NewEncoder(opts...)
	if err != nil {
		return err
	}

	clip, err := wavio.Read(pos[0])
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	st, err := enc.Encode(&buf, clip.Samples, clip.SampleRate)
	if err != nil {
		return err
	}
	if err := cliutil.WriteFile(pos[1], buf.Bytes()); err != nil {
		return err
	}

	h := st.Header
	fmt.Fprintf(stdout, "Frame config: frame_size=%d hop=%d frames=%d sample_rate=%d\n",
		h.FrameSize, h.HopSize, h.TotalFrames, h.SampleRate)
	fmt.Fprintf(stdout, "Top-K=%d | qmag=%d qphase=%d | format=%s | threshold=%d dB\n",
		h.TopK, h.MagBits, h.PhaseBits, h.Format, h.ThresholdDB)
	fmt.Fprintf(stdout, "Input stats: peak=%.6f rms=%.6f channels=%d samples=%d\n",
		h.PeakReference, h.RMSReference, clip.Channels, len(clip.Samples))
	if h.Flags.Has(pipeline.FlagResidual) {
		fmt.Fprintf(stdout, "Residual: step=%g coefficients=%d\n", h.ResidualStep, st.ResidualCoefficients)
	}
	fmt.Fprintf(stdout, "Tracks: %d\n", st.Tracks)
	fmt.Fprintf(stdout, "Bytes written: %d\n", st.Bytes)
	return nil
}
