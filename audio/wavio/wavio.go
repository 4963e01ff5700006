// Package wavio reads and writes 16-bit integer PCM WAV files as mono float
// samples in [-1, 1].
package wavio

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/cwbudde/algo-codec/codec/codecerr"
	"github.com/cwbudde/algo-codec/dsp/core"
	"github.com/cwbudde/algo-codec/internal/atomicfile"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	formatPCM = 1
	bitDepth  = 16

	readScale  = 32768.0
	writeScale = 32767.0
)

// Clip is decoded PCM audio. Samples hold the channel average.
type Clip struct {
	SampleRate int
	Channels   int
	Samples    []float64
}

// Duration returns the clip length in seconds.
func (c *Clip) Duration() float64 {
	if c.SampleRate <= 0 {
		return 0
	}
	return float64(len(c.Samples)) / float64(c.SampleRate)
}

// Read decodes the WAV file at path.
func Read(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, codecerr.IO("open", path, err)
	}
	defer f.Close()

	clip, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("wavio: %s: %w", path, err)
	}
	return clip, nil
}

// Decode reads a WAV stream. Anything but 16-bit integer PCM fails with
// codecerr.ErrUnsupportedFormat; a stream that is not a WAV file at all fails
// with codecerr.ErrFormat.
func Decode(r io.ReadSeeker) (*Clip, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		if dec.Err() != nil {
			return nil, fmt.Errorf("wavio: %w: %w", codecerr.ErrFormat, dec.Err())
		}
		return nil, codecerr.Formatf("wavio: not a wav file")
	}
	if dec.WavAudioFormat != formatPCM {
		return nil, fmt.Errorf("%w: wav format tag %d", codecerr.ErrUnsupportedFormat, dec.WavAudioFormat)
	}
	if dec.BitDepth != bitDepth {
		return nil, fmt.Errorf("%w: %d-bit samples", codecerr.ErrUnsupportedFormat, dec.BitDepth)
	}
	channels := int(dec.NumChans)
	if channels < 1 {
		return nil, codecerr.Formatf("wavio: %d channels", channels)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("wavio: read samples: %w: %w", codecerr.ErrIO, err)
	}

	frames := len(buf.Data) / channels
	samples := make([]float64, frames)
	for i := range samples {
		sum := 0
		for _, v := range buf.Data[i*channels : (i+1)*channels] {
			sum += v
		}
		samples[i] = float64(sum) / float64(channels) / readScale
	}
	return &Clip{SampleRate: int(dec.SampleRate), Channels: channels, Samples: samples}, nil
}

// Write stores samples as a 16-bit mono WAV file at path. The file is written
// next to path under a temporary name and renamed into place, so a failed
// write leaves no partial output.
func Write(path string, samples []float64, sampleRate int) error {
	return atomicfile.Write(path, func(f *os.File) error {
		if err := Encode(f, samples, sampleRate); err != nil {
			return fmt.Errorf("wavio: %s: %w", path, err)
		}
		return nil
	})
}

// Encode writes samples to w as 16-bit mono PCM. Samples are clamped to
// [-1, 1] and scaled by 32767, rounding half away from zero.
func Encode(w io.WriteSeeker, samples []float64, sampleRate int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("wavio: sample rate must be > 0: %d", sampleRate)
	}

	data := make([]int, len(samples))
	for i, s := range samples {
		if math.IsNaN(s) {
			continue
		}
		data[i] = int(math.Round(core.Clamp(s, -1, 1) * writeScale))
	}
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}

	enc := wav.NewEncoder(w, sampleRate, bitDepth, 1, formatPCM)
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("wavio: write samples: %w: %w", codecerr.ErrIO, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("wavio: finish header: %w: %w", codecerr.ErrIO, err)
	}
	return nil
}
