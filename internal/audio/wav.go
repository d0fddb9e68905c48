// Package audio loads WAV files into the sample format the transcription
// boundary expects: float32 PCM, mono, 16 kHz. No resampling or channel
// mixing is performed; files in any other format are rejected so the
// caller knows to convert them first.
package audio

import (
	"fmt"
	"os"

	"github.com/go-audio/wav"
)

const (
	// SampleRate is the only sample rate the engine accepts.
	SampleRate = 16000
	// channels and bit depth the loader accepts
	wantChannels = 1
	wantBitDepth = 16
)

// LoadWAV reads a 16 kHz mono 16-bit PCM WAV file and returns its samples
// normalized to float32 in [-1, 1).
func LoadWAV(path string) ([]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio file: %w", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	dec.ReadInfo()
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("not a valid WAV file: %s", path)
	}

	if dec.SampleRate != SampleRate {
		return nil, fmt.Errorf("unsupported sample rate %d Hz (want %d Hz, resample first)", dec.SampleRate, SampleRate)
	}
	if dec.NumChans != wantChannels {
		return nil, fmt.Errorf("unsupported channel count %d (want mono)", dec.NumChans)
	}
	if dec.BitDepth != wantBitDepth {
		return nil, fmt.Errorf("unsupported bit depth %d (want 16-bit PCM)", dec.BitDepth)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to decode WAV: %w", err)
	}

	// normalize s16 to [-1, 1)
	samples := make([]float32, len(buf.Data))
	for i, s := range buf.Data {
		samples[i] = float32(s) / 32768.0
	}
	return samples, nil
}

// Duration returns the audio duration in seconds for a sample count at the
// fixed engine sample rate.
func Duration(sampleCount int) float64 {
	return float64(sampleCount) / SampleRate
}
