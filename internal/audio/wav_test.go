package audio

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// writeTestWAV encodes the given int16 samples as a WAV file and returns
// its path.
func writeTestWAV(t *testing.T, sampleRate, channels int, data []int) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create wav file: %v", err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, 16, channels, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("failed to encode wav: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("failed to close encoder: %v", err)
	}
	return path
}

func TestLoadWAV(t *testing.T) {
	data := []int{0, 16384, -16384, 32767, -32768}
	path := writeTestWAV(t, SampleRate, 1, data)

	samples, err := LoadWAV(path)
	if err != nil {
		t.Fatalf("LoadWAV() error = %v", err)
	}
	if len(samples) != len(data) {
		t.Fatalf("got %d samples, want %d", len(samples), len(data))
	}

	want := []float32{0, 0.5, -0.5, 32767.0 / 32768.0, -1}
	for i := range want {
		if math.Abs(float64(samples[i]-want[i])) > 1e-6 {
			t.Errorf("samples[%d] = %v, want %v", i, samples[i], want[i])
		}
	}
}

func TestLoadWAVRejectsWrongFormat(t *testing.T) {
	t.Run("wrong sample rate", func(t *testing.T) {
		path := writeTestWAV(t, 44100, 1, make([]int, 100))
		if _, err := LoadWAV(path); err == nil {
			t.Error("LoadWAV() accepted a 44.1 kHz file")
		}
	})

	t.Run("stereo", func(t *testing.T) {
		path := writeTestWAV(t, SampleRate, 2, make([]int, 100))
		if _, err := LoadWAV(path); err == nil {
			t.Error("LoadWAV() accepted a stereo file")
		}
	})

	t.Run("not a wav at all", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "garbage.wav")
		if err := os.WriteFile(path, []byte("definitely not riff"), 0600); err != nil {
			t.Fatalf("write: %v", err)
		}
		if _, err := LoadWAV(path); err == nil {
			t.Error("LoadWAV() accepted garbage")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadWAV(filepath.Join(t.TempDir(), "missing.wav")); err == nil {
			t.Error("LoadWAV() accepted a missing file")
		}
	})
}

func TestDuration(t *testing.T) {
	if d := Duration(16000); d != 1.0 {
		t.Errorf("Duration(16000) = %v, want 1.0", d)
	}
	if d := Duration(8000); d != 0.5 {
		t.Errorf("Duration(8000) = %v, want 0.5", d)
	}
}
