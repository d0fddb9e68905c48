package asr

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strings"
)

// sampleRate is the only audio format the boundary accepts: float32 PCM,
// mono, 16 kHz.
const sampleRate = 16000

// stubTokens is the fixed token sequence the stub emits in streaming mode.
// It exists purely to exercise the callback and early-abort contract.
var stubTokens = []string{"[Qwen3", "-ASR", " streaming", " stub]"}

// stubEngine satisfies the engine contract without the vendor library. Its
// load path validates the GGUF header so model-file handling can be tested
// end to end; its transcription paths produce deterministic placeholders.
type stubEngine struct {
	modelPath string
}

func newStubEngine() engine {
	return &stubEngine{}
}

func (e *stubEngine) load(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	var header [4]byte
	if _, err := io.ReadFull(f, header[:]); err != nil {
		return false
	}
	if binary.LittleEndian.Uint32(header[:]) != GGUFMagic {
		return false
	}

	e.modelPath = path
	return true
}

func (e *stubEngine) batch(samples []float32, params Params) engineOutput {
	seconds := float64(len(samples)) / sampleRate
	return engineOutput{
		text:   fmt.Sprintf("[Qwen3-ASR stub: %d samples, %.1fs audio]", len(samples), seconds),
		tokens: 1,
		ok:     true,
	}
}

func (e *stubEngine) stream(samples []float32, params Params, cb TokenCallback) engineOutput {
	var text strings.Builder
	var delivered int32

	for _, token := range stubTokens {
		cont := cb == nil || cb(token)
		// the token was delivered either way: count it and keep it
		delivered++
		text.WriteString(token)
		if !cont {
			break
		}
	}

	return engineOutput{
		text:   text.String(),
		tokens: delivered,
		ok:     true,
	}
}

func (e *stubEngine) free() {}
