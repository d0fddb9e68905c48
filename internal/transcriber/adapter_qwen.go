package transcriber

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/qwenvoice/qwenvoice/internal/asr"
)

// QwenAdapter implements Adapter and StreamingAdapter for in-process
// Qwen3-ASR transcription.
type QwenAdapter struct {
	mu     sync.Mutex // asr.Context is single-owner, serialize access
	asrCtx *asr.Context
	params asr.Params
}

// NewQwenAdapter loads the GGUF model at cfg.ModelPath and returns an
// adapter ready to transcribe. The model stays resident until Close.
func NewQwenAdapter(cfg Config) (*QwenAdapter, error) {
	if cfg.ModelPath == "" {
		return nil, fmt.Errorf("model path required for local transcription")
	}
	if _, err := os.Stat(cfg.ModelPath); err != nil {
		return nil, fmt.Errorf("model file not found: %s", cfg.ModelPath)
	}

	params := asr.DefaultParams()
	params.Threads = int32(cfg.Threads)
	params.UseGPU = cfg.UseGPU
	params.GPUDevice = int32(cfg.GPUDevice)
	params.Temperature = float32(cfg.Temperature)

	asrCtx := asr.NewContext()
	start := time.Now()
	if !asrCtx.LoadModel(cfg.ModelPath) {
		asrCtx.Close()
		return nil, NewFatalTranscriptionError(fmt.Errorf("failed to load model: %s", cfg.ModelPath))
	}
	log.Printf("qwen-adapter: loaded model %s in %v", cfg.ModelPath, time.Since(start))

	return &QwenAdapter{asrCtx: asrCtx, params: params}, nil
}

func (a *QwenAdapter) Transcribe(ctx context.Context, samples []float32) (string, error) {
	if len(samples) == 0 {
		return "", nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	a.mu.Lock()
	res := a.asrCtx.Transcribe(samples, a.params)
	a.mu.Unlock()

	if !res.Success {
		return "", fmt.Errorf("qwen transcription failed")
	}

	log.Printf("qwen-adapter: transcribed %d samples in %.0fms: %q", len(samples), res.DurationMS, res.Text)
	return res.Text, nil
}

// TranscribeStreaming decodes with per-token delivery. Cancelling ctx
// aborts decoding at the next token boundary; tokens already delivered
// to onToken are not retracted.
func (a *QwenAdapter) TranscribeStreaming(ctx context.Context, samples []float32, onToken func(token string)) (string, error) {
	if len(samples) == 0 {
		return "", nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	cb := func(token string) bool {
		if ctx.Err() != nil {
			return false
		}
		if onToken != nil {
			onToken(token)
		}
		return true
	}

	a.mu.Lock()
	res := a.asrCtx.TranscribeStreaming(samples, a.params, cb)
	a.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !res.Success {
		return "", fmt.Errorf("qwen streaming transcription failed")
	}

	log.Printf("qwen-adapter: streamed %d tokens in %.0fms", res.TokenCount, res.DurationMS)
	return res.Text, nil
}

func (a *QwenAdapter) Close() error {
	if a == nil {
		return nil
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.asrCtx.Close()
	return nil
}
