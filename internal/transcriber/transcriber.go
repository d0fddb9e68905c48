package transcriber

import (
	"context"
	"fmt"

	"github.com/qwenvoice/qwenvoice/internal/config"
)

// Adapter interface for transcription backends. Samples are mono
// 16 kHz float32 PCM in [-1, 1].
type Adapter interface {
	Transcribe(ctx context.Context, samples []float32) (string, error)
	Close() error
}

// StreamingAdapter is implemented by backends that can emit tokens
// incrementally. onToken is called once per decoded token, in order.
type StreamingAdapter interface {
	Adapter
	TranscribeStreaming(ctx context.Context, samples []float32, onToken func(token string)) (string, error)
}

// Configuration for a transcription adapter
type Config struct {
	Provider    string
	APIKey      string
	Language    string
	Model       string // remote model name (openai provider)
	ModelPath   string // local .gguf path (local provider)
	Threads     int
	UseGPU      bool
	GPUDevice   int
	Temperature float64
}

// ConfigFrom builds an adapter Config from the application configuration.
func ConfigFrom(c *config.Config) (Config, error) {
	cfg := Config{
		Provider:    c.Transcription.Provider,
		Language:    c.Transcription.Language,
		Model:       c.Transcription.Model,
		Threads:     c.Transcription.Threads,
		UseGPU:      c.Transcription.UseGPU,
		GPUDevice:   c.Transcription.GPUDevice,
		Temperature: c.Transcription.Temperature,
	}

	switch c.Transcription.Provider {
	case "local":
		path, err := c.ResolveModelPath()
		if err != nil {
			return Config{}, fmt.Errorf("resolve model path: %w", err)
		}
		cfg.ModelPath = path
	case "openai":
		cfg.APIKey = c.ResolveAPIKey("openai")
	}

	return cfg, nil
}

// New creates the adapter for the configured provider.
func New(cfg Config) (Adapter, error) {
	switch cfg.Provider {
	case "local":
		a, err := NewQwenAdapter(cfg)
		if err != nil {
			return nil, err
		}
		return a, nil

	case "openai":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("OpenAI API key required")
		}
		return NewOpenAIAdapter(cfg), nil

	default:
		return nil, fmt.Errorf("unsupported provider: %s", cfg.Provider)
	}
}
