package config

import "github.com/qwenvoice/qwenvoice/internal/models/qwen"

// DefaultConfig returns the initial configuration written on first run.
func DefaultConfig() *Config {
	return &Config{
		Model: ModelConfig{
			ID: qwen.DefaultModelID,
		},
		Transcription: TranscriptionConfig{
			Provider:    "local",
			Language:    "",
			Streaming:   false,
			Threads:     0,
			UseGPU:      true,
			GPUDevice:   0,
			Temperature: 0,
		},
		Providers: make(map[string]ProviderConfig),
	}
}
