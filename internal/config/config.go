package config

import (
	"fmt"
	"os"

	"github.com/qwenvoice/qwenvoice/internal/models/qwen"
)

type Config struct {
	Model         ModelConfig               `toml:"model"`
	Transcription TranscriptionConfig       `toml:"transcription"`
	Providers     map[string]ProviderConfig `toml:"providers"`
}

// ModelConfig selects the local GGUF model used by the "local" provider.
type ModelConfig struct {
	ID   string `toml:"id"`   // registry model id, e.g. "qwen3-asr-0.6b-q8_0"
	Path string `toml:"path"` // explicit .gguf path, overrides id when set
}

type TranscriptionConfig struct {
	Provider    string  `toml:"provider"` // "local" or "openai"
	Model       string  `toml:"model"`    // remote model name for the openai provider
	Language    string  `toml:"language"`
	Streaming   bool    `toml:"streaming"`
	Threads     int     `toml:"threads"` // CPU threads for local decoding (0 = engine default)
	UseGPU      bool    `toml:"use_gpu"`
	GPUDevice   int     `toml:"gpu_device"`
	Temperature float64 `toml:"temperature"`
}

// ProviderConfig holds API key for a provider
type ProviderConfig struct {
	APIKey string `toml:"api_key"`
}

// ResolveAPIKey returns the API key for a provider, checking config first
// then the provider's environment variable.
func (c *Config) ResolveAPIKey(provider string) string {
	if p, ok := c.Providers[provider]; ok && p.APIKey != "" {
		return p.APIKey
	}
	switch provider {
	case "openai":
		return os.Getenv("OPENAI_API_KEY")
	}
	return ""
}

// ResolveModelPath returns the GGUF path for the local provider: the
// explicit path when set, otherwise the registry path for the configured id.
func (c *Config) ResolveModelPath() (string, error) {
	if c.Model.Path != "" {
		return c.Model.Path, nil
	}
	id := c.Model.ID
	if id == "" {
		id = qwen.DefaultModelID
	}
	path := qwen.GetModelPath(id)
	if path == "" {
		return "", fmt.Errorf("unknown model id: %s", id)
	}
	return path, nil
}

func (c *Config) Validate() error {
	if c.Transcription.Provider == "" {
		return fmt.Errorf("invalid transcription.provider: empty")
	}

	switch c.Transcription.Provider {
	case "local":
		if c.Model.Path == "" && c.Model.ID != "" {
			if qwen.GetModel(c.Model.ID) == nil {
				return fmt.Errorf("invalid model.id: unknown model %s", c.Model.ID)
			}
		}
		if c.Transcription.Threads < 0 {
			return fmt.Errorf("invalid transcription.threads: %d (must be >= 0)", c.Transcription.Threads)
		}
		if c.Transcription.GPUDevice < 0 {
			return fmt.Errorf("invalid transcription.gpu_device: %d", c.Transcription.GPUDevice)
		}
		if c.Transcription.Temperature < 0 || c.Transcription.Temperature > 1 {
			return fmt.Errorf("invalid transcription.temperature: %v (must be between 0 and 1)", c.Transcription.Temperature)
		}

	case "openai":
		if c.ResolveAPIKey("openai") == "" {
			return fmt.Errorf("OpenAI API key required: not found in config (providers.openai.api_key) or environment variable (OPENAI_API_KEY)")
		}
		if c.Transcription.Model == "" {
			return fmt.Errorf("invalid transcription.model: empty (e.g. whisper-1)")
		}
		if c.Transcription.Language != "" && !isValidLanguageCode(c.Transcription.Language) {
			return fmt.Errorf("invalid transcription.language: %s (use empty string for auto-detect or ISO-639-1 codes like 'en', 'es', 'fr')", c.Transcription.Language)
		}

	default:
		return fmt.Errorf("unsupported transcription.provider: %s (must be local or openai)", c.Transcription.Provider)
	}

	return nil
}

func isValidLanguageCode(code string) bool {
	validCodes := map[string]bool{
		"en": true, "es": true, "fr": true, "de": true, "it": true, "pt": true,
		"ru": true, "ja": true, "ko": true, "zh": true, "ar": true, "hi": true,
		"nl": true, "sv": true, "da": true, "no": true, "fi": true, "pl": true,
		"tr": true, "he": true, "th": true, "vi": true, "id": true, "ms": true,
		"uk": true, "cs": true, "hu": true, "ro": true, "bg": true, "hr": true,
	}
	return validCodes[code]
}
