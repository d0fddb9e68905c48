package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

func GetConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}

	qwenvoiceDir := filepath.Join(configDir, "qwenvoice")
	if err := os.MkdirAll(qwenvoiceDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return filepath.Join(qwenvoiceDir, "config.toml"), nil
}

func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	// If config file doesn't exist, create it with defaults
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Printf("Config: no config file found at %s, creating with defaults", configPath)
		if err := SaveDefaultConfig(); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		return Load() // Recursively load the config, now file will exist
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat config file %s: %w", configPath, err)
	}

	log.Printf("Config: loading configuration from %s", configPath)
	var config Config
	if _, err := toml.DecodeFile(configPath, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	if config.Providers == nil {
		config.Providers = make(map[string]ProviderConfig)
	}

	return &config, nil
}

// Save writes the configuration to the config path as TOML.
func Save(c *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	if err := toml.NewEncoder(file).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

func SaveDefaultConfig() error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	configContent := `# Qwenvoice Configuration
# This file is automatically generated with defaults.
# Edit values as needed - changes are picked up by running watch pipelines.

# Local Model Configuration
[model]
  id = "qwen3-asr-0.6b-q8_0"   # Model from the registry (see: qwenvoice model list)
  path = ""                    # Explicit path to a .gguf file (overrides id when set)

# Transcription Configuration
[transcription]
  provider = "local"           # Transcription backend ("local" or "openai")
  model = ""                   # Remote model name for the openai provider (e.g. "whisper-1")
  language = ""                # Language code (empty for auto-detect, "en", "it", "es", etc.)
  streaming = false            # Emit tokens incrementally when the backend supports it
  threads = 0                  # CPU threads for local decoding (0 = engine default)
  use_gpu = true               # Offload decoding to GPU when compiled with GPU support
  gpu_device = 0               # GPU device index
  temperature = 0.0            # Sampling temperature (0.0 = greedy decoding)

# Provider API keys (or use environment variables like OPENAI_API_KEY)
# [providers.openai]
#   api_key = ""
`

	if _, err := file.WriteString(configContent); err != nil {
		return fmt.Errorf("failed to write config content: %w", err)
	}

	return nil
}
