package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/qwenvoice/qwenvoice/internal/models/qwen"
)

// useTempConfigDir points os.UserConfigDir at a temp directory so tests
// never touch the real user configuration.
func useTempConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	return dir
}

func writeConfig(t *testing.T, content string) {
	t.Helper()
	path, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
}

func TestGetConfigPath(t *testing.T) {
	dir := useTempConfigDir(t)

	path, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}
	want := filepath.Join(dir, "qwenvoice", "config.toml")
	if path != want {
		t.Errorf("GetConfigPath() = %s, want %s", path, want)
	}
	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		t.Errorf("config directory was not created: %v", err)
	}
}

func TestLoadCreatesDefaultConfig(t *testing.T) {
	useTempConfigDir(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Transcription.Provider != "local" {
		t.Errorf("default provider = %s, want local", cfg.Transcription.Provider)
	}
	if cfg.Model.ID != qwen.DefaultModelID {
		t.Errorf("default model id = %s, want %s", cfg.Model.ID, qwen.DefaultModelID)
	}
	if !cfg.Transcription.UseGPU {
		t.Error("default use_gpu = false, want true")
	}
	if cfg.Transcription.Threads != 0 {
		t.Errorf("default threads = %d, want 0", cfg.Transcription.Threads)
	}

	// The generated file should be loadable and commented
	path, _ := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read generated config: %v", err)
	}
	if !strings.Contains(string(data), "# Qwenvoice Configuration") {
		t.Error("generated config missing header comment")
	}
}

func TestLoadParsesUserConfig(t *testing.T) {
	useTempConfigDir(t)
	writeConfig(t, `
[model]
id = "qwen3-asr-0.6b-f16"

[transcription]
provider = "local"
streaming = true
threads = 8
use_gpu = false
temperature = 0.4

[providers.openai]
api_key = "sk-test"
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Model.ID != "qwen3-asr-0.6b-f16" {
		t.Errorf("model id = %s", cfg.Model.ID)
	}
	if !cfg.Transcription.Streaming {
		t.Error("streaming not parsed")
	}
	if cfg.Transcription.Threads != 8 {
		t.Errorf("threads = %d, want 8", cfg.Transcription.Threads)
	}
	if cfg.Transcription.UseGPU {
		t.Error("use_gpu = true, want false")
	}
	if cfg.Providers["openai"].APIKey != "sk-test" {
		t.Errorf("openai api key = %q", cfg.Providers["openai"].APIKey)
	}
}

func TestLoadRejectsInvalidTOML(t *testing.T) {
	useTempConfigDir(t)
	writeConfig(t, "[transcription\nprovider = local")

	if _, err := Load(); err == nil {
		t.Error("Load() accepted malformed TOML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "default local config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "empty provider",
			mutate:  func(c *Config) { c.Transcription.Provider = "" },
			wantErr: true,
		},
		{
			name:    "unknown provider",
			mutate:  func(c *Config) { c.Transcription.Provider = "groq" },
			wantErr: true,
		},
		{
			name:    "unknown model id",
			mutate:  func(c *Config) { c.Model.ID = "qwen3-asr-99b" },
			wantErr: true,
		},
		{
			name: "explicit path skips registry check",
			mutate: func(c *Config) {
				c.Model.ID = "qwen3-asr-99b"
				c.Model.Path = "/opt/models/custom.gguf"
			},
			wantErr: false,
		},
		{
			name:    "negative threads",
			mutate:  func(c *Config) { c.Transcription.Threads = -2 },
			wantErr: true,
		},
		{
			name:    "negative gpu device",
			mutate:  func(c *Config) { c.Transcription.GPUDevice = -1 },
			wantErr: true,
		},
		{
			name:    "temperature out of range",
			mutate:  func(c *Config) { c.Transcription.Temperature = 1.5 },
			wantErr: true,
		},
		{
			name: "openai without api key",
			mutate: func(c *Config) {
				c.Transcription.Provider = "openai"
				c.Transcription.Model = "whisper-1"
			},
			wantErr: true,
		},
		{
			name: "openai with api key",
			mutate: func(c *Config) {
				c.Transcription.Provider = "openai"
				c.Transcription.Model = "whisper-1"
				c.Providers["openai"] = ProviderConfig{APIKey: "sk-test"}
			},
			wantErr: false,
		},
		{
			name: "openai missing model",
			mutate: func(c *Config) {
				c.Transcription.Provider = "openai"
				c.Providers["openai"] = ProviderConfig{APIKey: "sk-test"}
			},
			wantErr: true,
		},
		{
			name: "openai invalid language",
			mutate: func(c *Config) {
				c.Transcription.Provider = "openai"
				c.Transcription.Model = "whisper-1"
				c.Transcription.Language = "english"
				c.Providers["openai"] = ProviderConfig{APIKey: "sk-test"}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("OPENAI_API_KEY", "")
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestResolveAPIKey(t *testing.T) {
	t.Run("from config", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Providers["openai"] = ProviderConfig{APIKey: "sk-config"}
		if got := cfg.ResolveAPIKey("openai"); got != "sk-config" {
			t.Errorf("ResolveAPIKey() = %q, want sk-config", got)
		}
	})

	t.Run("from environment", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "sk-env")
		cfg := DefaultConfig()
		if got := cfg.ResolveAPIKey("openai"); got != "sk-env" {
			t.Errorf("ResolveAPIKey() = %q, want sk-env", got)
		}
	})

	t.Run("config takes precedence", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "sk-env")
		cfg := DefaultConfig()
		cfg.Providers["openai"] = ProviderConfig{APIKey: "sk-config"}
		if got := cfg.ResolveAPIKey("openai"); got != "sk-config" {
			t.Errorf("ResolveAPIKey() = %q, want sk-config", got)
		}
	})

	t.Run("unknown provider", func(t *testing.T) {
		cfg := DefaultConfig()
		if got := cfg.ResolveAPIKey("acme"); got != "" {
			t.Errorf("ResolveAPIKey() = %q, want empty", got)
		}
	})
}

func TestResolveModelPath(t *testing.T) {
	t.Setenv("QWENVOICE_MODELS_DIR", t.TempDir())

	t.Run("explicit path wins", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Model.Path = "/opt/models/custom.gguf"
		path, err := cfg.ResolveModelPath()
		if err != nil {
			t.Fatalf("ResolveModelPath() error = %v", err)
		}
		if path != "/opt/models/custom.gguf" {
			t.Errorf("path = %s", path)
		}
	})

	t.Run("registry id", func(t *testing.T) {
		cfg := DefaultConfig()
		path, err := cfg.ResolveModelPath()
		if err != nil {
			t.Fatalf("ResolveModelPath() error = %v", err)
		}
		if !strings.HasSuffix(path, ".gguf") {
			t.Errorf("path %s does not end in .gguf", path)
		}
	})

	t.Run("empty id falls back to default model", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Model.ID = ""
		path, err := cfg.ResolveModelPath()
		if err != nil {
			t.Fatalf("ResolveModelPath() error = %v", err)
		}
		want := qwen.GetModelPath(qwen.DefaultModelID)
		if path != want {
			t.Errorf("path = %s, want %s", path, want)
		}
	})
}

func TestManagerGetConfigReturnsCopy(t *testing.T) {
	useTempConfigDir(t)

	m, err := NewManager()
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	defer m.Stop()

	cfg := m.GetConfig()
	cfg.Transcription.Provider = "mutated"

	if m.GetConfig().Transcription.Provider == "mutated" {
		t.Error("GetConfig() returned a shared reference")
	}
}
