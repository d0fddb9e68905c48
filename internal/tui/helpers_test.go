package tui

import (
	"strings"
	"testing"

	"github.com/qwenvoice/qwenvoice/internal/provider"
)

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"", "***"},
		{"short", "***"},
		{"sk-proj-abcdefghijklmnop", "sk-proj...mnop"},
	}
	for _, tt := range tests {
		if got := maskAPIKey(tt.key); got != tt.want {
			t.Errorf("maskAPIKey(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestStylesKeepMessageText(t *testing.T) {
	styles := map[string]interface{ Render(...string) string }{
		"success": StyleSuccess,
		"error":   StyleError,
		"warning": StyleWarning,
		"muted":   StyleMuted,
		"subtle":  StyleSubtle,
	}
	for name, style := range styles {
		if got := style.Render("message"); !strings.Contains(got, "message") {
			t.Errorf("%s style dropped its text: %q", name, got)
		}
	}
}

func TestGetProviderDisplayName(t *testing.T) {
	if got := getProviderDisplayName(provider.ProviderLocal); !strings.Contains(got, "Qwen") {
		t.Errorf("display name for local = %q", got)
	}
	if got := getProviderDisplayName("unknown"); got != "unknown" {
		t.Errorf("unknown provider display name = %q", got)
	}
}

func TestBuildModelDesc(t *testing.T) {
	t.Setenv("QWENVOICE_MODELS_DIR", t.TempDir())

	t.Run("local model shows size and install state", func(t *testing.T) {
		m := provider.Model{
			ID:                "qwen3-asr-0.6b-q8_0",
			Description:       "Quantized model",
			SupportsBatch:     true,
			SupportsStreaming: true,
			Local:             true,
			LocalInfo:         &provider.LocalModelInfo{Size: "1.35GB"},
		}
		desc := buildModelDesc(m)
		for _, want := range []string{"Quantized model", "batch+streaming", "1.35GB", "not installed"} {
			if !strings.Contains(desc, want) {
				t.Errorf("desc %q missing %q", desc, want)
			}
		}
	})

	t.Run("cloud batch model", func(t *testing.T) {
		m := provider.Model{ID: "whisper-1", Name: "Whisper 1", SupportsBatch: true}
		desc := buildModelDesc(m)
		if !strings.Contains(desc, "batch-only") {
			t.Errorf("desc %q missing batch-only", desc)
		}
	})
}
