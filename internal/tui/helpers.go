package tui

import (
	"fmt"
	"strings"

	"github.com/qwenvoice/qwenvoice/internal/models/qwen"
	"github.com/qwenvoice/qwenvoice/internal/provider"
)

// providerDisplayNames maps provider IDs to human-readable names.
var providerDisplayNames = map[string]string{
	provider.ProviderLocal:  "Qwen3-ASR (local)",
	provider.ProviderOpenAI: "OpenAI",
}

func getProviderDisplayName(providerName string) string {
	if name, ok := providerDisplayNames[providerName]; ok {
		return name
	}
	return providerName
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "***"
	}
	return key[:7] + "..." + key[len(key)-4:]
}

func buildModelDesc(m provider.Model) string {
	parts := []string{}
	if m.Description != "" {
		parts = append(parts, m.Description)
	} else if m.Name != "" {
		parts = append(parts, m.Name)
	}

	if m.SupportsBothModes() {
		parts = append(parts, "batch+streaming")
	} else if m.SupportsStreaming {
		parts = append(parts, "streaming")
	} else {
		parts = append(parts, "batch-only")
	}

	if m.Local && m.LocalInfo != nil && m.LocalInfo.Size != "" {
		parts = append(parts, fmt.Sprintf("size %s", m.LocalInfo.Size))
	}

	if m.Local {
		if qwen.IsInstalled(m.ID) {
			parts = append(parts, "installed")
		} else {
			parts = append(parts, "not installed")
		}
	}

	if len(parts) == 0 {
		return "Transcription model"
	}
	return strings.Join(parts, " - ")
}
