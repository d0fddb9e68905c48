package provider

import "strings"

// OpenAIProvider implements Provider for OpenAI transcription services
type OpenAIProvider struct{}

func (p *OpenAIProvider) Name() string {
	return ProviderOpenAI
}

func (p *OpenAIProvider) RequiresAPIKey() bool {
	return true
}

func (p *OpenAIProvider) ValidateAPIKey(key string) bool {
	return strings.HasPrefix(key, "sk-")
}

func (p *OpenAIProvider) IsLocal() bool {
	return false
}

func (p *OpenAIProvider) Models() []Model {
	endpoint := &EndpointConfig{BaseURL: "https://api.openai.com", Path: "/v1/audio/transcriptions"}

	return []Model{
		{
			ID:            "whisper-1",
			Name:          "Whisper 1",
			Description:   "OpenAI's production speech-to-text model",
			SupportsBatch: true,
			AdapterType:   AdapterOpenAI,
			Endpoint:      endpoint,
		},
		{
			ID:            "gpt-4o-transcribe",
			Name:          "GPT-4o Transcribe",
			Description:   "Higher accuracy speech-to-text built on GPT-4o",
			SupportsBatch: true,
			AdapterType:   AdapterOpenAI,
			Endpoint:      endpoint,
		},
		{
			ID:            "gpt-4o-mini-transcribe",
			Name:          "GPT-4o Mini Transcribe",
			Description:   "Fast and affordable speech-to-text",
			SupportsBatch: true,
			AdapterType:   AdapterOpenAI,
			Endpoint:      endpoint,
		},
	}
}

func (p *OpenAIProvider) DefaultModel() string {
	return "whisper-1"
}
