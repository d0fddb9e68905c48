package provider

// Provider name constants for config and registry
const (
	ProviderLocal  = "local"
	ProviderOpenAI = "openai"
)

// Environment variable names for API keys
const (
	EnvOpenAIKey = "OPENAI_API_KEY"
)

// Adapter type constants for transcription backends
const (
	AdapterQwen   = "qwen"
	AdapterOpenAI = "openai"
)

// EnvVarForProvider returns the environment variable name for a provider's API key
func EnvVarForProvider(provider string) string {
	switch provider {
	case ProviderOpenAI:
		return EnvOpenAIKey
	default:
		return ""
	}
}
