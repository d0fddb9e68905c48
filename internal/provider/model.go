package provider

// Model represents a transcription model with full metadata
type Model struct {
	ID                string          // unique identifier (e.g., "qwen3-asr-0.6b-q8_0", "whisper-1")
	Name              string          // display name
	Description       string          // short description
	SupportsBatch     bool            // can do batch/non-streaming transcription
	SupportsStreaming bool            // can emit tokens incrementally
	Local             bool            // runs locally (no API call)
	AdapterType       string          // which adapter to use (e.g., "qwen", "openai")
	Endpoint          *EndpointConfig // nil for local models
	LocalInfo         *LocalModelInfo // nil for cloud models
}

// EndpointConfig holds HTTP endpoint configuration
type EndpointConfig struct {
	BaseURL string // e.g., "https://api.openai.com"
	Path    string // e.g., "/v1/audio/transcriptions"
}

// LocalModelInfo holds metadata for downloadable local models
type LocalModelInfo struct {
	Filename    string // e.g., "qwen3-asr-0.6b-q8_0.gguf"
	Size        string // human readable size (e.g., "1.35GB")
	DownloadURL string // full URL to download from
}

// NeedsDownload returns true if this is a local model that requires downloading
func (m *Model) NeedsDownload() bool {
	return m.LocalInfo != nil
}

// SupportsBothModes returns true if this model supports both batch and streaming
func (m *Model) SupportsBothModes() bool {
	return m.SupportsBatch && m.SupportsStreaming
}
