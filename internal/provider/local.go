package provider

import "github.com/qwenvoice/qwenvoice/internal/models/qwen"

// LocalProvider implements Provider for in-process Qwen3-ASR transcription
type LocalProvider struct{}

func (p *LocalProvider) Name() string {
	return ProviderLocal
}

func (p *LocalProvider) RequiresAPIKey() bool {
	return false
}

func (p *LocalProvider) ValidateAPIKey(key string) bool {
	return true // no API key needed
}

func (p *LocalProvider) IsLocal() bool {
	return true
}

func (p *LocalProvider) Models() []Model {
	qwenModels := qwen.ListModels()
	result := make([]Model, 0, len(qwenModels))

	for _, qm := range qwenModels {
		result = append(result, Model{
			ID:                qm.ID,
			Name:              qm.Name,
			Description:       qm.Description,
			SupportsBatch:     true,
			SupportsStreaming: true,
			Local:             true,
			AdapterType:       AdapterQwen,
			Endpoint:          nil, // in-process, no HTTP endpoint
			LocalInfo: &LocalModelInfo{
				Filename:    qm.Filename,
				Size:        qm.Size,
				DownloadURL: qwen.GetDownloadURL(qm.ID),
			},
		})
	}

	return result
}

func (p *LocalProvider) DefaultModel() string {
	return qwen.DefaultModelID
}
