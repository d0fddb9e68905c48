package qwen

import (
	"os"
	"path/filepath"
)

// ModelInfo holds metadata for a Qwen3-ASR GGUF model
type ModelInfo struct {
	ID           string // model identifier (e.g., "qwen3-asr-0.6b-q8_0")
	Name         string // display name (e.g., "Qwen3-ASR 0.6B Q8_0")
	Filename     string // file name (e.g., "qwen3-asr-0.6b-q8_0.gguf")
	Size         string // human readable size
	SizeBytes    int64  // size in bytes for progress tracking
	Quantization string // "q8_0" or "f16"
	Description  string // short description shown in model list
}

// available qwen3-asr models from huggingface.co/FlippyDora/qwen3-asr-0.6b-GGUF
var models = []ModelInfo{
	{ID: "qwen3-asr-0.6b-q8_0", Name: "Qwen3-ASR 0.6B Q8_0", Filename: "qwen3-asr-0.6b-q8_0.gguf", Size: "1.3GB", SizeBytes: 1_350_000_000, Quantization: "q8_0", Description: "8-bit quantized, best speed/quality balance"},
	{ID: "qwen3-asr-0.6b-f16", Name: "Qwen3-ASR 0.6B F16", Filename: "qwen3-asr-0.6b-f16.gguf", Size: "1.9GB", SizeBytes: 1_880_000_000, Quantization: "f16", Description: "half precision, highest accuracy"},
}

// modelByID maps model ID to ModelInfo for quick lookup
var modelByID = func() map[string]ModelInfo {
	m := make(map[string]ModelInfo, len(models))
	for _, model := range models {
		m[model.ID] = model
	}
	return m
}()

// base URL for downloading models from huggingface; a var so tests can
// point it at a local server
var baseDownloadURL = "https://huggingface.co/FlippyDora/qwen3-asr-0.6b-GGUF/resolve/main"

// env override for the models directory, mainly for tests and
// non-standard installs
const modelsDirEnv = "QWENVOICE_MODELS_DIR"

// GetModelsDir returns the directory where qwen-asr models are stored.
func GetModelsDir() (string, error) {
	if dir := os.Getenv(modelsDirEnv); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", "qwenvoice", "models", "qwen-asr"), nil
}

// GetModelPath returns the full path to a model file.
// Returns empty string if model ID is unknown.
func GetModelPath(modelID string) string {
	info, ok := modelByID[modelID]
	if !ok {
		return ""
	}
	dir, err := GetModelsDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, info.Filename)
}

// GetDownloadURL returns the full download URL for a model.
// Returns empty string if model ID is unknown.
func GetDownloadURL(modelID string) string {
	info, ok := modelByID[modelID]
	if !ok {
		return ""
	}
	return baseDownloadURL + "/" + info.Filename
}

// GetModel returns info for a model by ID.
// Returns nil if model ID is unknown.
func GetModel(modelID string) *ModelInfo {
	info, ok := modelByID[modelID]
	if !ok {
		return nil
	}
	return &info
}

// ListModels returns all available qwen-asr models
func ListModels() []ModelInfo {
	result := make([]ModelInfo, len(models))
	copy(result, models)
	return result
}

// DefaultModelID is the recommended model for new installs.
const DefaultModelID = "qwen3-asr-0.6b-q8_0"
