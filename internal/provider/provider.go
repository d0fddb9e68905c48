package provider

// Provider defines the interface for a transcription service provider
type Provider interface {
	Name() string
	RequiresAPIKey() bool
	ValidateAPIKey(key string) bool
	IsLocal() bool
	Models() []Model
	DefaultModel() string
}

var registry = make(map[string]Provider)

func init() {
	Register(&LocalProvider{})
	Register(&OpenAIProvider{})
}

// Register adds a provider to the registry
func Register(p Provider) {
	registry[p.Name()] = p
}

// GetProvider returns a provider by name, or nil if not found
func GetProvider(name string) Provider {
	return registry[name]
}

// ListProviders returns all registered provider names
func ListProviders() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}

// FindModelByID searches all providers for a model with the given id.
// Returns the model and its provider, or nil if not found.
func FindModelByID(id string) (*Model, Provider) {
	for _, p := range registry {
		for _, m := range p.Models() {
			if m.ID == id {
				model := m
				return &model, p
			}
		}
	}
	return nil, nil
}
