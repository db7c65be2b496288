package provider

import "sort"

// Provider describes a text-generation service that can answer palette prompts
type Provider interface {
	Name() string
	DisplayName() string
	RequiresAPIKey() bool
	APIKeyURL() string
	ValidateAPIKey(key string) bool
	RequiresEndpoint() bool
	DefaultModel() string
	Models() []Model
}

var registry = make(map[string]Provider)

func init() {
	Register(&OpenAIProvider{})
	Register(&GroqProvider{})
	Register(&HTTPProvider{})
}

// Register adds a provider to the registry
func Register(p Provider) {
	registry[p.Name()] = p
}

// GetProvider returns a provider by name, or nil if not found
func GetProvider(name string) Provider {
	return registry[name]
}

// ListProviders returns all registered provider names, sorted
func ListProviders() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FindModelByID searches all providers for a model with the given ID
func FindModelByID(id string) (Model, Provider, bool) {
	for _, name := range ListProviders() {
		p := registry[name]
		for _, m := range p.Models() {
			if m.ID == id {
				return m, p, true
			}
		}
	}
	return Model{}, nil, false
}
