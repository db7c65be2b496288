package provider

import "strings"

// GroqProvider implements Provider for Groq's OpenAI-compatible API
type GroqProvider struct{}

func (p *GroqProvider) Name() string {
	return ProviderGroq
}

func (p *GroqProvider) DisplayName() string {
	return "Groq"
}

func (p *GroqProvider) RequiresAPIKey() bool {
	return true
}

func (p *GroqProvider) APIKeyURL() string {
	return "https://console.groq.com/keys"
}

func (p *GroqProvider) ValidateAPIKey(key string) bool {
	return strings.HasPrefix(key, "gsk_")
}

func (p *GroqProvider) RequiresEndpoint() bool {
	return false
}

func (p *GroqProvider) DefaultModel() string {
	return "llama-3.3-70b-versatile"
}

func (p *GroqProvider) Models() []Model {
	const baseURL = "https://api.groq.com/openai/v1"
	return []Model{
		{ID: "llama-3.3-70b-versatile", Name: "Llama 3.3 70B", Description: "Versatile, high quality", BaseURL: baseURL},
		{ID: "llama-3.1-8b-instant", Name: "Llama 3.1 8B", Description: "Very fast responses", BaseURL: baseURL},
	}
}
