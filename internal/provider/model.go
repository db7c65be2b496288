package provider

// Model describes a generation model offered by a provider
type Model struct {
	ID          string // unique identifier (e.g., "gpt-4o-mini")
	Name        string // display name (e.g., "GPT-4o Mini")
	Description string // short description
	BaseURL     string // API base URL used by the adapter
}
