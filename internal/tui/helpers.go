package tui

import (
	"sort"

	"github.com/charmbracelet/huh"
	"github.com/leonardotrapani/hueprompt/internal/config"
	"github.com/leonardotrapani/hueprompt/internal/provider"
)

func getProviderDisplayName(providerName string) string {
	if p := provider.GetProvider(providerName); p != nil {
		return p.DisplayName()
	}
	return providerName
}

func getProviderKeyURL(providerName string) string {
	p := provider.GetProvider(providerName)
	if p == nil {
		return ""
	}
	return p.APIKeyURL()
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "***"
	}
	return key[:7] + "..." + key[len(key)-4:]
}

// keyedProviders returns providers that need an API key, sorted
func keyedProviders() []string {
	var names []string
	for _, name := range provider.ListProviders() {
		if provider.GetProvider(name).RequiresAPIKey() {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// keySource describes where a provider's key would currently come from
func keySource(cfg *config.Config, keyringKeys map[string]string, providerName string) string {
	if pc, ok := cfg.Providers[providerName]; ok && pc.APIKey != "" {
		return "config file"
	}
	if _, ok := keyringKeys[providerName]; ok {
		return "keyring (pending save)"
	}
	if cfg.ResolveAPIKey(providerName) != "" {
		return "environment or keyring"
	}
	return ""
}

func getModelOptions(providerName string) []huh.Option[string] {
	p := provider.GetProvider(providerName)
	if p == nil {
		return nil
	}

	options := make([]huh.Option[string], 0, len(p.Models()))
	for _, m := range p.Models() {
		label := m.Name
		if m.Description != "" {
			label += " - " + m.Description
		}
		options = append(options, huh.NewOption(label, m.ID))
	}
	return options
}
