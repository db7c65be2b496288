package config

import (
	"log"
	"os"
	"path/filepath"

	"github.com/leonardotrapani/hueprompt/internal/llm"
	"github.com/leonardotrapani/hueprompt/internal/provider"
	"github.com/leonardotrapani/hueprompt/internal/theme"
)

// ToLLMConfig returns the adapter configuration for the selected provider
func (c *Config) ToLLMConfig() llm.Config {
	return llm.Config{
		Provider:    c.Generation.Provider,
		APIKey:      c.ResolveAPIKey(c.Generation.Provider),
		Model:       c.Generation.Model,
		Endpoint:    c.Generation.Endpoint,
		Temperature: float32(c.Generation.Temperature),
		MaxTokens:   c.Generation.MaxTokens,
	}
}

// ToGenerationConfig returns the prompt settings. Unknown style names fall back
// to the defaults so a hand-edited file never blocks generation.
func (c *Config) ToGenerationConfig() llm.GenerationConfig {
	cfg := llm.DefaultGenerationConfig()
	cfg.NumColors = c.Generation.NumColors
	cfg.Sentences = c.Generation.Sentences

	if d, err := llm.ParseDiscussion(c.Generation.Discussion); err == nil {
		cfg.Discussion = d
	} else {
		log.Printf("Config: %v, using %s", err, cfg.Discussion)
	}
	if comp, err := llm.ParseComposition(c.Generation.Composition); err == nil {
		cfg.Composition = comp
	} else {
		log.Printf("Config: %v, using %s", err, cfg.Composition)
	}
	return cfg
}

// ThemeMode returns the forced theme mode, or ok=false when the mode is automatic
func (c *Config) ThemeMode() (theme.Mode, bool) {
	if c.Theme.Mode == "" || c.Theme.Mode == "auto" {
		return "", false
	}
	m, err := theme.ParseMode(c.Theme.Mode)
	if err != nil {
		return "", false
	}
	return m, true
}

// DataDir is where palettes are persisted
func (c *Config) DataDir() (string, error) {
	if c.Storage.Path != "" {
		return c.Storage.Path, nil
	}
	return GetConfigDir()
}

// ColorNameCachePath is the gache file for color names
func (c *Config) ColorNameCachePath() (string, error) {
	dir, err := GetCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "color_names.json"), nil
}

// ResolveAPIKey returns the API key for a provider from, in order, the
// providers table, the provider's environment variable and the system keyring
func (c *Config) ResolveAPIKey(providerName string) string {
	if c.Providers != nil {
		if pc, ok := c.Providers[providerName]; ok && pc.APIKey != "" {
			return pc.APIKey
		}
	}

	if envVar := provider.EnvVarForProvider(providerName); envVar != "" {
		if key := os.Getenv(envVar); key != "" {
			return key
		}
	}

	return keyringAPIKey(providerName)
}
