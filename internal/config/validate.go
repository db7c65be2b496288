package config

import (
	"fmt"
	"strings"

	"github.com/leonardotrapani/hueprompt/internal/llm"
	"github.com/leonardotrapani/hueprompt/internal/provider"
)

func (c *Config) Validate() error {
	if err := c.validateGeneration(); err != nil {
		return err
	}

	switch c.Storage.Backend {
	case "file", "sqlite":
	default:
		return fmt.Errorf("invalid storage.backend: %s (must be file or sqlite)", c.Storage.Backend)
	}

	switch strings.ToLower(c.Theme.Mode) {
	case "", "auto", "standard", "dark", "styled":
	default:
		return fmt.Errorf("invalid theme.mode: %s (must be auto, standard, dark, or styled)", c.Theme.Mode)
	}

	if c.ColorNames.Enabled && c.ColorNames.Endpoint == "" {
		return fmt.Errorf("invalid color_names.endpoint: empty")
	}
	if c.ColorNames.CacheTTL < 0 {
		return fmt.Errorf("invalid color_names.cache_ttl: %v", c.ColorNames.CacheTTL)
	}

	if c.Notifications.Enabled {
		switch c.Notifications.Type {
		case "desktop", "log", "none":
		default:
			return fmt.Errorf("invalid notifications.type: %s (must be desktop, log, or none)", c.Notifications.Type)
		}
	}

	return nil
}

func (c *Config) validateGeneration() error {
	g := c.Generation

	if g.Provider == "" {
		return fmt.Errorf("invalid generation.provider: empty")
	}
	p := provider.GetProvider(g.Provider)
	if p == nil {
		return fmt.Errorf("invalid generation.provider: %s (must be one of %v)", g.Provider, provider.ListProviders())
	}

	if p.RequiresAPIKey() {
		if c.ResolveAPIKey(g.Provider) == "" {
			return fmt.Errorf("%s API key required: not found in config (providers.%s.api_key), environment variable (%s) or system keyring",
				p.DisplayName(), g.Provider, provider.EnvVarForProvider(g.Provider))
		}
	}
	if p.RequiresEndpoint() && g.Endpoint == "" {
		return fmt.Errorf("invalid generation.endpoint: required for provider %s", g.Provider)
	}

	if g.NumColors < llm.MinColors || g.NumColors > llm.MaxColors {
		return fmt.Errorf("invalid generation.num_colors: %d (must be %d-%d)", g.NumColors, llm.MinColors, llm.MaxColors)
	}
	if g.Sentences < 0 || g.Sentences > 6 {
		return fmt.Errorf("invalid generation.sentences: %d (must be 0-6)", g.Sentences)
	}
	if _, err := llm.ParseDiscussion(g.Discussion); err != nil {
		return fmt.Errorf("invalid generation.discussion: %w", err)
	}
	if _, err := llm.ParseComposition(g.Composition); err != nil {
		return fmt.Errorf("invalid generation.composition: %w", err)
	}
	if g.Temperature < 0 || g.Temperature > 2 {
		return fmt.Errorf("invalid generation.temperature: %v (must be 0-2)", g.Temperature)
	}
	if g.MaxTokens <= 0 {
		return fmt.Errorf("invalid generation.max_tokens: %d", g.MaxTokens)
	}
	if g.Timeout <= 0 {
		return fmt.Errorf("invalid generation.timeout: %v", g.Timeout)
	}

	return nil
}
