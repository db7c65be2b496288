package config

import (
	"time"

	"github.com/leonardotrapani/hueprompt/internal/llm"
	"github.com/leonardotrapani/hueprompt/internal/provider"
)

const (
	DefaultColorNamesEndpoint = "https://www.thecolorapi.com"
	DefaultTimeout            = 30 * time.Second
)

// DefaultConfig returns the configuration written on first run.
func DefaultConfig() *Config {
	gen := llm.DefaultGenerationConfig()
	return &Config{
		Generation: GenerationConfig{
			Provider:    provider.ProviderOpenAI,
			Model:       provider.GetProvider(provider.ProviderOpenAI).DefaultModel(),
			NumColors:   gen.NumColors,
			Discussion:  string(gen.Discussion),
			Composition: string(gen.Composition),
			Temperature: llm.DefaultTemperature,
			MaxTokens:   llm.DefaultMaxTokens,
			Timeout:     DefaultTimeout,
		},
		Providers: make(map[string]ProviderConfig),
		Storage: StorageConfig{
			Backend: "file",
		},
		Theme: ThemeConfig{
			Mode: "auto",
		},
		ColorNames: ColorNamesConfig{
			Enabled:  false,
			Endpoint: DefaultColorNamesEndpoint,
			CacheTTL: 30 * 24 * time.Hour,
		},
		Notifications: NotificationsConfig{
			Enabled: false,
			Type:    "log",
		},
	}
}
