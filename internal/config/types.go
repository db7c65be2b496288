package config

import (
	"reflect"
	"time"

	"github.com/leonardotrapani/hueprompt/internal/notify"
)

type Config struct {
	Generation    GenerationConfig          `toml:"generation"`
	Providers     map[string]ProviderConfig `toml:"providers"`
	Storage       StorageConfig             `toml:"storage"`
	Theme         ThemeConfig               `toml:"theme"`
	ColorNames    ColorNamesConfig          `toml:"color_names"`
	Notifications NotificationsConfig       `toml:"notifications"`
}

// ProviderConfig holds API key for a provider
type ProviderConfig struct {
	APIKey string `toml:"api_key"`
}

// GenerationConfig configures the prompt and the generation service call
type GenerationConfig struct {
	Provider    string        `toml:"provider"`
	Model       string        `toml:"model"`
	Endpoint    string        `toml:"endpoint"` // required for the http provider, optional base URL otherwise
	NumColors   int           `toml:"num_colors"`
	Discussion  string        `toml:"discussion"`  // "plain", "critique", "humorous"
	Composition string        `toml:"composition"` // "none", "professional", "artistic"
	Sentences   int           `toml:"sentences"`   // 0 = let the model decide
	Temperature float64       `toml:"temperature"`
	MaxTokens   int           `toml:"max_tokens"`
	Timeout     time.Duration `toml:"timeout"`
}

type StorageConfig struct {
	Backend string `toml:"backend"` // "file" or "sqlite"
	Path    string `toml:"path"`    // directory; empty = config directory
}

type ThemeConfig struct {
	Mode string `toml:"mode"` // "auto", "standard", "dark", "styled"
}

type ColorNamesConfig struct {
	Enabled  bool          `toml:"enabled"`
	Endpoint string        `toml:"endpoint"`
	CacheTTL time.Duration `toml:"cache_ttl"`
}

type NotificationsConfig struct {
	Enabled  bool           `toml:"enabled"`
	Type     string         `toml:"type"` // "desktop", "log", "none"
	Messages MessagesConfig `toml:"messages"`
}

type MessageConfig struct {
	Title string `toml:"title"`
	Body  string `toml:"body"`
}

type MessagesConfig struct {
	PaletteGenerated MessageConfig `toml:"palette_generated"`
	PaletteSaved     MessageConfig `toml:"palette_saved"`
	PaletteDuplicate MessageConfig `toml:"palette_duplicate"`
	Copied           MessageConfig `toml:"copied"`
	GenerationFailed MessageConfig `toml:"generation_failed"`
	ConfigReloaded   MessageConfig `toml:"config_reloaded"`
}

// Resolve merges user config with defaults from MessageDefs
func (m *MessagesConfig) Resolve() map[notify.MessageType]notify.Message {
	result := make(map[notify.MessageType]notify.Message)

	v := reflect.ValueOf(m).Elem()
	t := v.Type()
	tagToField := make(map[string]int)
	for i := 0; i < t.NumField(); i++ {
		tagToField[t.Field(i).Tag.Get("toml")] = i
	}

	for _, def := range notify.MessageDefs {
		msg := notify.Message{
			Title:   def.DefaultTitle,
			Body:    def.DefaultBody,
			IsError: def.IsError,
		}
		if idx, ok := tagToField[def.ConfigKey]; ok {
			userMsg := v.Field(idx).Interface().(MessageConfig)
			if userMsg.Title != "" {
				msg.Title = userMsg.Title
			}
			if userMsg.Body != "" {
				msg.Body = userMsg.Body
			}
		}
		result[def.Type] = msg
	}
	return result
}
