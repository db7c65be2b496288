package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/leonardotrapani/hueprompt/internal/llm"
	"github.com/leonardotrapani/hueprompt/internal/notify"
	"github.com/leonardotrapani/hueprompt/internal/theme"
	"github.com/fsnotify/fsnotify"
	"github.com/zalando/go-keyring"
)

// createTestConfig returns a valid configuration for testing
func createTestConfig() *Config {
	cfg := DefaultConfig()
	cfg.Providers["openai"] = ProviderConfig{APIKey: "sk-test-api-key"}
	return cfg
}

// setConfigHome points os.UserConfigDir and os.UserCacheDir at a temp dir
func setConfigHome(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tempDir)
	t.Setenv("XDG_CACHE_HOME", filepath.Join(tempDir, "cache"))
	return tempDir
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr string
	}{
		{
			name:   "valid config",
			modify: func(c *Config) {},
		},
		{
			name:    "empty provider",
			modify:  func(c *Config) { c.Generation.Provider = "" },
			wantErr: "invalid generation.provider: empty",
		},
		{
			name:    "unknown provider",
			modify:  func(c *Config) { c.Generation.Provider = "davinci" },
			wantErr: "invalid generation.provider: davinci",
		},
		{
			name: "http provider without endpoint",
			modify: func(c *Config) {
				c.Generation.Provider = "http"
			},
			wantErr: "invalid generation.endpoint",
		},
		{
			name: "http provider with endpoint needs no key",
			modify: func(c *Config) {
				c.Generation.Provider = "http"
				c.Generation.Endpoint = "http://localhost:8080/generate"
			},
		},
		{
			name:    "too many colors",
			modify:  func(c *Config) { c.Generation.NumColors = 7 },
			wantErr: "invalid generation.num_colors: 7",
		},
		{
			name:    "zero colors",
			modify:  func(c *Config) { c.Generation.NumColors = 0 },
			wantErr: "invalid generation.num_colors: 0",
		},
		{
			name:    "negative sentences",
			modify:  func(c *Config) { c.Generation.Sentences = -1 },
			wantErr: "invalid generation.sentences",
		},
		{
			name:    "unknown discussion",
			modify:  func(c *Config) { c.Generation.Discussion = "sarcastic" },
			wantErr: "invalid generation.discussion",
		},
		{
			name:    "alias composition",
			modify:  func(c *Config) { c.Generation.Composition = "prof" },
			wantErr: "",
		},
		{
			name:    "temperature out of range",
			modify:  func(c *Config) { c.Generation.Temperature = 3 },
			wantErr: "invalid generation.temperature",
		},
		{
			name:    "zero max tokens",
			modify:  func(c *Config) { c.Generation.MaxTokens = 0 },
			wantErr: "invalid generation.max_tokens",
		},
		{
			name:    "zero timeout",
			modify:  func(c *Config) { c.Generation.Timeout = 0 },
			wantErr: "invalid generation.timeout",
		},
		{
			name:    "unknown storage backend",
			modify:  func(c *Config) { c.Storage.Backend = "redis" },
			wantErr: "invalid storage.backend: redis",
		},
		{
			name:    "unknown theme mode",
			modify:  func(c *Config) { c.Theme.Mode = "neon" },
			wantErr: "invalid theme.mode: neon",
		},
		{
			name: "color names without endpoint",
			modify: func(c *Config) {
				c.ColorNames.Enabled = true
				c.ColorNames.Endpoint = ""
			},
			wantErr: "invalid color_names.endpoint",
		},
		{
			name: "invalid notification type",
			modify: func(c *Config) {
				c.Notifications.Enabled = true
				c.Notifications.Type = "email"
			},
			wantErr: "invalid notifications.type: email",
		},
		{
			name: "disabled notifications ignore type",
			modify: func(c *Config) {
				c.Notifications.Enabled = false
				c.Notifications.Type = "email"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := createTestConfig()
			tt.modify(config)
			err := config.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Validate_MissingAPIKey(t *testing.T) {
	keyring.MockInit()
	t.Setenv("OPENAI_API_KEY", "")

	config := DefaultConfig()
	err := config.Validate()
	if err == nil {
		t.Fatal("expected error for missing API key")
	}
	if !strings.Contains(err.Error(), "OPENAI_API_KEY") {
		t.Errorf("error should mention the environment variable, got: %v", err)
	}
}

func TestConfig_ResolveAPIKey(t *testing.T) {
	keyring.MockInit()

	t.Run("providers table wins", func(t *testing.T) {
		t.Setenv("GROQ_API_KEY", "gsk_env")
		if err := SetAPIKey("groq", "gsk_keyring"); err != nil {
			t.Fatalf("SetAPIKey() error = %v", err)
		}
		defer DeleteAPIKey("groq")

		config := DefaultConfig()
		config.Providers["groq"] = ProviderConfig{APIKey: "gsk_file"}
		if got := config.ResolveAPIKey("groq"); got != "gsk_file" {
			t.Errorf("ResolveAPIKey() = %q, want gsk_file", got)
		}
	})

	t.Run("environment before keyring", func(t *testing.T) {
		t.Setenv("GROQ_API_KEY", "gsk_env")
		if err := SetAPIKey("groq", "gsk_keyring"); err != nil {
			t.Fatalf("SetAPIKey() error = %v", err)
		}
		defer DeleteAPIKey("groq")

		if got := DefaultConfig().ResolveAPIKey("groq"); got != "gsk_env" {
			t.Errorf("ResolveAPIKey() = %q, want gsk_env", got)
		}
	})

	t.Run("keyring fallback", func(t *testing.T) {
		t.Setenv("GROQ_API_KEY", "")
		if err := SetAPIKey("groq", "gsk_keyring"); err != nil {
			t.Fatalf("SetAPIKey() error = %v", err)
		}

		if got := DefaultConfig().ResolveAPIKey("groq"); got != "gsk_keyring" {
			t.Errorf("ResolveAPIKey() = %q, want gsk_keyring", got)
		}

		if err := DeleteAPIKey("groq"); err != nil {
			t.Fatalf("DeleteAPIKey() error = %v", err)
		}
		if got := DefaultConfig().ResolveAPIKey("groq"); got != "" {
			t.Errorf("ResolveAPIKey() after delete = %q, want empty", got)
		}
	})

	t.Run("deleting a missing key is fine", func(t *testing.T) {
		if err := DeleteAPIKey("never-stored"); err != nil {
			t.Errorf("DeleteAPIKey() error = %v", err)
		}
	})
}

func TestConfig_Load(t *testing.T) {
	t.Run("creates default config when none exists", func(t *testing.T) {
		tempDir := setConfigHome(t)
		t.Setenv("OPENAI_API_KEY", "sk-test-api-key")

		config, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}

		if err := config.Validate(); err != nil {
			t.Errorf("Loaded config is invalid: %v", err)
		}

		configPath := filepath.Join(tempDir, "hueprompt", "config.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			t.Errorf("Load() did not create config file")
		}
		if config.Generation.Timeout != DefaultTimeout {
			t.Errorf("timeout = %v, want %v", config.Generation.Timeout, DefaultTimeout)
		}
	})

	t.Run("loads existing config and keeps defaults for missing keys", func(t *testing.T) {
		tempDir := setConfigHome(t)
		configPath := filepath.Join(tempDir, "hueprompt", "config.toml")
		if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
			t.Fatalf("Failed to create config directory: %v", err)
		}

		content := `[generation]
provider = "groq"
model = "llama-3.1-8b-instant"
num_colors = 3
discussion = "jerry"
timeout = "10s"

[providers.groq]
api_key = "gsk_from_file"

[storage]
backend = "sqlite"
`
		if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write config: %v", err)
		}

		config, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if err := config.Validate(); err != nil {
			t.Errorf("Validate() error = %v", err)
		}

		if config.Generation.Provider != "groq" || config.Generation.NumColors != 3 {
			t.Errorf("unexpected generation section: %+v", config.Generation)
		}
		if config.Generation.Timeout != 10*time.Second {
			t.Errorf("timeout = %v, want 10s", config.Generation.Timeout)
		}
		if config.Generation.MaxTokens != llm.DefaultMaxTokens {
			t.Errorf("max_tokens default not kept: %d", config.Generation.MaxTokens)
		}
		if config.Storage.Backend != "sqlite" {
			t.Errorf("storage backend = %q, want sqlite", config.Storage.Backend)
		}
		if config.ToLLMConfig().APIKey != "gsk_from_file" {
			t.Errorf("api key not read from providers table")
		}
	})

	t.Run("invalid TOML", func(t *testing.T) {
		tempDir := setConfigHome(t)
		configPath := filepath.Join(tempDir, "hueprompt", "config.toml")
		if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
			t.Fatalf("Failed to create config directory: %v", err)
		}
		if err := os.WriteFile(configPath, []byte("[generation\nprovider ="), 0644); err != nil {
			t.Fatalf("Failed to write config: %v", err)
		}

		if _, err := Load(); err == nil {
			t.Error("Load() should fail for invalid TOML")
		}
	})
}

func TestConfig_SaveRoundTrip(t *testing.T) {
	setConfigHome(t)

	config := createTestConfig()
	config.Generation.Discussion = "critique"
	config.Theme.Mode = "dark"
	config.Notifications.Messages.PaletteSaved = MessageConfig{Body: "Stored!"}

	if err := config.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	path, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("config file missing: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("config permissions = %v, want 0600", info.Mode().Perm())
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Generation.Discussion != "critique" || loaded.Theme.Mode != "dark" {
		t.Errorf("round trip lost values: %+v", loaded)
	}
	if loaded.Providers["openai"].APIKey != "sk-test-api-key" {
		t.Errorf("round trip lost provider key")
	}
	if loaded.Notifications.Messages.PaletteSaved.Body != "Stored!" {
		t.Errorf("round trip lost message override")
	}
}

func TestGetConfigPath(t *testing.T) {
	tempDir := setConfigHome(t)

	path, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}

	expectedPath := filepath.Join(tempDir, "hueprompt", "config.toml")
	if path != expectedPath {
		t.Errorf("GetConfigPath() = %s, want %s", path, expectedPath)
	}

	if _, err := os.Stat(filepath.Dir(path)); os.IsNotExist(err) {
		t.Errorf("GetConfigPath() did not create config directory")
	}
}

func TestConfig_ConversionMethods(t *testing.T) {
	config := createTestConfig()
	config.Generation.Sentences = 3
	config.Generation.Discussion = "humorous"
	config.Generation.Composition = "none"

	llmCfg := config.ToLLMConfig()
	if llmCfg.Provider != "openai" || llmCfg.Model != "gpt-4o-mini" {
		t.Errorf("unexpected llm config: %+v", llmCfg)
	}
	if llmCfg.Temperature != float32(llm.DefaultTemperature) || llmCfg.MaxTokens != llm.DefaultMaxTokens {
		t.Errorf("completion settings not converted: %+v", llmCfg)
	}
	if llmCfg.APIKey != "sk-test-api-key" {
		t.Errorf("APIKey = %q", llmCfg.APIKey)
	}

	genCfg := config.ToGenerationConfig()
	want := llm.GenerationConfig{NumColors: 5, Discussion: llm.DiscussionHumorous, Composition: llm.CompositionNone, Sentences: 3}
	if genCfg != want {
		t.Errorf("ToGenerationConfig() = %+v, want %+v", genCfg, want)
	}

	config.Generation.Discussion = "unknown"
	if got := config.ToGenerationConfig().Discussion; got != llm.DiscussionPlain {
		t.Errorf("unknown discussion should fall back to plain, got %q", got)
	}
}

func TestConfig_ThemeMode(t *testing.T) {
	tests := []struct {
		mode     string
		want     theme.Mode
		isForced bool
	}{
		{"auto", "", false},
		{"", "", false},
		{"dark", theme.Dark, true},
		{"Styled", theme.Styled, true},
		{"neon", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.mode, func(t *testing.T) {
			config := createTestConfig()
			config.Theme.Mode = tc.mode
			got, forced := config.ThemeMode()
			if got != tc.want || forced != tc.isForced {
				t.Errorf("ThemeMode() = %q, %v; want %q, %v", got, forced, tc.want, tc.isForced)
			}
		})
	}
}

func TestConfig_DataDir(t *testing.T) {
	tempDir := setConfigHome(t)

	config := createTestConfig()
	dir, err := config.DataDir()
	if err != nil {
		t.Fatalf("DataDir() error = %v", err)
	}
	if dir != filepath.Join(tempDir, "hueprompt") {
		t.Errorf("DataDir() = %s", dir)
	}

	config.Storage.Path = "/srv/palettes"
	if dir, _ := config.DataDir(); dir != "/srv/palettes" {
		t.Errorf("DataDir() should honour storage.path, got %s", dir)
	}
}

func TestMessagesConfig_Resolve_Defaults(t *testing.T) {
	cfg := createTestConfig()
	msgs := cfg.Notifications.Messages.Resolve()

	if msgs[notify.MsgPaletteSaved].Title != "Hueprompt" {
		t.Errorf("MsgPaletteSaved title = %q, want %q", msgs[notify.MsgPaletteSaved].Title, "Hueprompt")
	}
	if msgs[notify.MsgPaletteDuplicate].Body != "Palette already saved" {
		t.Errorf("MsgPaletteDuplicate body = %q", msgs[notify.MsgPaletteDuplicate].Body)
	}
	if !msgs[notify.MsgGenerationFailed].IsError {
		t.Errorf("MsgGenerationFailed should be an error")
	}
	if len(msgs) != len(notify.MessageDefs) {
		t.Errorf("Resolve() returned %d messages, want %d", len(msgs), len(notify.MessageDefs))
	}
}

func TestMessagesConfig_Resolve_CustomOverrides(t *testing.T) {
	cfg := createTestConfig()
	cfg.Notifications.Messages = MessagesConfig{
		PaletteSaved: MessageConfig{
			Title: "Custom Title",
			Body:  "Custom Body",
		},
		Copied: MessageConfig{
			Body: "Custom Copy",
		},
	}

	msgs := cfg.Notifications.Messages.Resolve()

	if msgs[notify.MsgPaletteSaved].Title != "Custom Title" || msgs[notify.MsgPaletteSaved].Body != "Custom Body" {
		t.Errorf("MsgPaletteSaved = %+v", msgs[notify.MsgPaletteSaved])
	}
	if msgs[notify.MsgCopied].Body != "Custom Copy" || msgs[notify.MsgCopied].Title != "Hueprompt" {
		t.Errorf("MsgCopied = %+v", msgs[notify.MsgCopied])
	}
	if msgs[notify.MsgConfigReloaded].Body != "Config Reloaded" {
		t.Errorf("non-customized message should keep default, got %+v", msgs[notify.MsgConfigReloaded])
	}
}

func TestManager_SnapshotIsCopy(t *testing.T) {
	setConfigHome(t)
	t.Setenv("OPENAI_API_KEY", "sk-test-api-key")

	m, err := NewManager()
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}

	cfg := m.Snapshot()
	cfg.Generation.NumColors = 2
	cfg.Providers["groq"] = ProviderConfig{APIKey: "gsk_x"}

	again := m.Snapshot()
	if again.Generation.NumColors != 5 {
		t.Errorf("Snapshot() copy was not isolated")
	}
	if _, ok := again.Providers["groq"]; ok {
		t.Errorf("providers map was shared")
	}
}

func TestManager_ReloadCallsOnReload(t *testing.T) {
	setConfigHome(t)
	t.Setenv("OPENAI_API_KEY", "sk-test-api-key")

	m, err := NewManager()
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}

	var got *Config
	m.OnReload(func(c *Config) { got = c })

	updated := DefaultConfig()
	updated.Generation.NumColors = 4
	if err := updated.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if err := m.reload(); err != nil {
		t.Fatalf("reload() error = %v", err)
	}
	if got == nil || got.Generation.NumColors != 4 {
		t.Fatalf("OnReload not called with new config: %+v", got)
	}
	if m.Snapshot().Generation.NumColors != 4 {
		t.Errorf("manager did not keep the reloaded config")
	}
}

func TestManager_InvalidReloadKeepsConfig(t *testing.T) {
	setConfigHome(t)
	t.Setenv("OPENAI_API_KEY", "sk-test-api-key")

	m, err := NewManager()
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}

	called := false
	m.OnReload(func(*Config) { called = true })

	bad := DefaultConfig()
	bad.Generation.NumColors = 42
	if err := bad.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if err := m.reload(); err == nil {
		t.Fatal("expected reload to reject invalid config")
	}
	if called {
		t.Error("OnReload should not run for a rejected config")
	}
	if m.Snapshot().Generation.NumColors != 5 {
		t.Errorf("previous config was not kept, got num_colors=%d", m.Snapshot().Generation.NumColors)
	}
}

func TestManager_WatchReloadsOnSave(t *testing.T) {
	setConfigHome(t)
	t.Setenv("OPENAI_API_KEY", "sk-test-api-key")

	m, err := NewManager()
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}

	reloaded := make(chan *Config, 4)
	m.OnReload(func(c *Config) { reloaded <- c })

	if err := m.Watch(t.Context()); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	defer m.Close()

	updated := DefaultConfig()
	updated.Generation.NumColors = 3
	if err := updated.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	select {
	case c := <-reloaded:
		if c.Generation.NumColors != 3 {
			t.Errorf("reloaded num_colors = %d, want 3", c.Generation.NumColors)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("config was not reloaded after save")
	}
}

func TestTouchesConfig(t *testing.T) {
	tests := []struct {
		name string
		ev   fsnotify.Event
		want bool
	}{
		{"write", fsnotify.Event{Name: "/x/config.toml", Op: fsnotify.Write}, true},
		{"rename into place", fsnotify.Event{Name: "/x/config.toml", Op: fsnotify.Create}, true},
		{"chmod", fsnotify.Event{Name: "/x/config.toml", Op: fsnotify.Chmod}, false},
		{"temp file", fsnotify.Event{Name: "/x/.config-123.toml", Op: fsnotify.Write}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := touchesConfig(tc.ev, "config.toml"); got != tc.want {
				t.Errorf("touchesConfig() = %v, want %v", got, tc.want)
			}
		})
	}
}
