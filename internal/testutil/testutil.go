package testutil

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/leonardotrapani/hueprompt/internal/config"
)

// TestConfig returns a valid configuration for testing
func TestConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Providers = map[string]config.ProviderConfig{
		"openai": {APIKey: "sk-test-api-key"},
	}
	cfg.Notifications = config.NotificationsConfig{
		Enabled: true,
		Type:    "log",
	}
	return cfg
}

// TestConfigWithInvalidValues returns a config with invalid values for testing validation
func TestConfigWithInvalidValues() *config.Config {
	return &config.Config{
		Generation: config.GenerationConfig{
			Provider:    "", // Invalid
			NumColors:   0,  // Invalid
			Temperature: 5,  // Invalid
			MaxTokens:   0,  // Invalid
			Timeout:     0,  // Invalid
		},
		Storage: config.StorageConfig{
			Backend: "redis", // Invalid
		},
		Notifications: config.NotificationsConfig{
			Type: "invalid", // Invalid
		},
	}
}

// CreateTempConfigFile creates a temporary config file for testing
func CreateTempConfigFile(t *testing.T, configContent string) string {
	t.Helper()

	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.toml")

	err := os.WriteFile(configPath, []byte(configContent), 0644)
	if err != nil {
		t.Fatalf("Failed to create temp config file: %v", err)
	}

	return configPath
}

// MockAdapter implements llm.Adapter for testing
type MockAdapter struct {
	GenerateFunc func(ctx context.Context, prompt string) (string, error)

	mu      sync.Mutex
	prompts []string
}

func (m *MockAdapter) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()

	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, prompt)
	}
	return "#FF5E5B,#D8D8D8,#FFFFEA;mock palette", nil
}

// Prompts returns every prompt received so far
func (m *MockAdapter) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}

// NewMockAdapter creates a mock adapter that always answers text
func NewMockAdapter(text string) *MockAdapter {
	return &MockAdapter{
		GenerateFunc: func(ctx context.Context, prompt string) (string, error) {
			return text, nil
		},
	}
}

// MockNotifier implements notify.Notifier and records what was sent
type MockNotifier struct {
	mu       sync.Mutex
	Messages []string
	Errors   []string
}

func (m *MockNotifier) Notify(title, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Messages = append(m.Messages, message)
}

func (m *MockNotifier) Error(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors = append(m.Errors, msg)
}

// Sent returns copies of the recorded notifications and errors
func (m *MockNotifier) Sent() (messages, errors []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.Messages...), append([]string(nil), m.Errors...)
}

// TestContext returns a context with timeout for testing
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}

// WaitForCondition waits for a condition to be true or times out
func WaitForCondition(t *testing.T, condition func() bool, timeout time.Duration) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			t.Fatalf("Condition not met within %v", timeout)
		default:
			if condition() {
				return
			}
			time.Sleep(10 * time.Millisecond)
		}
	}
}

// CaptureOutput captures stdout for testing
func CaptureOutput(t *testing.T, fn func()) string {
	t.Helper()

	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}
	os.Stdout = w

	done := make(chan string)
	go func() {
		out, _ := io.ReadAll(r)
		done <- string(out)
	}()

	fn()

	w.Close()
	os.Stdout = old
	return <-done
}
