package llm

import (
	"context"
	"errors"
	"fmt"
)

// Adapter sends a single prompt to a text-generation service and returns the raw text
type Adapter interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Config holds LLM adapter configuration
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	Endpoint    string
	Temperature float32
	MaxTokens   int
}

// Defaults matching the completion settings the palette prompt was tuned with
const (
	DefaultTemperature = 0.8
	DefaultMaxTokens   = 120
)

var (
	// ErrTimeout reports that the generation call hit its deadline
	ErrTimeout = errors.New("generation timed out")
	// ErrTransport reports any other failure talking to the generation service
	ErrTransport = errors.New("generation request failed")
)

// Classify wraps err with ErrTimeout or ErrTransport. Errors that already
// carry one of them are returned unchanged.
func Classify(ctx context.Context, err error) error {
	if err == nil || errors.Is(err, ErrTimeout) || errors.Is(err, ErrTransport) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %w", ErrTransport, err)
}

// NewAdapter creates an LLM adapter based on the provider
func NewAdapter(cfg Config) (Adapter, error) {
	if cfg.Temperature == 0 {
		cfg.Temperature = DefaultTemperature
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}

	switch cfg.Provider {
	case "openai":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("OpenAI API key required")
		}
		return NewOpenAIAdapter(cfg), nil
	case "groq":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("Groq API key required")
		}
		return NewGroqAdapter(cfg), nil
	case "http":
		if cfg.Endpoint == "" {
			return nil, fmt.Errorf("endpoint required for http provider")
		}
		return NewHTTPAdapter(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
