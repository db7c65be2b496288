package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// HTTPAdapter implements Adapter against a plain JSON endpoint that accepts
// {"prompt": "..."} and answers with {"text": "..."} or raw text
type HTTPAdapter struct {
	client *http.Client
	config Config
}

type httpRequest struct {
	Prompt      string  `json:"prompt"`
	Model       string  `json:"model,omitempty"`
	MaxTokens   int     `json:"max_tokens,omitempty"`
	Temperature float32 `json:"temperature,omitempty"`
}

type httpResponse struct {
	Text string `json:"text"`
}

// NewHTTPAdapter creates an adapter for a generic prompt endpoint
func NewHTTPAdapter(cfg Config) *HTTPAdapter {
	return &HTTPAdapter{
		client: &http.Client{},
		config: cfg,
	}
}

func (a *HTTPAdapter) Generate(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(httpRequest{
		Prompt:      prompt,
		Model:       a.config.Model,
		MaxTokens:   a.config.MaxTokens,
		Temperature: a.config.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.config.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if a.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+a.config.APIKey)
	}

	start := time.Now()
	resp, err := a.client.Do(req)
	duration := time.Since(start)

	if err != nil {
		log.Printf("http-llm-adapter: request failed after %v: %v", duration, err)
		return "", Classify(ctx, fmt.Errorf("http generation request: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", Classify(ctx, fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("http-llm-adapter: endpoint returned status %d: %s", resp.StatusCode, string(body))
		return "", fmt.Errorf("%w: endpoint status %d: %s", ErrTransport, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var decoded httpResponse
	if err := json.Unmarshal(body, &decoded); err == nil && decoded.Text != "" {
		log.Printf("http-llm-adapter: generated in %v: %q", duration, decoded.Text)
		return decoded.Text, nil
	}

	result := string(body)
	log.Printf("http-llm-adapter: generated (raw) in %v: %q", duration, result)
	return result, nil
}
