// Package session runs palette generation requests and holds the active palette.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/leonardotrapani/hueprompt/internal/llm"
	"github.com/leonardotrapani/hueprompt/internal/palette"
)

var (
	// ErrNoPalette means the service answered but no colors could be parsed
	ErrNoPalette = errors.New("response contained no usable palette")
	// ErrStale means a newer request started before this one finished
	ErrStale = errors.New("superseded by a newer request")
)

// Status tells whether a generation is in flight
type Status string

const (
	Idle       Status = "idle"
	Generating Status = "generating"
)

// State is an immutable snapshot of the session
type State struct {
	Palette      palette.Palette
	PendingQuery string
	Loading      bool
	RequestID    string // token of the latest request issued
	Err          error  // outcome of the latest finished request
}

// Status derives the session status from the snapshot
func (s State) Status() Status {
	if s.Loading {
		return Generating
	}
	return Idle
}

// Result describes one finished Generate call
type Result struct {
	RequestID string
	Query     string
	Raw       string
	Palette   palette.Palette
	Stale     bool
}

// Session runs palette generations and holds the active palette.
// It is safe for concurrent use.
type Session struct {
	mu      sync.Mutex
	adapter llm.Adapter
	config  llm.GenerationConfig
	timeout time.Duration
	state   State
}

// New creates a session. A zero timeout leaves the deadline to the caller's context.
func New(adapter llm.Adapter, config llm.GenerationConfig, timeout time.Duration) *Session {
	return &Session{
		adapter: adapter,
		config:  config,
		timeout: timeout,
	}
}

// State returns a snapshot of the session
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	st.Palette = st.Palette.Clone()
	return st
}

func (s *Session) Config() llm.GenerationConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config
}

// SetConfig changes the settings used by the next Generate call
func (s *Session) SetConfig(config llm.GenerationConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = config
}

// SetAdapter swaps the generation service, e.g. after a config reload
func (s *Session) SetAdapter(adapter llm.Adapter, timeout time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.adapter = adapter
	s.timeout = timeout
}

// Load makes a saved palette the active one
func (s *Session) Load(p palette.Palette) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Palette = p.Clone()
	s.state.Err = nil
}

// Generate asks the service for a palette matching query. On success the
// active palette is replaced; on failure it is left unchanged. Either way the
// loading state is cleared, unless a newer request has been issued meanwhile,
// in which case the result is discarded and ErrStale returned.
func (s *Session) Generate(ctx context.Context, query string) (Result, error) {
	s.mu.Lock()
	config := s.config
	adapter := s.adapter
	timeout := s.timeout
	id := uuid.NewString()
	s.state.Loading = true
	s.state.PendingQuery = query
	s.state.RequestID = id
	s.mu.Unlock()

	result := Result{RequestID: id, Query: query}
	prompt := llm.BuildPalettePrompt(query, config)

	callCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	log.Printf("Session: request %s for %q", id, query)
	start := time.Now()

	var err error
	if adapter == nil {
		err = fmt.Errorf("%w: no generation service configured", llm.ErrTransport)
	} else {
		result.Raw, err = adapter.Generate(callCtx, prompt)
		err = llm.Classify(callCtx, err)
	}

	var parsed palette.Parsed
	if err == nil {
		parsed = palette.ParseResponse(result.Raw, llm.Winsorize(config.NumColors, llm.MinColors, llm.MaxColors))
		if parsed.Empty() {
			err = ErrNoPalette
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.RequestID != id {
		log.Printf("Session: request %s finished after a newer one, discarding", id)
		result.Stale = true
		return result, fmt.Errorf("%w: %q", ErrStale, query)
	}

	s.state.Loading = false
	s.state.PendingQuery = ""
	s.state.Err = err

	if err != nil {
		log.Printf("Session: request %s failed after %v: %v", id, time.Since(start), err)
		return result, err
	}

	result.Palette = palette.Palette{
		Name:    query,
		Colors:  parsed.Colors,
		Comment: parsed.Comment,
	}
	s.state.Palette = result.Palette.Clone()

	log.Printf("Session: request %s produced %d colors in %v", id, len(parsed.Colors), time.Since(start))
	return result, nil
}
