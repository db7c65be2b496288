package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/leonardotrapani/hueprompt/internal/llm"
	"github.com/leonardotrapani/hueprompt/internal/palette"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAdapter struct {
	mu      sync.Mutex
	prompts []string
	respond func(ctx context.Context, prompt string) (string, error)
}

func (f *fakeAdapter) Generate(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()
	return f.respond(ctx, prompt)
}

func reply(text string) *fakeAdapter {
	return &fakeAdapter{respond: func(ctx context.Context, prompt string) (string, error) {
		return text, nil
	}}
}

func TestGenerate_Success(t *testing.T) {
	adapter := reply("#FF0000,#00FF00,#0000FF;Vibrant and bold")
	s := New(adapter, llm.GenerationConfig{NumColors: 3, Composition: llm.CompositionNone}, time.Second)

	result, err := s.Generate(context.Background(), "traffic light")
	require.NoError(t, err)
	assert.False(t, result.Stale)
	assert.Equal(t, palette.Palette{
		Name:    "traffic light",
		Colors:  []palette.Color{"#FF0000", "#00FF00", "#0000FF"},
		Comment: "Vibrant and bold",
	}, result.Palette)

	st := s.State()
	assert.Equal(t, result.Palette, st.Palette)
	assert.False(t, st.Loading)
	assert.Empty(t, st.PendingQuery)
	assert.NoError(t, st.Err)
	assert.Equal(t, Idle, st.Status())
	assert.Equal(t, result.RequestID, st.RequestID)

	require.Len(t, adapter.prompts, 1)
	assert.Contains(t, adapter.prompts[0], "a 3-color color palette for traffic light")
}

func TestGenerate_TruncatesToConfiguredColors(t *testing.T) {
	s := New(reply("#111111,#222222,#333333,#444444;dark"), llm.GenerationConfig{NumColors: 2}, 0)

	result, err := s.Generate(context.Background(), "night")
	require.NoError(t, err)
	assert.Equal(t, []palette.Color{"#111111", "#222222"}, result.Palette.Colors)
}

func TestGenerate_LoadingWhileInFlight(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	adapter := &fakeAdapter{respond: func(ctx context.Context, prompt string) (string, error) {
		close(started)
		<-release
		return "#ABCDEF;calm", nil
	}}
	s := New(adapter, llm.DefaultGenerationConfig(), time.Second)

	done := make(chan error, 1)
	go func() {
		_, err := s.Generate(context.Background(), "lake")
		done <- err
	}()

	<-started
	st := s.State()
	assert.True(t, st.Loading)
	assert.Equal(t, "lake", st.PendingQuery)
	assert.Equal(t, Generating, st.Status())

	close(release)
	require.NoError(t, <-done)
	assert.False(t, s.State().Loading)
}

func TestGenerate_FailuresLeavePaletteUnchanged(t *testing.T) {
	previous := palette.Palette{Name: "saved", Colors: []palette.Color{"#123456"}}

	tests := []struct {
		name    string
		adapter *fakeAdapter
		wantErr error
	}{
		{
			name: "transport failure",
			adapter: &fakeAdapter{respond: func(ctx context.Context, prompt string) (string, error) {
				return "", errors.New("connection refused")
			}},
			wantErr: llm.ErrTransport,
		},
		{
			name: "timeout",
			adapter: &fakeAdapter{respond: func(ctx context.Context, prompt string) (string, error) {
				<-ctx.Done()
				return "", ctx.Err()
			}},
			wantErr: llm.ErrTimeout,
		},
		{
			name:    "nothing parseable",
			adapter: reply(""),
			wantErr: ErrNoPalette,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := New(tc.adapter, llm.DefaultGenerationConfig(), 20*time.Millisecond)
			s.Load(previous)

			_, err := s.Generate(context.Background(), "anything")
			assert.ErrorIs(t, err, tc.wantErr)

			st := s.State()
			assert.Equal(t, previous, st.Palette)
			assert.False(t, st.Loading)
			assert.Empty(t, st.PendingQuery)
			assert.ErrorIs(t, st.Err, tc.wantErr)
		})
	}
}

func TestGenerate_NilAdapter(t *testing.T) {
	s := New(nil, llm.DefaultGenerationConfig(), 0)
	_, err := s.Generate(context.Background(), "x")
	assert.ErrorIs(t, err, llm.ErrTransport)
	assert.False(t, s.State().Loading)
}

func TestGenerate_LastQueryWins(t *testing.T) {
	firstStarted := make(chan struct{})
	releaseFirst := make(chan struct{})

	adapter := &fakeAdapter{respond: func(ctx context.Context, prompt string) (string, error) {
		if strings.Contains(prompt, "for first") {
			close(firstStarted)
			<-releaseFirst
			return "#111111;first", nil
		}
		return "#222222;second", nil
	}}
	s := New(adapter, llm.DefaultGenerationConfig(), time.Second)

	firstDone := make(chan struct{})
	var firstResult Result
	var firstErr error
	go func() {
		firstResult, firstErr = s.Generate(context.Background(), "first")
		close(firstDone)
	}()

	<-firstStarted
	second, err := s.Generate(context.Background(), "second")
	require.NoError(t, err)
	assert.Equal(t, "second", second.Palette.Name)

	close(releaseFirst)
	<-firstDone

	assert.ErrorIs(t, firstErr, ErrStale)
	assert.True(t, firstResult.Stale)

	st := s.State()
	assert.Equal(t, "second", st.Palette.Name)
	assert.Equal(t, []palette.Color{"#222222"}, st.Palette.Colors)
	assert.False(t, st.Loading)
	assert.Equal(t, second.RequestID, st.RequestID)
}

func TestGenerate_StaleDoesNotClearNewerLoading(t *testing.T) {
	secondStarted := make(chan struct{})
	releaseSecond := make(chan struct{})
	firstStarted := make(chan struct{})
	releaseFirst := make(chan struct{})

	adapter := &fakeAdapter{respond: func(ctx context.Context, prompt string) (string, error) {
		if strings.Contains(prompt, "for first") {
			close(firstStarted)
			<-releaseFirst
			return "#111111", nil
		}
		close(secondStarted)
		<-releaseSecond
		return "#222222", nil
	}}
	s := New(adapter, llm.DefaultGenerationConfig(), time.Second)

	firstDone := make(chan error, 1)
	go func() {
		_, err := s.Generate(context.Background(), "first")
		firstDone <- err
	}()
	<-firstStarted

	secondDone := make(chan error, 1)
	go func() {
		_, err := s.Generate(context.Background(), "second")
		secondDone <- err
	}()
	<-secondStarted

	close(releaseFirst)
	assert.ErrorIs(t, <-firstDone, ErrStale)

	st := s.State()
	assert.True(t, st.Loading, "stale completion must not clear the newer request's loading state")
	assert.Equal(t, "second", st.PendingQuery)

	close(releaseSecond)
	require.NoError(t, <-secondDone)
	assert.False(t, s.State().Loading)
}

func TestSession_ConfigAndLoad(t *testing.T) {
	s := New(reply("#000000"), llm.DefaultGenerationConfig(), 0)
	assert.Equal(t, llm.DefaultGenerationConfig(), s.Config())

	cfg := llm.GenerationConfig{NumColors: 4, Discussion: llm.DiscussionCritique, Composition: llm.CompositionProfessional}
	s.SetConfig(cfg)
	assert.Equal(t, cfg, s.Config())

	p := palette.Palette{Name: "saved", Colors: []palette.Color{"#ABCDEF"}}
	s.Load(p)

	st := s.State()
	assert.Equal(t, p, st.Palette)
	st.Palette.Colors[0] = "#000000"
	assert.Equal(t, palette.Color("#ABCDEF"), s.State().Palette.Colors[0], "State must return a copy")
}

func TestSession_SetAdapter(t *testing.T) {
	s := New(reply("#111111"), llm.DefaultGenerationConfig(), 0)
	s.SetAdapter(reply("#222222"), time.Second)

	result, err := s.Generate(context.Background(), "swap")
	require.NoError(t, err)
	assert.Equal(t, []palette.Color{"#222222"}, result.Palette.Colors)
}
