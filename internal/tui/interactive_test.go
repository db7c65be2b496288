package tui

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/leonardotrapani/hueprompt/internal/clipboard"
	"github.com/leonardotrapani/hueprompt/internal/llm"
	"github.com/leonardotrapani/hueprompt/internal/notify"
	"github.com/leonardotrapani/hueprompt/internal/palette"
	"github.com/leonardotrapani/hueprompt/internal/session"
	"github.com/leonardotrapani/hueprompt/internal/store"
	"github.com/leonardotrapani/hueprompt/internal/testutil"
	"github.com/leonardotrapani/hueprompt/internal/theme"
	"github.com/muesli/termenv"
	"github.com/spf13/afero"
)

func newTestApp(t *testing.T, adapter llm.Adapter) (*App, *testutil.MockNotifier, *bytes.Buffer) {
	t.Helper()
	t.Setenv("WAYLAND_DISPLAY", "")
	t.Setenv("TERM", "xterm-256color")

	st := store.New(store.NewFileSlot(afero.NewMemMapFs(), "/data"))
	st.Load(context.Background())

	var out bytes.Buffer
	rec := &testutil.MockNotifier{}
	app := NewApp(
		session.New(adapter, llm.DefaultGenerationConfig(), time.Second),
		st,
		theme.NewTracker(theme.NewEngine(theme.NewSeeded(7))),
		clipboard.New(time.Second, termenv.NewOutput(&out)),
		notify.NewMessenger(rec, nil),
	)
	return app, rec, &out
}

func TestApp_Generate(t *testing.T) {
	app, rec, _ := newTestApp(t, testutil.NewMockAdapter("#FF5E5B,#D8D8D8,#FFFFEA;warm and soft"))

	msg, err := app.Generate(context.Background(), "sunset")
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if !strings.Contains(msg, "3 colors") {
		t.Errorf("unexpected status %q", msg)
	}

	p := app.Session.State().Palette
	if p.Name != "sunset" || len(p.Colors) != 3 {
		t.Errorf("unexpected active palette %+v", p)
	}
	if got := len(app.Tracker.State().Labels); got != 3 {
		t.Errorf("theme labels = %d, want 3", got)
	}
	if msgs, _ := rec.Sent(); len(msgs) != 1 || msgs[0] != "Palette ready: sunset" {
		t.Errorf("unexpected notifications %v", msgs)
	}
	if !strings.Contains(app.Render(), "warm and soft") {
		t.Error("render should include the commentary")
	}
}

func TestApp_GenerateFailureKeepsPalette(t *testing.T) {
	var failing bool
	adapter := &testutil.MockAdapter{GenerateFunc: func(ctx context.Context, prompt string) (string, error) {
		if failing {
			return "", errors.New("connection refused")
		}
		return "#111111,#EEEEEE", nil
	}}
	app, rec, _ := newTestApp(t, adapter)

	if _, err := app.Generate(context.Background(), "night"); err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	failing = true
	_, err := app.Generate(context.Background(), "day")
	if !errors.Is(err, llm.ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
	if got := app.Session.State().Palette.Name; got != "night" {
		t.Errorf("active palette = %q, want night", got)
	}
	if _, errs := rec.Sent(); len(errs) != 1 || !strings.HasPrefix(errs[0], "Could not generate a palette") {
		t.Errorf("unexpected error notifications %v", errs)
	}
}

func TestApp_SaveAndDuplicate(t *testing.T) {
	app, rec, _ := newTestApp(t, testutil.NewMockAdapter("#FF5E5B,#D8D8D8"))
	ctx := context.Background()

	if _, err := app.Save(ctx); !errors.Is(err, ErrEmptyPalette) {
		t.Fatalf("expected ErrEmptyPalette, got %v", err)
	}

	if _, err := app.Generate(ctx, "sunset"); err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if _, err := app.Save(ctx); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	msg, err := app.Save(ctx)
	if err != nil {
		t.Fatalf("second Save() error: %v", err)
	}
	if msg != "Palette already saved" {
		t.Errorf("unexpected status %q", msg)
	}
	if app.Store.Len() != 1 {
		t.Errorf("store length = %d, want 1", app.Store.Len())
	}
	if !strings.Contains(app.Render(), "★") {
		t.Error("saved palette should be marked in the preview")
	}

	want := []string{"Palette ready: sunset", "Palette saved: sunset", "Palette already saved: sunset"}
	if msgs, _ := rec.Sent(); strings.Join(msgs, "|") != strings.Join(want, "|") {
		t.Errorf("notifications = %v, want %v", msgs, want)
	}
}

func TestApp_CopyHex(t *testing.T) {
	app, _, out := newTestApp(t, testutil.NewMockAdapter("#FF5E5B,#D8D8D8"))
	ctx := context.Background()

	if _, err := app.Copy(ctx, palette.FormatHex); !errors.Is(err, ErrEmptyPalette) {
		t.Fatalf("expected ErrEmptyPalette, got %v", err)
	}

	if _, err := app.Generate(ctx, "sunset"); err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	msg, err := app.Copy(ctx, palette.FormatHex)
	if err != nil {
		t.Fatalf("Copy() error: %v", err)
	}
	if !strings.Contains(msg, string(clipboard.OSC52)) {
		t.Errorf("unexpected status %q", msg)
	}

	encoded := base64.StdEncoding.EncodeToString([]byte("#FF5E5B,#D8D8D8"))
	if !strings.Contains(out.String(), encoded) {
		t.Errorf("expected clipboard payload %q in %q", encoded, out.String())
	}
}

func TestApp_Load(t *testing.T) {
	app, _, _ := newTestApp(t, &testutil.MockAdapter{})
	ctx := context.Background()

	forest := palette.Palette{Name: "forest", Colors: []palette.Color{"#2D6A4F", "#95D5B2"}}
	if _, err := app.Store.Add(ctx, forest); err != nil {
		t.Fatalf("Add() error: %v", err)
	}

	app.Tracker.Override(theme.Dark)
	if _, err := app.Load(ctx, 0); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got := app.Session.State().Palette.Name; got != "forest" {
		t.Errorf("active palette = %q, want forest", got)
	}
	if st := app.Tracker.State(); st.Mode != st.Auto {
		t.Errorf("loading a palette should drop the override, mode=%s auto=%s", st.Mode, st.Auto)
	}

	if _, err := app.Load(ctx, 3); !errors.Is(err, store.ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
}
