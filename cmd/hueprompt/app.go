package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/leonardotrapani/hueprompt/internal/colorname"
	"github.com/leonardotrapani/hueprompt/internal/config"
	"github.com/leonardotrapani/hueprompt/internal/llm"
	"github.com/leonardotrapani/hueprompt/internal/notify"
	"github.com/leonardotrapani/hueprompt/internal/session"
	"github.com/leonardotrapani/hueprompt/internal/store"
	"github.com/leonardotrapani/hueprompt/internal/theme"
	"github.com/spf13/afero"
)

const sqliteFile = "palettes.db"

// openStore opens the palette store on the configured backend and loads it.
// The returned close func releases the backend.
func openStore(ctx context.Context, cfg *config.Config) (*store.Store, func() error, error) {
	dir, err := cfg.DataDir()
	if err != nil {
		return nil, nil, err
	}

	var (
		slot    store.Slot
		closeFn = func() error { return nil }
	)
	switch cfg.Storage.Backend {
	case "sqlite":
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		sqlSlot, err := store.OpenSQLiteSlot(ctx, filepath.Join(dir, sqliteFile))
		if err != nil {
			return nil, nil, err
		}
		slot = sqlSlot
		closeFn = sqlSlot.Close
	default:
		slot = store.NewFileSlot(afero.NewOsFs(), dir)
	}

	s := store.New(slot)
	s.Load(ctx)
	return s, closeFn, nil
}

// newSession builds a session for cfg. A misconfigured provider still yields
// a session; its Generate calls report the problem.
func newSession(cfg *config.Config) *session.Session {
	adapter, err := llm.NewAdapter(cfg.ToLLMConfig())
	if err != nil {
		log.Printf("Generation: %v", err)
	}
	return session.New(adapter, cfg.ToGenerationConfig(), cfg.Generation.Timeout)
}

func newMessenger(cfg *config.Config) *notify.Messenger {
	if !cfg.Notifications.Enabled {
		return notify.NewMessenger(notify.Nop{}, nil)
	}
	return notify.NewMessenger(notify.New(cfg.Notifications.Type), cfg.Notifications.Messages.Resolve())
}

// newNamer returns a color name client, or nil when names are off
func newNamer(cfg *config.Config, force bool) *colorname.Client {
	if !cfg.ColorNames.Enabled && !force {
		return nil
	}
	cachePath, err := cfg.ColorNameCachePath()
	if err != nil {
		log.Printf("Color names: cache disabled: %v", err)
		cachePath = ""
	}
	return colorname.New(colorname.Options{
		Endpoint:  cfg.ColorNames.Endpoint,
		CachePath: cachePath,
		CacheTTL:  cfg.ColorNames.CacheTTL,
	})
}

func newTracker(seed uint64) *theme.Tracker {
	var src theme.Source
	if seed != 0 {
		src = theme.NewSeeded(seed)
	}
	return theme.NewTracker(theme.NewEngine(src))
}

// applyMode forces the theme mode chosen by flag, falling back to the config.
// "auto" and an empty config keep the computed mode.
func applyMode(tracker *theme.Tracker, cfg *config.Config, flag string) error {
	if flag == "" {
		if m, ok := cfg.ThemeMode(); ok {
			tracker.Override(m)
		}
		return nil
	}
	if flag == "auto" {
		return nil
	}
	m, err := theme.ParseMode(flag)
	if err != nil {
		return err
	}
	tracker.Override(m)
	return nil
}

// namesFor looks up color names with a short overall deadline
func namesFor(ctx context.Context, namer *colorname.Client, colors []string) []string {
	if namer == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	return namer.Names(ctx, colors)
}
