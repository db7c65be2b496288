package config

import (
	"context"
	"fmt"
	"log"
	"maps"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadSettle is how long the watcher waits after the last event on the
// config file before reloading. Save writes a temp file and renames it,
// which arrives as a burst of events.
const reloadSettle = 150 * time.Millisecond

// Manager keeps the live configuration of a long-running command and
// swaps it when config.toml changes on disk.
type Manager struct {
	mu        sync.RWMutex
	current   *Config
	listeners []func(*Config)

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewManager loads the configuration. Validation problems are logged, not
// returned, so a half-configured install can still start.
func NewManager() (*Manager, error) {
	cfg, err := Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Printf("Config: starting with invalid configuration: %v", err)
	}
	return &Manager{current: cfg}, nil
}

// Snapshot returns a copy of the current configuration.
func (m *Manager) Snapshot() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := *m.current
	out.Providers = maps.Clone(m.current.Providers)
	if out.Providers == nil {
		out.Providers = map[string]ProviderConfig{}
	}
	return &out
}

// OnReload adds fn to the functions called with each accepted reload.
func (m *Manager) OnReload(fn func(*Config)) {
	m.mu.Lock()
	m.listeners = append(m.listeners, fn)
	m.mu.Unlock()
}

// Watch follows config.toml until ctx ends or Close is called.
func (m *Manager) Watch(ctx context.Context) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	// Watch the directory: the file itself is replaced on every save.
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	m.watcher = w
	m.done = make(chan struct{})
	go m.follow(ctx, filepath.Base(path))

	log.Printf("Config: watching %s", path)
	return nil
}

// Close stops watching and waits for the watcher goroutine.
func (m *Manager) Close() {
	if m.watcher == nil {
		return
	}
	m.watcher.Close()
	<-m.done
	m.watcher = nil
}

func (m *Manager) follow(ctx context.Context, name string) {
	defer close(m.done)

	settle := time.NewTimer(reloadSettle)
	settle.Stop()
	defer settle.Stop()

	for {
		select {
		case ev, ok := <-m.watcher.Events:
			if !ok {
				return
			}
			if touchesConfig(ev, name) {
				settle.Reset(reloadSettle)
			}
		case err, ok := <-m.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Config: watcher error: %v", err)
		case <-settle.C:
			if err := m.reload(); err != nil {
				log.Printf("Config: keeping previous configuration: %v", err)
			}
		case <-ctx.Done():
			return
		}
	}
}

// touchesConfig reports whether ev may have changed the config file named name.
func touchesConfig(ev fsnotify.Event, name string) bool {
	if filepath.Base(ev.Name) != name {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)
}

// reload re-reads the file and, when it validates, installs it and notifies
// listeners. An invalid file leaves the current configuration in place.
func (m *Manager) reload() error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	m.mu.Lock()
	m.current = cfg
	listeners := append([]func(*Config){}, m.listeners...)
	m.mu.Unlock()

	log.Printf("Config: reloaded")
	for _, fn := range listeners {
		fn(cfg)
	}
	return nil
}
