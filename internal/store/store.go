// Package store keeps the user's saved palettes, newest first, and mirrors
// every change to a durable slot.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"slices"
	"sync"

	"github.com/leonardotrapani/hueprompt/internal/palette"
	"github.com/samber/lo"
)

// ErrIndexOutOfRange is returned by Get for an index outside List()
var ErrIndexOutOfRange = errors.New("no saved palette at that index")

// Store holds the saved palettes in memory and persists them through a Slot
type Store struct {
	mu       sync.Mutex
	slot     Slot
	palettes []palette.Palette
}

// New creates an empty store backed by slot; call Load to hydrate it
func New(slot Slot) *Store {
	return &Store{slot: slot}
}

// Load hydrates the store from its slot. Missing, unreadable or corrupt data
// leaves the store empty.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.palettes = nil

	data, err := s.slot.Read(ctx)
	if errors.Is(err, ErrSlotEmpty) {
		log.Printf("Store: no saved palettes yet")
		return
	}
	if err != nil {
		log.Printf("Store: failed to read saved palettes, starting empty: %v", err)
		return
	}

	var saved []palette.Palette
	if err := json.Unmarshal(data, &saved); err != nil {
		log.Printf("Store: saved palettes are corrupt, starting empty: %v", err)
		return
	}

	s.palettes = saved
	log.Printf("Store: loaded %d saved palettes", len(saved))
}

// List returns the saved palettes, newest first
func (s *Store) List() []palette.Palette {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.palettes)
}

// Len returns the number of saved palettes
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.palettes)
}

// Get returns the palette at index i of List()
func (s *Store) Get(i int) (palette.Palette, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= len(s.palettes) {
		return palette.Palette{}, fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, i, len(s.palettes))
	}
	return s.palettes[i].Clone(), nil
}

// Contains reports whether colors would be rejected as a duplicate by Add
func (s *Store) Contains(colors []palette.Color) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.containsLocked(colors)
}

// containsLocked compares only the first len(colors) entries of each saved
// palette, so a candidate that is a prefix of a saved palette (including the
// empty candidate) counts as a duplicate.
func (s *Store) containsLocked(colors []palette.Color) bool {
	return lo.SomeBy(s.palettes, func(existing palette.Palette) bool {
		if len(existing.Colors) < len(colors) {
			return false
		}
		return slices.Equal(existing.Colors[:len(colors)], colors)
	})
}

// Add prepends candidate unless it duplicates a saved palette, then writes
// the full snapshot to the slot. A write failure is returned but the
// in-memory insertion is kept.
func (s *Store) Add(ctx context.Context, candidate palette.Palette) (duplicate bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.containsLocked(candidate.Colors) {
		log.Printf("Store: %q is already saved", candidate.Name)
		return true, nil
	}

	s.palettes = slices.Insert(s.palettes, 0, candidate.Clone())

	data, err := json.Marshal(s.palettes)
	if err != nil {
		return false, fmt.Errorf("encode palettes: %w", err)
	}
	if err := s.slot.Write(ctx, data); err != nil {
		log.Printf("Store: failed to persist palettes: %v", err)
		return false, fmt.Errorf("persist palettes: %w", err)
	}

	log.Printf("Store: saved %q (%d palettes)", candidate.Name, len(s.palettes))
	return false, nil
}
