package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"

	"vidinsight/internal/model"
)

// FavoritesStore is the session/user-scoped favorites list. Entries
// keep insertion order per owner; removal is positional.
type FavoritesStore interface {
	Add(ctx context.Context, entry *model.FavoriteEntry) error
	List(ctx context.Context, owner string) ([]model.FavoriteEntry, error)
	Remove(ctx context.Context, owner string, index int) (*model.FavoriteEntry, error)
	Clear(ctx context.Context, owner string) error
}

// InsertionIndex maps a display position onto the stored insertion
// position. Lists are often rendered newest-first; removing "the
// second row" of a reversed view must not delete the wrong entry.
func InsertionIndex(displayIndex, length int, reversed bool) (int, error) {
	if displayIndex < 0 || displayIndex >= length {
		return 0, fmt.Errorf("index %d out of range [0,%d)", displayIndex, length)
	}
	if reversed {
		return length - 1 - displayIndex, nil
	}
	return displayIndex, nil
}

// MemoryFavorites keeps favorites in memory, optionally mirrored to a
// JSON file so they survive restarts.
type MemoryFavorites struct {
	mu       sync.Mutex
	byOwner  map[string][]model.FavoriteEntry
	filePath string // empty disables persistence
}

// NewMemoryFavorites creates the store and, when filePath is set,
// loads any previously persisted entries.
func NewMemoryFavorites(filePath string) (*MemoryFavorites, error) {
	s := &MemoryFavorites{
		byOwner:  make(map[string][]model.FavoriteEntry),
		filePath: filePath,
	}
	if filePath != "" {
		if err := s.load(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *MemoryFavorites) Add(_ context.Context, entry *model.FavoriteEntry) error {
	if entry.Owner == "" {
		return fmt.Errorf("favorite entry requires an owner")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.byOwner[entry.Owner] = append(s.byOwner[entry.Owner], *entry)
	return s.persistLocked()
}

func (s *MemoryFavorites) List(_ context.Context, owner string) ([]model.FavoriteEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.byOwner[owner]
	out := make([]model.FavoriteEntry, len(entries))
	copy(out, entries)
	return out, nil
}

func (s *MemoryFavorites) Remove(_ context.Context, owner string, index int) (*model.FavoriteEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.byOwner[owner]
	if index < 0 || index >= len(entries) {
		return nil, fmt.Errorf("index %d out of range [0,%d)", index, len(entries))
	}

	removed := entries[index]
	s.byOwner[owner] = append(entries[:index], entries[index+1:]...)
	if err := s.persistLocked(); err != nil {
		return nil, err
	}
	return &removed, nil
}

func (s *MemoryFavorites) Clear(_ context.Context, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.byOwner, owner)
	return s.persistLocked()
}

// load reads the persisted flat file. Entries are stored with their
// owner so one user's favorites never show up in another's view.
func (s *MemoryFavorites) load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read favorites file: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	var entries []model.FavoriteEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("failed to parse favorites file: %w", err)
	}
	for _, e := range entries {
		owner := e.Owner
		if owner == "" {
			owner = "anonymous"
			e.Owner = owner
		}
		s.byOwner[owner] = append(s.byOwner[owner], e)
	}
	log.Printf("[Favorites] Loaded %d entries from %s", len(entries), s.filePath)
	return nil
}

func (s *MemoryFavorites) persistLocked() error {
	if s.filePath == "" {
		return nil
	}

	var entries []model.FavoriteEntry
	for _, list := range s.byOwner {
		entries = append(entries, list...)
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal favorites: %w", err)
	}
	if err := os.WriteFile(s.filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write favorites file: %w", err)
	}
	return nil
}
