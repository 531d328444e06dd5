package projection

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore keeps projection rows in memory.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]DataEntry
}

// NewMemoryStore creates an empty in-memory projection store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[uuid.UUID]DataEntry)}
}

// Save overwrites the row for the entry.
func (s *MemoryStore) Save(ctx context.Context, entry DataEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.EntryID] = entry
	return nil
}

// Get returns the row for one entry, or ErrNotCached.
func (s *MemoryStore) Get(ctx context.Context, entryID uuid.UUID) (DataEntry, error) {
	if err := ctx.Err(); err != nil {
		return DataEntry{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[entryID]
	if !ok {
		return DataEntry{}, ErrNotCached
	}
	return entry, nil
}

// List returns rows matching the filter, newest first.
func (s *MemoryStore) List(ctx context.Context, filter ListFilter) ([]DataEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []DataEntry
	for _, entry := range s.entries {
		if filter.Status != "" && entry.Status != filter.Status {
			continue
		}
		if filter.CreatedBy != uuid.Nil && entry.CreatedBy != filter.CreatedBy {
			continue
		}
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return nil, nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

// Reset drops all rows.
func (s *MemoryStore) Reset(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[uuid.UUID]DataEntry)
	return nil
}
