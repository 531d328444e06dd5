package audit

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory audit log for tests and local development.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []Entry
}

// NewMemoryStore creates an empty in-memory audit store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Append stores the entry. Entries are only ever added.
func (s *MemoryStore) Append(ctx context.Context, entry Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

// ListByActor returns the actor's entries, most recent first.
func (s *MemoryStore) ListByActor(ctx context.Context, actorID uuid.UUID, limit int) ([]Entry, error) {
	return s.filter(ctx, limit, func(e Entry) bool { return e.ActorID == actorID })
}

// ListByResource returns entries touching one resource, most recent first.
func (s *MemoryStore) ListByResource(ctx context.Context, resourceType string, resourceID uuid.UUID, limit int) ([]Entry, error) {
	return s.filter(ctx, limit, func(e Entry) bool {
		return e.ResourceType == resourceType && e.ResourceID == resourceID
	})
}

// ListFailures returns failed entries, most recent first.
func (s *MemoryStore) ListFailures(ctx context.Context, limit int) ([]Entry, error) {
	return s.filter(ctx, limit, func(e Entry) bool { return !e.Success })
}

// ListBetween returns entries with from <= timestamp <= to, oldest first.
func (s *MemoryStore) ListBetween(ctx context.Context, from, to time.Time) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Entry
	for _, e := range s.entries {
		if !e.Timestamp.Before(from) && !e.Timestamp.After(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *MemoryStore) filter(ctx context.Context, limit int, keep func(Entry) bool) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 100
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Entry
	for i := len(s.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if keep(s.entries[i]) {
			out = append(out, s.entries[i])
		}
	}
	return out, nil
}
