package eventstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"entryledger/internal/domain"
)

type entityKey struct {
	entityID   uuid.UUID
	entityType string
}

// MemoryStore is an in-memory Store for tests and local development. Events
// are copied on write and on read so callers can never mutate history.
type MemoryStore struct {
	mu       sync.RWMutex
	byEntity map[entityKey][]domain.Event
	byID     map[uuid.UUID]domain.Event
	clock    func() time.Time
}

// MemoryStoreOption configures a MemoryStore.
type MemoryStoreOption func(*MemoryStore)

// WithClock sets the write-timestamp clock for testability.
func WithClock(clock func() time.Time) MemoryStoreOption {
	return func(s *MemoryStore) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// NewMemoryStore creates an empty in-memory event store.
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	s := &MemoryStore{
		byEntity: make(map[entityKey][]domain.Event),
		byID:     make(map[uuid.UUID]domain.Event),
		clock:    time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Append validates and stores the event. The assigned timestamp never moves
// backwards within a single entity's stream.
func (s *MemoryStore) Append(ctx context.Context, event domain.Event) (uuid.UUID, error) {
	if err := ctx.Err(); err != nil {
		return uuid.Nil, domain.Wrap(domain.KindEventWrite, "append cancelled", err)
	}
	if err := event.Validate(); err != nil {
		return uuid.Nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if event.EventID == uuid.Nil {
		event.EventID = uuid.New()
	}
	if _, exists := s.byID[event.EventID]; exists {
		return uuid.Nil, domain.Ef(domain.KindEventWrite, "event already exists: %s", event.EventID)
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.clock().UTC()
	}
	event.Category = domain.CategoryForEventType(event.EventType)

	key := entityKey{entityID: event.EntityID, entityType: event.EntityType}
	if stream := s.byEntity[key]; len(stream) > 0 {
		if last := stream[len(stream)-1].Timestamp; event.Timestamp.Before(last) {
			event.Timestamp = last
		}
	}

	event.Payload = event.Payload.Clone()
	event.PreviousPayload = event.PreviousPayload.Clone()

	s.byEntity[key] = append(s.byEntity[key], event)
	s.byID[event.EventID] = event
	return event.EventID, nil
}

// ListForEntity returns the entity's events in ascending timestamp order.
func (s *MemoryStore) ListForEntity(ctx context.Context, entityID uuid.UUID, entityType string, limit int) ([]domain.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	stream := s.byEntity[entityKey{entityID: entityID, entityType: entityType}]
	if len(stream) > limit {
		stream = stream[:limit]
	}

	out := make([]domain.Event, len(stream))
	for i, event := range stream {
		event.Payload = event.Payload.Clone()
		event.PreviousPayload = event.PreviousPayload.Clone()
		out[i] = event
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

// EntityIDs lists distinct entity ids of the given type.
func (s *MemoryStore) EntityIDs(ctx context.Context, entityType string) ([]uuid.UUID, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var ids []uuid.UUID
	for key := range s.byEntity {
		if key.entityType == entityType {
			ids = append(ids, key.entityID)
		}
	}
	return ids, nil
}

// GetByID returns one event by id.
func (s *MemoryStore) GetByID(ctx context.Context, eventID uuid.UUID) (domain.Event, error) {
	if err := ctx.Err(); err != nil {
		return domain.Event{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	event, ok := s.byID[eventID]
	if !ok {
		return domain.Event{}, domain.Ef(domain.KindNotFound, "event not found: %s", eventID)
	}
	event.Payload = event.Payload.Clone()
	event.PreviousPayload = event.PreviousPayload.Clone()
	return event, nil
}
