package eventstore

import (
	"context"
	"time"

	"github.com/google/uuid"

	"entryledger/internal/domain"
)

// CurrentState is the result of folding one entity's event history.
type CurrentState struct {
	EntityID   uuid.UUID
	EntityType string
	State      domain.EntryState
	Payload    domain.Payload
	EventCount int
	LastEvent  time.Time
}

// FoldCurrentState derives current state by replaying the entity's events in
// ascending timestamp order. Payload merge is last-writer-wins per key; the
// "state" key of the latest event carrying one wins. Returns KindNotFound
// when the entity has no events.
func FoldCurrentState(ctx context.Context, store Store, entityID uuid.UUID, entityType string) (CurrentState, error) {
	events, err := store.ListForEntity(ctx, entityID, entityType, 0)
	if err != nil {
		return CurrentState{}, err
	}
	if len(events) == 0 {
		return CurrentState{}, domain.Ef(domain.KindNotFound, "entity not found: %s", entityID)
	}

	cs := CurrentState{
		EntityID:   entityID,
		EntityType: entityType,
		State:      domain.StateDraft,
		Payload:    domain.Payload{},
		EventCount: len(events),
	}
	for _, event := range events {
		cs.Payload = cs.Payload.Merge(event.Payload)
		cs.LastEvent = event.Timestamp
	}
	if raw, ok := cs.Payload["state"]; ok {
		switch v := raw.(type) {
		case string:
			if domain.EntryState(v).Valid() {
				cs.State = domain.EntryState(v)
			}
		case domain.EntryState:
			if v.Valid() {
				cs.State = v
			}
		}
	}
	return cs, nil
}
