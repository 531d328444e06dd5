package eventstore

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"entryledger/internal/domain"
)

func appendEvent(t *testing.T, store *MemoryStore, entityID uuid.UUID, eventType string, payload domain.Payload) {
	t.Helper()
	_, err := store.Append(context.Background(), domain.Event{
		EntityID:      entityID,
		EntityType:    domain.EntityTypeDataEntry,
		EventType:     eventType,
		Payload:       payload,
		ActorID:       uuid.New(),
		ActorRole:     domain.RoleOperator,
		ActorUsername: "alice",
	})
	require.NoError(t, err)
}

func TestFoldCurrentState(t *testing.T) {
	ctx := context.Background()

	t.Run("returns not found for an entity with no events", func(t *testing.T) {
		store := NewMemoryStore()
		_, err := FoldCurrentState(ctx, store, uuid.New(), domain.EntityTypeDataEntry)
		require.Error(t, err)
		assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	})

	t.Run("merges payloads last writer wins", func(t *testing.T) {
		store := NewMemoryStore()
		entityID := uuid.New()
		appendEvent(t, store, entityID, domain.EventDataCreated, domain.Payload{
			"state": "draft", "name": "first", "amount": 10.0,
		})
		appendEvent(t, store, entityID, domain.EventDataSubmitted, domain.Payload{
			"state": "submitted", "name": "second",
		})

		cs, err := FoldCurrentState(ctx, store, entityID, domain.EntityTypeDataEntry)
		require.NoError(t, err)
		assert.Equal(t, domain.StateSubmitted, cs.State)
		assert.Equal(t, "second", cs.Payload["name"])
		assert.Equal(t, 10.0, cs.Payload["amount"])
		assert.Equal(t, 2, cs.EventCount)
	})

	t.Run("fold is deterministic across replays", func(t *testing.T) {
		store := NewMemoryStore()
		entityID := uuid.New()
		appendEvent(t, store, entityID, domain.EventDataCreated, domain.Payload{"state": "draft", "v": 1.0})
		appendEvent(t, store, entityID, domain.EventDataSubmitted, domain.Payload{"state": "submitted", "v": 2.0})
		appendEvent(t, store, entityID, domain.EventDataConfirmed, domain.Payload{"state": "confirmed", "v": 3.0})

		first, err := FoldCurrentState(ctx, store, entityID, domain.EntityTypeDataEntry)
		require.NoError(t, err)
		second, err := FoldCurrentState(ctx, store, entityID, domain.EntityTypeDataEntry)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("ignores invalid state values", func(t *testing.T) {
		store := NewMemoryStore()
		entityID := uuid.New()
		appendEvent(t, store, entityID, domain.EventDataCreated, domain.Payload{"state": "nonsense"})

		cs, err := FoldCurrentState(ctx, store, entityID, domain.EntityTypeDataEntry)
		require.NoError(t, err)
		assert.Equal(t, domain.StateDraft, cs.State)
	})

	t.Run("defaults to draft when no event carries state", func(t *testing.T) {
		store := NewMemoryStore()
		entityID := uuid.New()
		appendEvent(t, store, entityID, domain.EventDataCreated, domain.Payload{"name": "x"})

		cs, err := FoldCurrentState(ctx, store, entityID, domain.EntityTypeDataEntry)
		require.NoError(t, err)
		assert.Equal(t, domain.StateDraft, cs.State)
	})
}
