package projection

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"entryledger/internal/domain"
	"entryledger/internal/eventstore"
)

type ProjectorSuite struct {
	suite.Suite
	store     *MemoryStore
	projector *Projector
	ctx       context.Context
	now       time.Time
}

func (s *ProjectorSuite) SetupTest() {
	s.store = NewMemoryStore()
	s.projector = NewProjector(s.store, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.ctx = context.Background()
	s.now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

func TestProjectorSuite(t *testing.T) {
	suite.Run(t, new(ProjectorSuite))
}

func (s *ProjectorSuite) event(entityID uuid.UUID, eventType string, actor domain.Actor, payload domain.Payload) domain.Event {
	s.now = s.now.Add(time.Minute)
	return domain.Event{
		EventID:       uuid.New(),
		EntityID:      entityID,
		EntityType:    domain.EntityTypeDataEntry,
		EventType:     eventType,
		Payload:       payload,
		ActorID:       actor.ID,
		ActorRole:     actor.Role,
		ActorUsername: actor.Username,
		Timestamp:     s.now,
	}
}

func (s *ProjectorSuite) TestApplyLifecycle() {
	operator := domain.Actor{ID: uuid.New(), Role: domain.RoleOperator, Username: "alice"}
	supervisor := domain.Actor{ID: uuid.New(), Role: domain.RoleSupervisor, Username: "bob"}
	entryID := uuid.New()

	s.Require().NoError(s.projector.Apply(s.ctx, s.event(entryID, domain.EventDataCreated, operator, domain.Payload{
		"state":      "draft",
		"entry_type": "measurement",
		"data":       map[string]any{"amount": 42.0},
	})))

	s.Run("created row carries the creator and data", func() {
		entry, err := s.projector.Get(s.ctx, entryID)
		s.Require().NoError(err)
		s.Equal("draft", entry.Status)
		s.Equal("measurement", entry.EntryType)
		s.Equal(operator.ID, entry.CreatedBy)
		s.Equal("alice", entry.CreatedByUsername)
		s.Equal(42.0, entry.Data["amount"])
		s.Equal(1, entry.Version)
	})

	s.Require().NoError(s.projector.Apply(s.ctx, s.event(entryID, domain.EventDataUpdated, operator, domain.Payload{
		"data":       map[string]any{"amount": 43.0},
		"updated_by": "alice",
	})))

	s.Run("update replaces the data in place", func() {
		entry, err := s.projector.Get(s.ctx, entryID)
		s.Require().NoError(err)
		s.Equal("draft", entry.Status)
		s.Equal(43.0, entry.Data["amount"])
		s.Equal(2, entry.Version)
	})

	s.Require().NoError(s.projector.Apply(s.ctx, s.event(entryID, domain.EventDataSubmitted, operator, domain.Payload{
		"state": "submitted",
	})))
	s.Require().NoError(s.projector.Apply(s.ctx, s.event(entryID, domain.EventDataConfirmed, supervisor, domain.Payload{
		"state":             "confirmed",
		"confirmation_note": "looks right",
	})))

	s.Run("confirmation bookkeeping", func() {
		entry, err := s.projector.Get(s.ctx, entryID)
		s.Require().NoError(err)
		s.Equal("confirmed", entry.Status)
		s.NotNil(entry.SubmittedAt)
		s.Require().NotNil(entry.ConfirmedBy)
		s.Equal(supervisor.ID, *entry.ConfirmedBy)
		s.Equal("looks right", entry.ConfirmationNote)
		s.Equal(4, entry.Version)
	})

	s.Require().NoError(s.projector.Apply(s.ctx, s.event(entryID, domain.EventDataCorrected, supervisor, domain.Payload{
		"state":          "corrected",
		"corrected_data": map[string]any{"amount": 43.0},
	})))

	s.Run("correction merges data and counts", func() {
		entry, err := s.projector.Get(s.ctx, entryID)
		s.Require().NoError(err)
		s.Equal("corrected", entry.Status)
		s.Equal(43.0, entry.Data["amount"])
		s.Equal(1, entry.CorrectionCount)
		s.NotNil(entry.LastCorrectedAt)
	})

	s.Run("non data-entry events are ignored", func() {
		event := s.event(uuid.New(), "user.login", operator, domain.Payload{"ok": true})
		event.EntityType = "user"
		s.Require().NoError(s.projector.Apply(s.ctx, event))
		_, err := s.projector.Get(s.ctx, event.EntityID)
		s.ErrorIs(err, ErrNotCached)
	})
}

func (s *ProjectorSuite) TestListFilters() {
	operator := domain.Actor{ID: uuid.New(), Role: domain.RoleOperator, Username: "alice"}
	other := domain.Actor{ID: uuid.New(), Role: domain.RoleOperator, Username: "carol"}

	mine := uuid.New()
	theirs := uuid.New()
	s.Require().NoError(s.projector.Apply(s.ctx, s.event(mine, domain.EventDataCreated, operator, domain.Payload{
		"state": "draft", "entry_type": "measurement", "data": map[string]any{},
	})))
	s.Require().NoError(s.projector.Apply(s.ctx, s.event(theirs, domain.EventDataCreated, other, domain.Payload{
		"state": "draft", "entry_type": "measurement", "data": map[string]any{},
	})))
	s.Require().NoError(s.projector.Apply(s.ctx, s.event(mine, domain.EventDataSubmitted, operator, domain.Payload{
		"state": "submitted",
	})))

	s.Run("filter by creator", func() {
		entries, err := s.projector.List(s.ctx, ListFilter{CreatedBy: operator.ID})
		s.Require().NoError(err)
		s.Require().Len(entries, 1)
		s.Equal(mine, entries[0].EntryID)
	})

	s.Run("filter by status", func() {
		entries, err := s.projector.List(s.ctx, ListFilter{Status: "draft"})
		s.Require().NoError(err)
		s.Require().Len(entries, 1)
		s.Equal(theirs, entries[0].EntryID)
	})

	s.Run("limit caps results", func() {
		entries, err := s.projector.List(s.ctx, ListFilter{Limit: 1})
		s.Require().NoError(err)
		s.Len(entries, 1)
	})
}

func (s *ProjectorSuite) TestRebuild() {
	events := eventstore.NewMemoryStore()
	operator := domain.Actor{ID: uuid.New(), Role: domain.RoleOperator, Username: "alice"}
	supervisor := domain.Actor{ID: uuid.New(), Role: domain.RoleSupervisor, Username: "bob"}
	entryID := uuid.New()

	for _, event := range []domain.Event{
		s.event(entryID, domain.EventDataCreated, operator, domain.Payload{
			"state": "draft", "entry_type": "measurement", "data": map[string]any{"amount": 42.0},
		}),
		s.event(entryID, domain.EventDataSubmitted, operator, domain.Payload{"state": "submitted"}),
		s.event(entryID, domain.EventDataConfirmed, supervisor, domain.Payload{"state": "confirmed"}),
	} {
		_, err := events.Append(s.ctx, event)
		s.Require().NoError(err)
	}

	// Poison the cache, then rebuild from the event store.
	s.Require().NoError(s.store.Save(s.ctx, DataEntry{EntryID: uuid.New(), Status: "stale"}))

	s.Require().NoError(s.projector.Rebuild(s.ctx, events))

	entries, err := s.projector.List(s.ctx, ListFilter{})
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal(entryID, entries[0].EntryID)
	s.Equal("confirmed", entries[0].Status)
	s.Equal(3, entries[0].Version)
}
