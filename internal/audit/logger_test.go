package audit

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"entryledger/internal/domain"
)

type failingStore struct{ Store }

func (failingStore) Append(ctx context.Context, entry Entry) error {
	return errors.New("disk full")
}

type failingPublisher struct{ calls int }

func (p *failingPublisher) Publish(ctx context.Context, entry Entry) error {
	p.calls++
	return errors.New("broker unreachable")
}

type LoggerSuite struct {
	suite.Suite
	store  *MemoryStore
	logger *Logger
	ctx    context.Context
}

func (s *LoggerSuite) SetupTest() {
	s.store = NewMemoryStore()
	s.logger = NewLogger(s.store, nil, slog.New(slog.NewTextHandler(io.Discard, nil)), nil)
	s.ctx = context.Background()
}

func TestLoggerSuite(t *testing.T) {
	suite.Run(t, new(LoggerSuite))
}

func (s *LoggerSuite) newEntry(actorID uuid.UUID, action string, success bool) Entry {
	return Entry{
		ActorID:       actorID,
		ActorRole:     domain.RoleOperator,
		ActorUsername: "alice",
		Action:        action,
		ResourceType:  "data",
		ResourceID:    uuid.New(),
		Success:       success,
	}
}

func (s *LoggerSuite) TestLog() {
	s.Run("assigns audit id and timestamp", func() {
		auditID, err := s.logger.Log(s.ctx, s.newEntry(uuid.New(), "data:create", true))
		s.Require().NoError(err)
		s.NotEqual(uuid.Nil, auditID)

		entries, err := s.store.ListFailures(s.ctx, 0)
		s.Require().NoError(err)
		s.Empty(entries)
	})

	s.Run("store failure is returned to the caller", func() {
		broken := NewLogger(failingStore{}, nil, slog.New(slog.NewTextHandler(io.Discard, nil)), nil)
		_, err := broken.Log(s.ctx, s.newEntry(uuid.New(), "data:create", true))
		s.Error(err)
	})

	s.Run("publisher failure does not fail the append", func() {
		publisher := &failingPublisher{}
		logger := NewLogger(s.store, publisher, slog.New(slog.NewTextHandler(io.Discard, nil)), nil)

		_, err := logger.Log(s.ctx, s.newEntry(uuid.New(), "data:create", true))
		s.Require().NoError(err)
		s.Equal(1, publisher.calls)
	})
}

func (s *LoggerSuite) TestQueries() {
	actorID := uuid.New()
	resourceID := uuid.New()

	first := s.newEntry(actorID, "data:create", true)
	first.ResourceID = resourceID
	second := s.newEntry(actorID, "data:update", false)
	second.ErrorMessage = "access denied"
	third := s.newEntry(uuid.New(), "data:read", true)

	for _, entry := range []Entry{first, second, third} {
		_, err := s.logger.Log(s.ctx, entry)
		s.Require().NoError(err)
	}

	s.Run("actor history is newest first", func() {
		entries, err := s.logger.ActorHistory(s.ctx, actorID, 0)
		s.Require().NoError(err)
		s.Require().Len(entries, 2)
		s.Equal("data:update", entries[0].Action)
		s.Equal("data:create", entries[1].Action)
	})

	s.Run("resource history filters by type and id", func() {
		entries, err := s.logger.ResourceHistory(s.ctx, "data", resourceID, 0)
		s.Require().NoError(err)
		s.Require().Len(entries, 1)
		s.Equal("data:create", entries[0].Action)
	})

	s.Run("failures lists only failed actions", func() {
		entries, err := s.logger.Failures(s.ctx, 0)
		s.Require().NoError(err)
		s.Require().Len(entries, 1)
		s.Equal("access denied", entries[0].ErrorMessage)
	})
}

func (s *LoggerSuite) TestComplianceReport() {
	actorRoles := []struct {
		action  string
		role    string
		success bool
	}{
		{"data:create", domain.RoleOperator, true},
		{"data:create", domain.RoleOperator, true},
		{"data:confirm", domain.RoleSupervisor, true},
		{"data:update", domain.RoleOperator, false},
	}
	for _, c := range actorRoles {
		entry := s.newEntry(uuid.New(), c.action, c.success)
		entry.ActorRole = c.role
		_, err := s.logger.Log(s.ctx, entry)
		s.Require().NoError(err)
	}

	from := time.Now().UTC().Add(-time.Hour)
	to := time.Now().UTC().Add(time.Hour)
	report, err := s.logger.ComplianceReport(s.ctx, from, to)
	s.Require().NoError(err)

	s.Equal(4, report.TotalActions)
	s.Equal(3, report.SuccessfulActions)
	s.Equal(1, report.FailedActions)
	s.InDelta(0.75, report.SuccessRate, 0.001)
	s.Equal(2, report.ActionsByType["data:create"])
	s.Equal(1, report.ActionsByType["data:confirm"])
	s.Equal(3, report.ActionsByRole[domain.RoleOperator])
	s.Equal(1, report.ActionsByRole[domain.RoleSupervisor])
}

func (s *LoggerSuite) TestEmptyReport() {
	report, err := s.logger.ComplianceReport(s.ctx, time.Now().Add(-time.Hour), time.Now())
	s.Require().NoError(err)
	s.Zero(report.TotalActions)
	s.Zero(report.SuccessRate)
}
