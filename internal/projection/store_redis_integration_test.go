//go:build integration

package projection

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"entryledger/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	ctx       context.Context
	container *containers.RedisContainer
	store     *RedisStore
}

func (s *RedisStoreSuite) SetupSuite() {
	s.ctx = context.Background()
	s.container = containers.NewRedisContainer(s.T())
	s.store = NewRedisStore(s.container.Client)
}

func (s *RedisStoreSuite) TearDownSuite() {
	_ = s.container.Client.Close()
	_ = s.container.Container.Terminate(s.ctx)
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.container.FlushAll(s.ctx))
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) newEntry(createdBy uuid.UUID, status string, createdAt time.Time) DataEntry {
	return DataEntry{
		EntryID:   uuid.New(),
		EntryType: "measurement",
		Data:      map[string]any{"amount": 42.0},
		Status:    status,
		CreatedBy: createdBy,
		CreatedAt: createdAt,
		Version:   1,
		UpdatedAt: createdAt,
	}
}

func (s *RedisStoreSuite) TestSaveAndGet() {
	entry := s.newEntry(uuid.New(), "draft", time.Now().UTC().Truncate(time.Millisecond))
	s.Require().NoError(s.store.Save(s.ctx, entry))

	stored, err := s.store.Get(s.ctx, entry.EntryID)
	s.Require().NoError(err)
	s.Equal(entry.EntryID, stored.EntryID)
	s.Equal("draft", stored.Status)
	s.Equal(map[string]any{"amount": 42.0}, stored.Data)
	s.Equal(entry.CreatedBy, stored.CreatedBy)
}

func (s *RedisStoreSuite) TestGetMissing() {
	_, err := s.store.Get(s.ctx, uuid.New())
	s.ErrorIs(err, ErrNotCached)
}

func (s *RedisStoreSuite) TestSaveOverwrites() {
	entry := s.newEntry(uuid.New(), "draft", time.Now().UTC())
	s.Require().NoError(s.store.Save(s.ctx, entry))

	entry.Status = "submitted"
	entry.Version = 2
	s.Require().NoError(s.store.Save(s.ctx, entry))

	stored, err := s.store.Get(s.ctx, entry.EntryID)
	s.Require().NoError(err)
	s.Equal("submitted", stored.Status)
	s.Equal(2, stored.Version)
}

func (s *RedisStoreSuite) TestListFilters() {
	operator, other := uuid.New(), uuid.New()
	base := time.Now().UTC().Truncate(time.Millisecond)

	mine := s.newEntry(operator, "draft", base)
	submitted := s.newEntry(operator, "submitted", base.Add(time.Second))
	theirs := s.newEntry(other, "draft", base.Add(2*time.Second))
	for _, entry := range []DataEntry{mine, submitted, theirs} {
		s.Require().NoError(s.store.Save(s.ctx, entry))
	}

	s.Run("by creator", func() {
		entries, err := s.store.List(s.ctx, ListFilter{CreatedBy: operator})
		s.Require().NoError(err)
		s.Len(entries, 2)
	})

	s.Run("by status", func() {
		entries, err := s.store.List(s.ctx, ListFilter{Status: "submitted"})
		s.Require().NoError(err)
		s.Require().Len(entries, 1)
		s.Equal(submitted.EntryID, entries[0].EntryID)
	})

	s.Run("newest first with limit", func() {
		entries, err := s.store.List(s.ctx, ListFilter{Limit: 2})
		s.Require().NoError(err)
		s.Require().Len(entries, 2)
		s.Equal(theirs.EntryID, entries[0].EntryID)
	})
}

func (s *RedisStoreSuite) TestReset() {
	entry := s.newEntry(uuid.New(), "draft", time.Now().UTC())
	s.Require().NoError(s.store.Save(s.ctx, entry))

	s.Require().NoError(s.store.Reset(s.ctx))

	_, err := s.store.Get(s.ctx, entry.EntryID)
	s.ErrorIs(err, ErrNotCached)
	entries, err := s.store.List(s.ctx, ListFilter{})
	s.Require().NoError(err)
	s.Empty(entries)
}
