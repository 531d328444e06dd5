package projection

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix = "entryledger:projection:entry:"
	redisIndexKey  = "entryledger:projection:index"
)

// RedisStore keeps projection rows as JSON values in Redis, with a set index
// of known entry ids for List and Reset. Losing the cache loses nothing:
// Rebuild reconstructs it from the event store.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed projection store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Save overwrites the row for the entry and indexes its id.
func (s *RedisStore) Save(ctx context.Context, entry DataEntry) error {
	value, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal projection row: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, redisKeyPrefix+entry.EntryID.String(), value, 0)
	pipe.SAdd(ctx, redisIndexKey, entry.EntryID.String())
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save projection row: %w", err)
	}
	return nil
}

// Get returns the row for one entry, or ErrNotCached.
func (s *RedisStore) Get(ctx context.Context, entryID uuid.UUID) (DataEntry, error) {
	value, err := s.client.Get(ctx, redisKeyPrefix+entryID.String()).Bytes()
	if err == redis.Nil {
		return DataEntry{}, ErrNotCached
	}
	if err != nil {
		return DataEntry{}, fmt.Errorf("get projection row: %w", err)
	}

	var entry DataEntry
	if err := json.Unmarshal(value, &entry); err != nil {
		return DataEntry{}, fmt.Errorf("unmarshal projection row: %w", err)
	}
	return entry, nil
}

// List scans the index and filters rows, newest first.
func (s *RedisStore) List(ctx context.Context, filter ListFilter) ([]DataEntry, error) {
	ids, err := s.client.SMembers(ctx, redisIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list projection index: %w", err)
	}

	var out []DataEntry
	for _, id := range ids {
		entryID, err := uuid.Parse(id)
		if err != nil {
			continue
		}
		entry, err := s.Get(ctx, entryID)
		if err == ErrNotCached {
			continue
		}
		if err != nil {
			return nil, err
		}
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

// Reset drops all rows and the index.
func (s *RedisStore) Reset(ctx context.Context) error {
	ids, err := s.client.SMembers(ctx, redisIndexKey).Result()
	if err != nil {
		return fmt.Errorf("list projection index: %w", err)
	}

	pipe := s.client.TxPipeline()
	for _, id := range ids {
		pipe.Del(ctx, redisKeyPrefix+id)
	}
	pipe.Del(ctx, redisIndexKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("reset projection: %w", err)
	}
	return nil
}
