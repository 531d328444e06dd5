package eventstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"entryledger/internal/domain"
)

// PostgresStore persists events in the append-only events table. Rows are
// inserted exactly once and never updated or deleted; there is deliberately
// no UPDATE or DELETE statement in this file.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres creates a PostgreSQL-backed event store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Append validates and inserts the event in a single transaction. The write
// timestamp is clamped so it never precedes the entity's latest event.
func (s *PostgresStore) Append(ctx context.Context, event domain.Event) (uuid.UUID, error) {
	if err := event.Validate(); err != nil {
		return uuid.Nil, err
	}
	if event.EventID == uuid.Nil {
		event.EventID = uuid.New()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	event.Category = domain.CategoryForEventType(event.EventType)

	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return uuid.Nil, domain.Wrap(domain.KindEventWrite, "event could not be encoded", err)
	}
	var previousPayload []byte
	if event.PreviousPayload != nil {
		previousPayload, err = json.Marshal(event.PreviousPayload)
		if err != nil {
			return uuid.Nil, domain.Wrap(domain.KindEventWrite, "event could not be encoded", err)
		}
	}
	var contextJSON []byte
	if event.Context != nil {
		contextJSON, err = json.Marshal(event.Context)
		if err != nil {
			return uuid.Nil, domain.Wrap(domain.KindEventWrite, "event could not be encoded", err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, domain.Wrap(domain.KindEventWrite, "event store unavailable", err)
	}
	defer tx.Rollback()

	// Clamp against the latest timestamp in this entity's stream so the
	// per-entity ordering invariant survives clock skew between writers.
	var last sql.NullTime
	err = tx.QueryRowContext(ctx, `
		SELECT MAX(timestamp) FROM events
		WHERE entity_id = $1 AND entity_type = $2
	`, event.EntityID, event.EntityType).Scan(&last)
	if err != nil {
		return uuid.Nil, domain.Wrap(domain.KindEventWrite, "event store unavailable", err)
	}
	if last.Valid && event.Timestamp.Before(last.Time) {
		event.Timestamp = last.Time
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO events (
			event_id, entity_id, entity_type, event_type, event_category,
			payload, previous_payload,
			actor_id, actor_role, actor_username,
			correlation_id, causation_id, timestamp, context
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`,
		event.EventID,
		event.EntityID,
		event.EntityType,
		event.EventType,
		string(event.Category),
		payload,
		nullBytes(previousPayload),
		event.ActorID,
		event.ActorRole,
		event.ActorUsername,
		nullUUID(event.CorrelationID),
		nullUUID(event.CausationID),
		event.Timestamp,
		nullBytes(contextJSON),
	)
	if err != nil {
		return uuid.Nil, domain.Wrap(domain.KindEventWrite, "event could not be persisted", err)
	}
	if err := tx.Commit(); err != nil {
		return uuid.Nil, domain.Wrap(domain.KindEventWrite, "event could not be persisted", err)
	}
	return event.EventID, nil
}

const eventColumns = `
	event_id, entity_id, entity_type, event_type, event_category,
	payload, previous_payload,
	actor_id, actor_role, actor_username,
	correlation_id, causation_id, timestamp, context
`

// ListForEntity returns events in ascending timestamp order. event_id breaks
// timestamp ties so the order is stable across replays.
func (s *PostgresStore) ListForEntity(ctx context.Context, entityID uuid.UUID, entityType string, limit int) ([]domain.Event, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+eventColumns+`
		FROM events
		WHERE entity_id = $1 AND entity_type = $2
		ORDER BY timestamp ASC, event_id ASC
		LIMIT $3
	`, entityID, entityType, limit)
	if err != nil {
		return nil, domain.Wrap(domain.KindEventWrite, "event store unavailable", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

// EntityIDs lists distinct entity ids of the given type.
func (s *PostgresStore) EntityIDs(ctx context.Context, entityType string) ([]uuid.UUID, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT entity_id FROM events WHERE entity_type = $1
	`, entityType)
	if err != nil {
		return nil, domain.Wrap(domain.KindEventWrite, "event store unavailable", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, domain.Wrap(domain.KindEventWrite, "event store unavailable", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Wrap(domain.KindEventWrite, "event store unavailable", err)
	}
	return ids, nil
}

// GetByID returns one event by id.
func (s *PostgresStore) GetByID(ctx context.Context, eventID uuid.UUID) (domain.Event, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+eventColumns+`
		FROM events
		WHERE event_id = $1
	`, eventID)

	event, err := scanEvent(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Event{}, domain.Ef(domain.KindNotFound, "event not found: %s", eventID)
	}
	if err != nil {
		return domain.Event{}, domain.Wrap(domain.KindEventWrite, "event store unavailable", err)
	}
	return event, nil
}

func scanEvents(rows *sql.Rows) ([]domain.Event, error) {
	var events []domain.Event
	for rows.Next() {
		event, err := scanEvent(rows.Scan)
		if err != nil {
			return nil, domain.Wrap(domain.KindEventWrite, "event store unavailable", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Wrap(domain.KindEventWrite, "event store unavailable", err)
	}
	return events, nil
}

func scanEvent(scan func(dest ...any) error) (domain.Event, error) {
	var (
		event           domain.Event
		category        string
		payload         []byte
		previousPayload []byte
		correlationID   *uuid.UUID
		causationID     *uuid.UUID
		contextJSON     []byte
	)
	err := scan(
		&event.EventID,
		&event.EntityID,
		&event.EntityType,
		&event.EventType,
		&category,
		&payload,
		&previousPayload,
		&event.ActorID,
		&event.ActorRole,
		&event.ActorUsername,
		&correlationID,
		&causationID,
		&event.Timestamp,
		&contextJSON,
	)
	if err != nil {
		return domain.Event{}, err
	}

	event.Category = domain.EventCategory(category)
	if err := json.Unmarshal(payload, &event.Payload); err != nil {
		return domain.Event{}, err
	}
	if previousPayload != nil {
		if err := json.Unmarshal(previousPayload, &event.PreviousPayload); err != nil {
			return domain.Event{}, err
		}
	}
	if contextJSON != nil {
		if err := json.Unmarshal(contextJSON, &event.Context); err != nil {
			return domain.Event{}, err
		}
	}
	if correlationID != nil {
		event.CorrelationID = *correlationID
	}
	if causationID != nil {
		event.CausationID = *causationID
	}
	return event, nil
}

func nullBytes(b []byte) any {
	if b == nil {
		return nil
	}
	return b
}

func nullUUID(id uuid.UUID) any {
	if id == uuid.Nil {
		return nil
	}
	return id
}
