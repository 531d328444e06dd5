package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PostgresStore persists audit entries in the append-only audit_logs table.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres creates a PostgreSQL-backed audit store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Append inserts the entry. Inserts are idempotent on audit_id so the Kafka
// materializer can replay safely.
func (s *PostgresStore) Append(ctx context.Context, entry Entry) error {
	var contextJSON []byte
	if entry.Context != nil {
		var err error
		contextJSON, err = json.Marshal(entry.Context)
		if err != nil {
			return fmt.Errorf("marshal audit context: %w", err)
		}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO audit_logs (
			audit_id, actor_id, actor_role, actor_username,
			action, resource_type, resource_id, scope_granted,
			request_id, request_path, request_method, user_agent, ip_address,
			success, error_message, status_code, timestamp, context
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		ON CONFLICT (audit_id) DO NOTHING
	`,
		entry.AuditID,
		entry.ActorID,
		entry.ActorRole,
		entry.ActorUsername,
		entry.Action,
		entry.ResourceType,
		nullUUID(entry.ResourceID),
		nullString(entry.ScopeGranted),
		nullUUID(entry.RequestID),
		nullString(entry.RequestPath),
		nullString(entry.RequestMethod),
		nullString(entry.UserAgent),
		nullString(entry.IPAddress),
		entry.Success,
		nullString(entry.ErrorMessage),
		nullInt(entry.StatusCode),
		entry.Timestamp,
		nullBytes(contextJSON),
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

const entryColumns = `
	audit_id, actor_id, actor_role, actor_username,
	action, resource_type, resource_id, scope_granted,
	request_id, request_path, request_method, user_agent, ip_address,
	success, error_message, status_code, timestamp, context
`

// ListByActor returns the actor's entries, most recent first.
func (s *PostgresStore) ListByActor(ctx context.Context, actorID uuid.UUID, limit int) ([]Entry, error) {
	return s.query(ctx, `
		SELECT `+entryColumns+`
		FROM audit_logs
		WHERE actor_id = $1
		ORDER BY timestamp DESC
		LIMIT $2
	`, actorID, clampLimit(limit))
}

// ListByResource returns entries touching one resource, most recent first.
func (s *PostgresStore) ListByResource(ctx context.Context, resourceType string, resourceID uuid.UUID, limit int) ([]Entry, error) {
	return s.query(ctx, `
		SELECT `+entryColumns+`
		FROM audit_logs
		WHERE resource_type = $1 AND resource_id = $2
		ORDER BY timestamp DESC
		LIMIT $3
	`, resourceType, resourceID, clampLimit(limit))
}

// ListFailures returns failed entries, most recent first.
func (s *PostgresStore) ListFailures(ctx context.Context, limit int) ([]Entry, error) {
	return s.query(ctx, `
		SELECT `+entryColumns+`
		FROM audit_logs
		WHERE success = FALSE
		ORDER BY timestamp DESC
		LIMIT $1
	`, clampLimit(limit))
}

// ListBetween returns entries inside [from, to], oldest first.
func (s *PostgresStore) ListBetween(ctx context.Context, from, to time.Time) ([]Entry, error) {
	return s.query(ctx, `
		SELECT `+entryColumns+`
		FROM audit_logs
		WHERE timestamp >= $1 AND timestamp <= $2
		ORDER BY timestamp ASC
	`, from, to)
}

func (s *PostgresStore) query(ctx context.Context, query string, args ...any) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query audit entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			entry        Entry
			resourceID   *uuid.UUID
			scopeGranted sql.NullString
			requestID    *uuid.UUID
			requestPath  sql.NullString
			requestMeth  sql.NullString
			userAgent    sql.NullString
			ipAddress    sql.NullString
			errorMessage sql.NullString
			statusCode   sql.NullInt64
			contextJSON  []byte
		)
		err := rows.Scan(
			&entry.AuditID,
			&entry.ActorID,
			&entry.ActorRole,
			&entry.ActorUsername,
			&entry.Action,
			&entry.ResourceType,
			&resourceID,
			&scopeGranted,
			&requestID,
			&requestPath,
			&requestMeth,
			&userAgent,
			&ipAddress,
			&entry.Success,
			&errorMessage,
			&statusCode,
			&entry.Timestamp,
			&contextJSON,
		)
		if err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		if resourceID != nil {
			entry.ResourceID = *resourceID
		}
		if requestID != nil {
			entry.RequestID = *requestID
		}
		entry.ScopeGranted = scopeGranted.String
		entry.RequestPath = requestPath.String
		entry.RequestMethod = requestMeth.String
		entry.UserAgent = userAgent.String
		entry.IPAddress = ipAddress.String
		entry.ErrorMessage = errorMessage.String
		entry.StatusCode = int(statusCode.Int64)
		if contextJSON != nil {
			if err := json.Unmarshal(contextJSON, &entry.Context); err != nil {
				return nil, fmt.Errorf("unmarshal audit context: %w", err)
			}
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit entries: %w", err)
	}
	return entries, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return 100
	}
	return limit
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullInt(n int) any {
	if n == 0 {
		return nil
	}
	return n
}

func nullUUID(id uuid.UUID) any {
	if id == uuid.Nil {
		return nil
	}
	return id
}

func nullBytes(b []byte) any {
	if b == nil {
		return nil
	}
	return b
}
