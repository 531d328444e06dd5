package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Topic is the Kafka topic audit entries fan out to.
const Topic = "audit.entries"

// wirePayload is the JSON structure produced to Kafka. Field names are part
// of the integration contract with downstream consumers.
type wirePayload struct {
	AuditID       string         `json:"audit_id"`
	ActorID       string         `json:"actor_id"`
	ActorRole     string         `json:"actor_role"`
	ActorUsername string         `json:"actor_username"`
	Action        string         `json:"action"`
	ResourceType  string         `json:"resource_type"`
	ResourceID    string         `json:"resource_id,omitempty"`
	ScopeGranted  string         `json:"scope_granted,omitempty"`
	RequestID     string         `json:"request_id,omitempty"`
	RequestPath   string         `json:"request_path,omitempty"`
	RequestMethod string         `json:"request_method,omitempty"`
	UserAgent     string         `json:"user_agent,omitempty"`
	IPAddress     string         `json:"ip_address,omitempty"`
	Success       bool           `json:"success"`
	ErrorMessage  string         `json:"error_message,omitempty"`
	StatusCode    int            `json:"status_code,omitempty"`
	Timestamp     string         `json:"timestamp"`
	Context       map[string]any `json:"context,omitempty"`
}

// RecordProducer is the transport the publisher writes through.
type RecordProducer interface {
	Produce(ctx context.Context, topic string, key, value []byte) error
}

// KafkaPublisher fans audit entries out to the audit topic, keyed by audit
// id so the materializer can dedupe.
type KafkaPublisher struct {
	producer RecordProducer
}

// NewKafkaPublisher creates a Kafka-backed audit publisher.
func NewKafkaPublisher(producer RecordProducer) *KafkaPublisher {
	return &KafkaPublisher{producer: producer}
}

// Publish produces one entry as JSON.
func (p *KafkaPublisher) Publish(ctx context.Context, entry Entry) error {
	value, err := json.Marshal(toWire(entry))
	if err != nil {
		return fmt.Errorf("marshal audit payload: %w", err)
	}
	return p.producer.Produce(ctx, Topic, []byte(entry.AuditID.String()), value)
}

func toWire(entry Entry) wirePayload {
	w := wirePayload{
		AuditID:       entry.AuditID.String(),
		ActorID:       entry.ActorID.String(),
		ActorRole:     entry.ActorRole,
		ActorUsername: entry.ActorUsername,
		Action:        entry.Action,
		ResourceType:  entry.ResourceType,
		ScopeGranted:  entry.ScopeGranted,
		RequestPath:   entry.RequestPath,
		RequestMethod: entry.RequestMethod,
		UserAgent:     entry.UserAgent,
		IPAddress:     entry.IPAddress,
		Success:       entry.Success,
		ErrorMessage:  entry.ErrorMessage,
		StatusCode:    entry.StatusCode,
		Timestamp:     entry.Timestamp.Format(time.RFC3339Nano),
		Context:       entry.Context,
	}
	if entry.ResourceID != uuid.Nil {
		w.ResourceID = entry.ResourceID.String()
	}
	if entry.RequestID != uuid.Nil {
		w.RequestID = entry.RequestID.String()
	}
	return w
}

func fromWire(w wirePayload) (Entry, error) {
	auditID, err := uuid.Parse(w.AuditID)
	if err != nil {
		return Entry{}, fmt.Errorf("parse audit_id: %w", err)
	}
	actorID, err := uuid.Parse(w.ActorID)
	if err != nil {
		return Entry{}, fmt.Errorf("parse actor_id: %w", err)
	}
	timestamp, err := time.Parse(time.RFC3339Nano, w.Timestamp)
	if err != nil {
		return Entry{}, fmt.Errorf("parse timestamp: %w", err)
	}

	entry := Entry{
		AuditID:       auditID,
		ActorID:       actorID,
		ActorRole:     w.ActorRole,
		ActorUsername: w.ActorUsername,
		Action:        w.Action,
		ResourceType:  w.ResourceType,
		ScopeGranted:  w.ScopeGranted,
		RequestPath:   w.RequestPath,
		RequestMethod: w.RequestMethod,
		UserAgent:     w.UserAgent,
		IPAddress:     w.IPAddress,
		Success:       w.Success,
		ErrorMessage:  w.ErrorMessage,
		StatusCode:    w.StatusCode,
		Timestamp:     timestamp,
		Context:       w.Context,
	}
	if w.ResourceID != "" {
		if entry.ResourceID, err = uuid.Parse(w.ResourceID); err != nil {
			return Entry{}, fmt.Errorf("parse resource_id: %w", err)
		}
	}
	if w.RequestID != "" {
		if entry.RequestID, err = uuid.Parse(w.RequestID); err != nil {
			return Entry{}, fmt.Errorf("parse request_id: %w", err)
		}
	}
	return entry, nil
}
