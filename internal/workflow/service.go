package workflow

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"entryledger/internal/domain"
	"entryledger/internal/eventstore"
	"entryledger/internal/platform/metrics"
)

// Projector receives every event the workflow appends so a read model can
// stay warm. It is a cache concern only; a projector failure never fails the
// workflow operation.
type Projector interface {
	Apply(ctx context.Context, event domain.Event) error
}

// Result reports a successful workflow operation.
type Result struct {
	EventID   uuid.UUID
	EntityID  uuid.UUID
	EventType string
	Timestamp time.Time
}

// CreateRequest creates a new data entry in draft state.
type CreateRequest struct {
	Data      domain.Payload
	EntryType string
	Actor     domain.Actor
	Context   map[string]any
}

// UpdateRequest replaces an entry's data before it is reviewed.
type UpdateRequest struct {
	EntryID uuid.UUID
	Data    domain.Payload
	Actor   domain.Actor
	Context map[string]any
}

// SubmitRequest submits a draft or corrected entry for review.
type SubmitRequest struct {
	EntryID uuid.UUID
	Actor   domain.Actor
	Context map[string]any
}

// ConfirmRequest confirms a submitted entry.
type ConfirmRequest struct {
	EntryID uuid.UUID
	Note    string
	Actor   domain.Actor
	Context map[string]any
}

// RejectRequest rejects a submitted entry. Reason is required.
type RejectRequest struct {
	EntryID uuid.UUID
	Reason  string
	Actor   domain.Actor
	Context map[string]any
}

// CorrectRequest amends a confirmed or rejected entry without mutating
// history: the pre-correction payload is snapshotted into the new event.
type CorrectRequest struct {
	EntryID         uuid.UUID
	CorrectedData   domain.Payload
	FieldsCorrected []string
	Note            string
	Actor           domain.Actor
	Context         map[string]any
}

// CancelRequest cancels a submitted or rejected entry.
type CancelRequest struct {
	EntryID uuid.UUID
	Reason  string
	Actor   domain.Actor
	Context map[string]any
}

// Service validates and executes lifecycle transitions against the transition
// table and appends the resulting events. Fold+append is serialized per
// entity so concurrent transitions on the same entry cannot race.
type Service struct {
	store     eventstore.Store
	projector Projector
	logger    *slog.Logger
	metrics   *metrics.Metrics
	locks     *entityLocks
}

// NewService wires a workflow service. projector and m may be nil.
func NewService(store eventstore.Store, projector Projector, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		store:     store,
		projector: projector,
		logger:    logger,
		metrics:   m,
		locks:     newEntityLocks(),
	}
}

// CreateEntry writes the initial data.created event for a fresh entity id.
func (s *Service) CreateEntry(ctx context.Context, req CreateRequest) (Result, error) {
	if req.Data == nil {
		return Result{}, domain.E(domain.KindValidation, "data is required")
	}
	if req.EntryType == "" {
		return Result{}, domain.E(domain.KindValidation, "entry_type is required")
	}

	entryID := uuid.New()
	event := domain.Event{
		EntityID:   entryID,
		EntityType: domain.EntityTypeDataEntry,
		EventType:  domain.EventDataCreated,
		Payload: domain.Payload{
			"data":       map[string]any(req.Data),
			"entry_type": req.EntryType,
			"state":      string(domain.StateDraft),
			"created_by": req.Actor.ID.String(),
		},
		ActorID:       req.Actor.ID,
		ActorRole:     req.Actor.Role,
		ActorUsername: req.Actor.Username,
		CorrelationID: uuid.New(),
		Context:       req.Context,
	}
	return s.append(ctx, event)
}

// UpdateEntry replaces the entry's data in place while it is still editable
// (draft or rejected). The state does not change: data.updated is a payload
// revision, not a lifecycle transition.
func (s *Service) UpdateEntry(ctx context.Context, req UpdateRequest) (Result, error) {
	if req.Data == nil {
		return Result{}, domain.E(domain.KindValidation, "data is required")
	}

	release := s.locks.acquire(req.EntryID)
	defer release()

	current, err := s.fold(ctx, req.EntryID)
	if err != nil {
		return Result{}, err
	}
	if current.State != domain.StateDraft && current.State != domain.StateRejected {
		err := domain.Ef(domain.KindInvalidTransition,
			"cannot update entry in state %q, only draft or rejected entries are editable", current.State)
		s.metrics.ObserveRejection(string(domain.KindOf(err)))
		return Result{}, err
	}
	if req.Actor.Role != domain.RoleOperator && req.Actor.Role != domain.RoleAdmin {
		err := domain.Ef(domain.KindUnauthorizedRole,
			"role %q cannot update entries", req.Actor.Role)
		s.metrics.ObserveRejection(string(domain.KindOf(err)))
		return Result{}, err
	}

	return s.append(ctx, s.transitionEvent(req.EntryID, domain.EventDataUpdated, domain.Payload{
		"data":       map[string]any(req.Data),
		"updated_by": req.Actor.Username,
	}, req.Actor, req.Context))
}

// SubmitEntry moves an entry into the submitted state.
func (s *Service) SubmitEntry(ctx context.Context, req SubmitRequest) (Result, error) {
	release := s.locks.acquire(req.EntryID)
	defer release()

	current, err := s.fold(ctx, req.EntryID)
	if err != nil {
		return Result{}, err
	}
	if _, err := s.checkTransition(current.State, domain.EventDataSubmitted, req.Actor); err != nil {
		return Result{}, err
	}

	return s.append(ctx, s.transitionEvent(req.EntryID, domain.EventDataSubmitted, domain.Payload{
		"state":        string(domain.StateSubmitted),
		"submitted_by": req.Actor.Username,
	}, req.Actor, req.Context))
}

// ConfirmEntry confirms a submitted entry.
func (s *Service) ConfirmEntry(ctx context.Context, req ConfirmRequest) (Result, error) {
	release := s.locks.acquire(req.EntryID)
	defer release()

	current, err := s.fold(ctx, req.EntryID)
	if err != nil {
		return Result{}, err
	}
	if _, err := s.checkTransition(current.State, domain.EventDataConfirmed, req.Actor); err != nil {
		return Result{}, err
	}

	payload := domain.Payload{
		"state":        string(domain.StateConfirmed),
		"confirmed_by": req.Actor.Username,
	}
	if req.Note != "" {
		payload["confirmation_note"] = req.Note
	}
	return s.append(ctx, s.transitionEvent(req.EntryID, domain.EventDataConfirmed, payload, req.Actor, req.Context))
}

// RejectEntry rejects a submitted entry with a mandatory reason.
func (s *Service) RejectEntry(ctx context.Context, req RejectRequest) (Result, error) {
	if strings.TrimSpace(req.Reason) == "" {
		return Result{}, domain.E(domain.KindValidation, "rejection_reason is required")
	}

	release := s.locks.acquire(req.EntryID)
	defer release()

	current, err := s.fold(ctx, req.EntryID)
	if err != nil {
		return Result{}, err
	}
	if _, err := s.checkTransition(current.State, domain.EventDataRejected, req.Actor); err != nil {
		return Result{}, err
	}

	return s.append(ctx, s.transitionEvent(req.EntryID, domain.EventDataRejected, domain.Payload{
		"state":            string(domain.StateRejected),
		"rejected_by":      req.Actor.Username,
		"rejection_reason": req.Reason,
	}, req.Actor, req.Context))
}

// CorrectEntry appends a correction event that embeds both the corrected
// fields and the full pre-correction payload under previous_data, so the
// prior state stays permanently recoverable without touching older events.
func (s *Service) CorrectEntry(ctx context.Context, req CorrectRequest) (Result, error) {
	if req.CorrectedData == nil {
		return Result{}, domain.E(domain.KindValidation, "corrected_data is required")
	}
	if strings.TrimSpace(req.Note) == "" {
		return Result{}, domain.E(domain.KindValidation, "correction_note is required")
	}

	release := s.locks.acquire(req.EntryID)
	defer release()

	current, err := s.fold(ctx, req.EntryID)
	if err != nil {
		return Result{}, err
	}
	if _, err := s.checkTransition(current.State, domain.EventDataCorrected, req.Actor); err != nil {
		return Result{}, err
	}

	event := s.transitionEvent(req.EntryID, domain.EventDataCorrected, domain.Payload{
		"state":            string(domain.StateCorrected),
		"corrected_data":   map[string]any(req.CorrectedData),
		"fields_corrected": req.FieldsCorrected,
		"correction_note":  req.Note,
		"corrected_by":     req.Actor.Username,
		"previous_data":    map[string]any(current.Payload),
	}, req.Actor, req.Context)
	event.PreviousPayload = current.Payload
	return s.append(ctx, event)
}

// CancelEntry cancels a submitted or rejected entry. Cancelled is terminal.
func (s *Service) CancelEntry(ctx context.Context, req CancelRequest) (Result, error) {
	release := s.locks.acquire(req.EntryID)
	defer release()

	current, err := s.fold(ctx, req.EntryID)
	if err != nil {
		return Result{}, err
	}
	if _, err := s.checkTransition(current.State, domain.EventDataCancelled, req.Actor); err != nil {
		return Result{}, err
	}

	payload := domain.Payload{
		"state":        string(domain.StateCancelled),
		"cancelled_by": req.Actor.Username,
	}
	if req.Reason != "" {
		payload["cancellation_reason"] = req.Reason
	}
	return s.append(ctx, s.transitionEvent(req.EntryID, domain.EventDataCancelled, payload, req.Actor, req.Context))
}

// CurrentState folds and returns the entry's derived state.
func (s *Service) CurrentState(ctx context.Context, entryID uuid.UUID) (eventstore.CurrentState, error) {
	return s.fold(ctx, entryID)
}

// History returns the entry's event stream in ascending timestamp order.
func (s *Service) History(ctx context.Context, entryID uuid.UUID, limit int) ([]domain.Event, error) {
	events, err := s.store.ListForEntity(ctx, entryID, domain.EntityTypeDataEntry, limit)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, domain.Ef(domain.KindNotFound, "entity not found: %s", entryID)
	}
	return events, nil
}

func (s *Service) fold(ctx context.Context, entryID uuid.UUID) (eventstore.CurrentState, error) {
	return eventstore.FoldCurrentState(ctx, s.store, entryID, domain.EntityTypeDataEntry)
}

func (s *Service) checkTransition(from domain.EntryState, eventType string, actor domain.Actor) (Transition, error) {
	t, err := validateTransition(from, eventType, actor)
	if err != nil {
		s.metrics.ObserveRejection(string(domain.KindOf(err)))
		return Transition{}, err
	}
	return t, nil
}

func (s *Service) transitionEvent(entryID uuid.UUID, eventType string, payload domain.Payload, actor domain.Actor, reqContext map[string]any) domain.Event {
	return domain.Event{
		EntityID:      entryID,
		EntityType:    domain.EntityTypeDataEntry,
		EventType:     eventType,
		Payload:       payload,
		ActorID:       actor.ID,
		ActorRole:     actor.Role,
		ActorUsername: actor.Username,
		CorrelationID: uuid.New(),
		Context:       reqContext,
	}
}

func (s *Service) append(ctx context.Context, event domain.Event) (Result, error) {
	eventID, err := s.store.Append(ctx, event)
	if err != nil {
		s.logger.ErrorContext(ctx, "event append failed",
			"event_type", event.EventType,
			"entity_id", event.EntityID,
			"error", err,
		)
		return Result{}, err
	}
	s.metrics.ObserveAppend(event.EventType)

	stored, err := s.store.GetByID(ctx, eventID)
	if err != nil {
		// The append committed; fall back to the request view of the event.
		stored = event
		stored.EventID = eventID
	}

	if s.projector != nil {
		if err := s.projector.Apply(ctx, stored); err != nil {
			s.logger.WarnContext(ctx, "projection apply failed, read model is stale",
				"event_id", eventID,
				"error", err,
			)
		}
	}

	s.logger.InfoContext(ctx, "event written",
		"event_id", eventID,
		"event_type", stored.EventType,
		"entity_id", stored.EntityID,
		"actor", stored.ActorUsername,
	)
	return Result{
		EventID:   eventID,
		EntityID:  stored.EntityID,
		EventType: stored.EventType,
		Timestamp: stored.Timestamp,
	}, nil
}
