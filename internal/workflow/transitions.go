package workflow

import "entryledger/internal/domain"

// Transition is one legal edge in the data entry lifecycle.
type Transition struct {
	From         domain.EntryState
	To           domain.EntryState
	EventType    string
	RequiredRole string
}

type transitionKey struct {
	from      domain.EntryState
	eventType string
}

// transitions is the full legal edge set. Any (state, event type) pair absent
// from this table is an illegal transition; both the legality check and the
// role check are pure lookups against it.
var transitions = map[transitionKey]Transition{
	{domain.StateDraft, domain.EventDataSubmitted}: {
		From: domain.StateDraft, To: domain.StateSubmitted,
		EventType: domain.EventDataSubmitted, RequiredRole: domain.RoleOperator,
	},
	{domain.StateSubmitted, domain.EventDataConfirmed}: {
		From: domain.StateSubmitted, To: domain.StateConfirmed,
		EventType: domain.EventDataConfirmed, RequiredRole: domain.RoleSupervisor,
	},
	{domain.StateSubmitted, domain.EventDataRejected}: {
		From: domain.StateSubmitted, To: domain.StateRejected,
		EventType: domain.EventDataRejected, RequiredRole: domain.RoleSupervisor,
	},
	{domain.StateSubmitted, domain.EventDataCancelled}: {
		From: domain.StateSubmitted, To: domain.StateCancelled,
		EventType: domain.EventDataCancelled, RequiredRole: domain.RoleOperator,
	},
	{domain.StateConfirmed, domain.EventDataCorrected}: {
		From: domain.StateConfirmed, To: domain.StateCorrected,
		EventType: domain.EventDataCorrected, RequiredRole: domain.RoleSupervisor,
	},
	{domain.StateRejected, domain.EventDataCorrected}: {
		From: domain.StateRejected, To: domain.StateCorrected,
		EventType: domain.EventDataCorrected, RequiredRole: domain.RoleSupervisor,
	},
	{domain.StateRejected, domain.EventDataCancelled}: {
		From: domain.StateRejected, To: domain.StateCancelled,
		EventType: domain.EventDataCancelled, RequiredRole: domain.RoleOperator,
	},
	{domain.StateCorrected, domain.EventDataSubmitted}: {
		From: domain.StateCorrected, To: domain.StateSubmitted,
		EventType: domain.EventDataSubmitted, RequiredRole: domain.RoleSupervisor,
	},
	{domain.StateCorrected, domain.EventDataConfirmed}: {
		From: domain.StateCorrected, To: domain.StateConfirmed,
		EventType: domain.EventDataConfirmed, RequiredRole: domain.RoleSupervisor,
	},
}

// LookupTransition returns the transition for (from, eventType), if legal.
func LookupTransition(from domain.EntryState, eventType string) (Transition, bool) {
	t, ok := transitions[transitionKey{from: from, eventType: eventType}]
	return t, ok
}

// validateTransition resolves the edge and checks the actor's role against
// it. Admin satisfies every role requirement.
func validateTransition(from domain.EntryState, eventType string, actor domain.Actor) (Transition, error) {
	t, ok := LookupTransition(from, eventType)
	if !ok {
		return Transition{}, domain.Ef(domain.KindInvalidTransition,
			"cannot apply %s to entry in state %q", eventType, from)
	}
	if actor.Role != t.RequiredRole && actor.Role != domain.RoleAdmin {
		return Transition{}, domain.Ef(domain.KindUnauthorizedRole,
			"role %q not allowed to apply %s, required role %q", actor.Role, eventType, t.RequiredRole)
	}
	return t, nil
}
