package domain

import (
	"errors"
	"fmt"
)

// Kind classifies core errors so callers can branch on a stable,
// machine-readable code instead of matching reason strings.
type Kind string

const (
	// KindValidation covers malformed input: bad event-type format, missing
	// required fields, invalid scope strings.
	KindValidation Kind = "validation_error"

	// KindNotFound means the operation targeted an entity with zero events.
	KindNotFound Kind = "entity_not_found"

	// KindInvalidTransition means the requested event type is not a legal
	// transition from the entity's current state.
	KindInvalidTransition Kind = "invalid_transition"

	// KindUnauthorizedRole means the actor's role does not satisfy the
	// transition's required role.
	KindUnauthorizedRole Kind = "unauthorized_role"

	// KindAccessDenied comes from the policy engine, before any
	// workflow-specific role check.
	KindAccessDenied Kind = "access_denied"

	// KindUnknownRole means the policy engine was asked to evaluate a role
	// it has no configuration for.
	KindUnknownRole Kind = "unknown_role"

	// KindEventWrite means the storage layer failed to durably persist an
	// event. The whole operation may be retried.
	KindEventWrite Kind = "event_write_error"

	// KindInternal is the fallback for unexpected failures.
	KindInternal Kind = "internal_error"
)

// Error is the core error type. Reason strings are written to be safe to
// surface across the service boundary as-is: no storage details, no stacks.
type Error struct {
	Kind   Kind
	Reason string
	cause  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

func (e *Error) Unwrap() error { return e.cause }

// E builds a typed error with a caller-facing reason.
func E(kind Kind, reason string) *Error {
	return &Error{Kind: kind, Reason: reason}
}

// Ef builds a typed error with a formatted reason.
func Ef(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

// Wrap keeps the underlying cause for logs while exposing only the given
// reason to callers.
func Wrap(kind Kind, reason string, cause error) *Error {
	return &Error{Kind: kind, Reason: reason, cause: cause}
}

// KindOf extracts the Kind from err, or KindInternal when err is not a core
// error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
