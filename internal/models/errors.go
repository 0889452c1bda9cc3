package models

import (
	"errors"
	"fmt"
)

// ErrorKind is the stable failure class the engine guarantees to callers.
// The UI layer owns translating kinds into user-facing messages.
type ErrorKind string

const (
	ErrKindValidation        ErrorKind = "validation"
	ErrKindInvalidTransition ErrorKind = "invalid_transition"
	ErrKindConflict          ErrorKind = "conflict"
	ErrKindNotFound          ErrorKind = "not_found"
)

// DomainError carries a stable kind plus a human-readable message. Every
// failure in the verification engine surfaces as one of these; nothing is
// retried internally since each operation is a deliberate admin action.
type DomainError struct {
	Kind    ErrorKind
	Message string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// ErrValidation reports a request rejected before any state change.
func ErrValidation(format string, args ...interface{}) error {
	return &DomainError{Kind: ErrKindValidation, Message: fmt.Sprintf(format, args...)}
}

// ErrInvalidTransition reports an action not legal from the current state.
func ErrInvalidTransition(from ApplicationStatus, action string) error {
	return &DomainError{
		Kind:    ErrKindInvalidTransition,
		Message: fmt.Sprintf("cannot %s an application in state %q", action, from),
	}
}

// ErrConflict reports a stale optimistic-concurrency token; callers should
// re-read and retry.
func ErrConflict(id string) error {
	return &DomainError{Kind: ErrKindConflict, Message: fmt.Sprintf("application %s was modified concurrently", id)}
}

// ErrNotFound reports an unknown entity ID.
func ErrNotFound(entity, id string) error {
	return &DomainError{Kind: ErrKindNotFound, Message: fmt.Sprintf("%s %s not found", entity, id)}
}

// KindOf extracts the error kind, or empty string for non-domain errors.
func KindOf(err error) ErrorKind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// IsKind reports whether err is a domain error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
