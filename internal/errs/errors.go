// Package errs provides the unified error type used across all of gridbase.
//
// The database adapter wraps its native driver errors into *errs.Error before
// returning them to callers. Callers use the Is* predicates to handle errors
// without importing driver-specific packages.
//
// Usage:
//
//	// In the driver — wrap native errors:
//	return errs.Wrap(errs.ErrKindConstraintViolation, "failed to create record", pgErr)
//
//	// In a caller — check error kind:
//	if errs.IsConstraintViolation(err) {
//	    // report to the user, don't retry
//	}
package errs

import (
	"errors"
	"fmt"
)

// ErrKind categorises an error without exposing engine-specific codes.
// The adapter maps every native error to exactly one of these kinds,
// giving callers a single consistent API.
type ErrKind int

const (
	ErrKindUnknown             ErrKind = iota
	ErrKindNotConnected                // operation attempted without an active connection
	ErrKindConnectionFailed            // cannot reach or authenticate to the engine
	ErrKindTimeout                     // context deadline / cancellation
	ErrKindQueryFailed                 // SQL syntax or runtime execution error
	ErrKindInvalidInput                // bad arguments from the caller (empty record, unknown operator, …)
	ErrKindConstraintViolation         // unique / check / foreign-key / not-null violation
	ErrKindNotFound                    // no rows matched
	ErrKindUnmapped                    // native type or action missing from the static mapping tables
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindNotConnected:
		return "not_connected"
	case ErrKindConnectionFailed:
		return "connection_failed"
	case ErrKindTimeout:
		return "timeout"
	case ErrKindQueryFailed:
		return "query_failed"
	case ErrKindInvalidInput:
		return "invalid_input"
	case ErrKindConstraintViolation:
		return "constraint_violation"
	case ErrKindNotFound:
		return "not_found"
	case ErrKindUnmapped:
		return "unmapped"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by all gridbase subsystems.
// The driver produces it; callers inspect it via the Is* predicates below.
type Error struct {
	Kind    ErrKind
	Message string
	Cause   error // original driver-level error, preserved for diagnostics
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap allows errors.Is / errors.As to traverse the cause chain.
func (e *Error) Unwrap() error {
	return e.Cause
}

// --- Constructors ---

// New creates an *Error with the given kind and message and no cause.
func New(kind ErrKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Newf creates an *Error with a formatted message and no cause.
func Newf(kind ErrKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an *Error with the given kind, message, and an underlying cause.
func Wrap(kind ErrKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

// --- Predicates ---

// IsNotConnected reports whether err was caused by calling an operation
// before connecting (or after disconnecting).
func IsNotConnected(err error) bool {
	return kindOf(err) == ErrKindNotConnected
}

// IsConnectionFailed reports whether err is a connectivity or auth failure.
func IsConnectionFailed(err error) bool {
	return kindOf(err) == ErrKindConnectionFailed
}

// IsTimeout reports whether err was caused by a deadline or context cancellation.
func IsTimeout(err error) bool {
	return kindOf(err) == ErrKindTimeout
}

// IsQueryFailed reports whether err is a SQL execution error.
func IsQueryFailed(err error) bool {
	return kindOf(err) == ErrKindQueryFailed
}

// IsInvalidInput reports whether err was caused by bad input from the caller.
func IsInvalidInput(err error) bool {
	return kindOf(err) == ErrKindInvalidInput
}

// IsConstraintViolation reports whether err is an engine-reported constraint
// failure (unique, check, foreign key, not-null).
func IsConstraintViolation(err error) bool {
	return kindOf(err) == ErrKindConstraintViolation
}

// IsNotFound reports whether err represents a "no rows" result.
func IsNotFound(err error) bool {
	return kindOf(err) == ErrKindNotFound
}

// IsUnmapped reports whether err came from the defensive fallback for a
// native type or action missing from the static mapping tables.
func IsUnmapped(err error) bool {
	return kindOf(err) == ErrKindUnmapped
}

// kindOf extracts the ErrKind from any error in the chain.
func kindOf(err error) ErrKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ErrKindUnknown
}
