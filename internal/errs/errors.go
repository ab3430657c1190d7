// Package errs provides the unified error type used across all of Nebula.
//
// Every subsystem (database drivers, bridge, config store, …) wraps its
// native errors into *errs.Error before returning them to callers. Callers
// use the Is* predicates to handle errors without importing driver-specific
// packages.
//
// Usage:
//
//	// In a driver — wrap native errors:
//	return errs.Wrap(errs.ErrKindQueryFailed, "query failed", mysqlErr)
//
//	// In a caller — check error kind:
//	if errs.IsUnsupportedType(err) {
//	    showComingSoonBanner()
//	}
package errs

import (
	"errors"
	"fmt"
)

// ErrKind categorises an error without exposing backend-specific codes.
// All backends (MySQL, PostgreSQL, SQLite, …) map their native errors to
// one of these kinds, giving callers a single consistent API.
type ErrKind int

const (
	ErrKindUnknown              ErrKind = iota
	ErrKindConnectionFailed             // unreachable host, refused auth at connect, pool exhaustion
	ErrKindQueryFailed                  // malformed SQL, backend-side execution error
	ErrKindAuthenticationFailed         // credentials rejected after connect
	ErrKindDatabaseNotFound             // unknown database / schema
	ErrKindTimeout                      // context deadline / cancellation
	ErrKindUnsupportedType              // backend tag recognized but not implemented
	ErrKindInternal                     // invariant violation inside this core
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindConnectionFailed:
		return "connection_failed"
	case ErrKindQueryFailed:
		return "query_failed"
	case ErrKindAuthenticationFailed:
		return "authentication_failed"
	case ErrKindDatabaseNotFound:
		return "database_not_found"
	case ErrKindTimeout:
		return "timeout"
	case ErrKindUnsupportedType:
		return "unsupported_type"
	case ErrKindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by all Nebula subsystems.
// Drivers produce it; callers inspect it via the Is* predicates below.
type Error struct {
	Kind    ErrKind
	Message string
	Cause   error // original driver-level error, preserved for logging
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

// Wrap creates an *Error with the given kind, message, and an underlying cause.
func Wrap(kind ErrKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

// --- Predicates ---

// IsConnectionFailed reports whether err is a connectivity failure
// (unreachable host, refused auth at connect time, pool exhaustion).
func IsConnectionFailed(err error) bool {
	return KindOf(err) == ErrKindConnectionFailed
}

// IsQueryFailed reports whether err is a backend execution failure
// (SQL syntax error, unknown column, …).
func IsQueryFailed(err error) bool {
	return KindOf(err) == ErrKindQueryFailed
}

// IsAuthenticationFailed reports whether err is a credential rejection.
func IsAuthenticationFailed(err error) bool {
	return KindOf(err) == ErrKindAuthenticationFailed
}

// IsDatabaseNotFound reports whether err names a database that does not exist.
func IsDatabaseNotFound(err error) bool {
	return KindOf(err) == ErrKindDatabaseNotFound
}

// IsTimeout reports whether err was caused by a deadline or context cancellation.
func IsTimeout(err error) bool {
	return KindOf(err) == ErrKindTimeout
}

// IsUnsupportedType reports whether err marks a backend that is recognized
// but has no driver implementation yet.
func IsUnsupportedType(err error) bool {
	return KindOf(err) == ErrKindUnsupportedType
}

// IsInternal reports whether err is an invariant violation inside this core.
func IsInternal(err error) bool {
	return KindOf(err) == ErrKindInternal
}

// KindOf extracts the ErrKind from any error in the chain.
func KindOf(err error) ErrKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ErrKindUnknown
}
