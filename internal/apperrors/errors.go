// Package apperrors defines the error taxonomy shared by the identity core.
// Components classify failures; mapping a kind to a transport status is the
// API layer's job.
package apperrors

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnknown Kind = iota
	// Unauthorized covers bad credentials, bad/expired/stale tokens and
	// locked accounts. Security-sensitive paths collapse their internal
	// causes into this single kind.
	Unauthorized
	// PermissionDenied means authenticated but not entitled.
	PermissionDenied
	NotFound
	Conflict
	ValidationFailed
	// StoreUnavailable marks persistence failures. It is the only kind a
	// caller may retry.
	StoreUnavailable
)

func (k Kind) String() string {
	switch k {
	case Unauthorized:
		return "unauthorized"
	case PermissionDenied:
		return "permission_denied"
	case NotFound:
		return "not_found"
	case Conflict:
		return "conflict"
	case ValidationFailed:
		return "validation_failed"
	case StoreUnavailable:
		return "store_unavailable"
	default:
		return "unknown"
	}
}

// Error is a taxonomy-tagged error value. The wrapped cause is kept for
// internal logs; callers branch on Kind only.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// Is makes errors.Is match on kind, so sentinel-style comparisons like
// errors.Is(err, apperrors.E(apperrors.NotFound, "")) are not needed;
// use KindOf instead. Two *Error values match when their kinds match.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

// E builds a new taxonomy error.
func E(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap attaches a cause to a taxonomy error.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf extracts the kind from an error chain, KindUnknown if untagged.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
