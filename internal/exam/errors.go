package exam

import (
	"errors"
	"fmt"
)

// ErrorKind classifies service failures so callers can map them to a
// transport-level status without matching on messages.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindNotFound
	KindForbidden
	KindBadRequest
	// KindConflict is reserved for optimistic-concurrency failures on answer
	// upserts. Nothing returns it yet.
	KindConflict
)

// Error is a classified service error with a human-readable message.
type Error struct {
	Kind    ErrorKind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// NotFoundError creates a KindNotFound error.
func NotFoundError(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// ForbiddenError creates a KindForbidden error.
func ForbiddenError(format string, args ...any) *Error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

// BadRequestError creates a KindBadRequest error.
func BadRequestError(format string, args ...any) *Error {
	return &Error{Kind: KindBadRequest, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the classification of err, or KindInternal for
// unclassified errors.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func IsNotFound(err error) bool   { return KindOf(err) == KindNotFound }
func IsForbidden(err error) bool  { return KindOf(err) == KindForbidden }
func IsBadRequest(err error) bool { return KindOf(err) == KindBadRequest }
