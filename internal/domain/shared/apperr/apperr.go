package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an engine error so transports can map it without parsing
// message text.
type Kind string

const (
	KindValidation   Kind = "VALIDATION"
	KindNotFound     Kind = "NOT_FOUND"
	KindConflict     Kind = "CONFLICT"
	KindBusinessRule Kind = "BUSINESS_RULE"
)

// Error is plain data: kind, human-readable message and structured detail.
type Error struct {
	Kind    Kind
	Message string
	Detail  map[string]any
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func Conflict(msg string, detail map[string]any) *Error {
	return &Error{Kind: KindConflict, Message: msg, Detail: detail}
}

func BusinessRule(msg string) *Error {
	return &Error{Kind: KindBusinessRule, Message: msg}
}

// WithDetail attaches a detail entry, allocating the map lazily.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Detail == nil {
		e.Detail = make(map[string]any, 1)
	}
	e.Detail[key] = value
	return e
}

// KindOf extracts the kind from an error chain; empty when the error is not
// an engine error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
