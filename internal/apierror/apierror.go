// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

import (
	"errors"
	"net/http"
)

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// FieldErrors wraps multiple field-level validation errors.
type FieldErrors struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewFieldErrors(fields map[string]string) *FieldErrors {
	return &FieldErrors{Detail: "Validation error", Fields: fields}
}

// Kind classifies the recoverable error families of the cash register core.
type Kind int

const (
	KindValidation   Kind = iota + 1 // bad input: negative amount, missing reason, missing note on discrepancy
	KindConflict                     // open attempted while a session is already open for the register
	KindInvalidState                 // ledger append or close against a non-open session
	KindNotFound                     // unknown session / register / report id
)

// Error is a typed, recoverable service error. Handlers map the Kind to an
// HTTP status with Status; Detail is safe to return to clients.
type Error struct {
	Kind   Kind
	Detail string
	Fields map[string]string
}

func (e *Error) Error() string { return e.Detail }

func Validation(detail string) *Error {
	return &Error{Kind: KindValidation, Detail: detail}
}

func ValidationField(field, problem string) *Error {
	return &Error{
		Kind:   KindValidation,
		Detail: "Validation error",
		Fields: map[string]string{field: problem},
	}
}

func Conflict(detail string) *Error {
	return &Error{Kind: KindConflict, Detail: detail}
}

func InvalidState(detail string) *Error {
	return &Error{Kind: KindInvalidState, Detail: detail}
}

func NotFound(detail string) *Error {
	return &Error{Kind: KindNotFound, Detail: detail}
}

// Status maps an error to its HTTP status code. Untyped errors are treated as
// internal: the storage layer failed and the caller is expected to retry.
func Status(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}
	switch e.Kind {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindConflict:
		return http.StatusConflict
	case KindInvalidState:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}
