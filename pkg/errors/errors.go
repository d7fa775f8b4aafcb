// Package errors carries the typed error codes that handlers translate into
// HTTP statuses and response envelopes.
package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/multierr"
)

type Code string

const (
	CodeValidation   Code = "VALIDATION_ERROR"
	CodeMalformed    Code = "MALFORMED_PAYLOAD"
	CodeUnauthorized Code = "UNAUTHORIZED"
	CodeForbidden    Code = "FORBIDDEN"
	CodeNotFound     Code = "NOT_FOUND"
	CodeConflict     Code = "CONFLICT"
	CodeIdempotency  Code = "IDEMPOTENCY_KEY_REUSED"
	CodeInternal     Code = "INTERNAL_ERROR"
	CodeDependency   Code = "DEPENDENCY_ERROR"
)

// Metadata describes how a code surfaces to clients.
type Metadata struct {
	HTTPStatus     int
	Retryable      bool
	PublicMessage  string
	DetailsAllowed bool
}

func meta(status int, public string, retryable, details bool) Metadata {
	return Metadata{HTTPStatus: status, PublicMessage: public, Retryable: retryable, DetailsAllowed: details}
}

var metadataByCode = map[Code]Metadata{
	CodeValidation:   meta(http.StatusBadRequest, "validation failed", false, true),
	CodeMalformed:    meta(http.StatusBadRequest, "malformed payload", false, true),
	CodeUnauthorized: meta(http.StatusUnauthorized, "authentication required", false, false),
	CodeForbidden:    meta(http.StatusForbidden, "access denied", false, false),
	CodeNotFound:     meta(http.StatusNotFound, "resource not found", false, false),
	CodeConflict:     meta(http.StatusConflict, "conflict detected", false, true),
	CodeIdempotency:  meta(http.StatusConflict, "idempotency key reused", false, true),
	CodeInternal:     meta(http.StatusInternalServerError, "internal server error", true, false),
	CodeDependency:   meta(http.StatusServiceUnavailable, "dependency unavailable", true, true),
}

// MetadataFor falls back to the internal-error metadata for unknown codes.
func MetadataFor(code Code) Metadata {
	if m, ok := metadataByCode[code]; ok {
		return m
	}
	return metadataByCode[CodeInternal]
}

// Error is a coded error with an optional cause, client-safe details and,
// for aggregated failures, the individual messages.
type Error struct {
	code     Code
	message  string
	details  any
	messages []string
	cause    error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Newf(code Code, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

func Wrap(code Code, err error, message string) *Error {
	return &Error{code: code, message: message, cause: err}
}

// Aggregate folds a multierr chain into one coded error whose message joins
// every failure with "; ". It returns nil when err is nil.
func Aggregate(code Code, err error) *Error {
	failures := multierr.Errors(err)
	if len(failures) == 0 {
		return nil
	}
	messages := make([]string, len(failures))
	for i, f := range failures {
		messages[i] = f.Error()
	}
	return Wrap(code, err, strings.Join(messages, "; ")).WithMessages(messages)
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Details() any {
	if e == nil {
		return nil
	}
	return e.details
}

func (e *Error) WithDetails(details any) *Error {
	if e != nil {
		e.details = details
	}
	return e
}

// WithMessages attaches the individual failures an aggregated error was built from.
func (e *Error) WithMessages(messages []string) *Error {
	if e != nil {
		e.messages = messages
	}
	return e
}

func (e *Error) Messages() []string {
	if e == nil {
		return nil
	}
	return e.messages
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return string(e.code) + ": " + e.message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// IsCode reports whether err carries the supplied typed code.
func IsCode(err error, code Code) bool {
	typed := As(err)
	return typed != nil && typed.code == code
}

// As returns the outermost *Error in err's chain, or nil.
func As(err error) *Error {
	var typed *Error
	if err != nil && stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}
