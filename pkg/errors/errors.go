package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
)

// Code is the machine-readable value of the error envelope's "code" field.
type Code string

const (
	CodeValidation   Code = "VALIDATION_ERROR"
	CodeUnauthorized Code = "UNAUTHORIZED"
	CodeForbidden    Code = "FORBIDDEN"
	CodeNotFound     Code = "NOT_FOUND"
	CodeConflict     Code = "CONFLICT"
	CodeIdempotency  Code = "IDEMPOTENCY_KEY_REUSED"
	CodeRateLimit    Code = "RATE_LIMIT_EXCEEDED"
	CodeInternal     Code = "INTERNAL_ERROR"
	CodeDependency   Code = "DEPENDENCY_ERROR"
)

// Metadata describes how a code is surfaced over HTTP.
type Metadata struct {
	HTTPStatus int
	// PublicMessage is sent when the error's own message must stay server side.
	PublicMessage  string
	ExposeMessage  bool
	DetailsAllowed bool
}

const (
	exposeMsg = 1 << iota
	allowDetails
)

func meta(status int, public string, flags int) Metadata {
	return Metadata{
		HTTPStatus:     status,
		PublicMessage:  public,
		ExposeMessage:  flags&exposeMsg != 0,
		DetailsAllowed: flags&allowDetails != 0,
	}
}

// Server-side failures never echo their message; the cause is logged instead.
var metadataByCode = map[Code]Metadata{
	CodeValidation:   meta(http.StatusBadRequest, "Invalid request", exposeMsg|allowDetails),
	CodeUnauthorized: meta(http.StatusUnauthorized, "Unauthorized", exposeMsg),
	CodeForbidden:    meta(http.StatusForbidden, "Not authorized", exposeMsg),
	CodeNotFound:     meta(http.StatusNotFound, "Not found", exposeMsg),
	CodeConflict:     meta(http.StatusConflict, "Conflict", exposeMsg),
	CodeIdempotency:  meta(http.StatusConflict, "Idempotency key reused", exposeMsg|allowDetails),
	CodeRateLimit:    meta(http.StatusTooManyRequests, "Too many requests", exposeMsg),
	CodeInternal:     meta(http.StatusInternalServerError, "Internal server error", 0),
	CodeDependency:   meta(http.StatusServiceUnavailable, "Service temporarily unavailable", allowDetails),
}

// MetadataFor falls back to CodeInternal for unknown codes.
func MetadataFor(code Code) Metadata {
	if m, ok := metadataByCode[code]; ok {
		return m
	}
	return metadataByCode[CodeInternal]
}

// Error is a coded failure that controllers render without inspecting it.
type Error struct {
	code    Code
	message string
	details any
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Newf(code Code, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap attaches cause so logs keep the full chain. A nil cause behaves like New.
func Wrap(code Code, cause error, message string) *Error {
	return &Error{code: code, message: message, cause: cause}
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

// WithDetails sets the envelope's details; only codes that allow them render it.
func (e *Error) WithDetails(details any) *Error {
	if e != nil {
		e.details = details
	}
	return e
}

func (e *Error) Error() string {
	switch {
	case e == nil:
		return ""
	case e.cause == nil:
		return string(e.code) + ": " + e.message
	default:
		return fmt.Sprintf("%s: %s: %v", e.code, e.message, e.cause)
	}
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// As returns the outermost *Error in err's chain, or nil.
func As(err error) *Error {
	var typed *Error
	if err != nil && stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}

func HasCode(err error, code Code) bool {
	typed := As(err)
	return typed != nil && typed.code == code
}
