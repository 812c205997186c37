package domain

import (
	"errors"
	"net/http"
)

// ErrNoRows is the repository sentinel for lookups that match nothing.
// Services translate it into the NotFound/Conflict failure appropriate
// to the operation; repositories never decide status codes themselves.
var ErrNoRows = errors.New("no rows in result set")

// ErrOpenShiftExists is returned by the attendance repository when the
// storage-level open-shift constraint rejects an insert.
var ErrOpenShiftExists = errors.New("open attendance record already exists")

// ErrDuplicate is returned by repositories on a unique-constraint violation.
var ErrDuplicate = errors.New("duplicate record")

// ErrorCode identifies a failure category in the service taxonomy.
type ErrorCode string

const (
	CodeValidation   ErrorCode = "validation_error"
	CodeUnauthorized ErrorCode = "unauthorized"
	CodeForbidden    ErrorCode = "forbidden"
	CodeNotFound     ErrorCode = "not_found"
	CodeConflict     ErrorCode = "conflict"
	CodeDatabase     ErrorCode = "database_error"
	CodeInternal     ErrorCode = "internal_error"
)

// Error is the typed failure services raise. It carries a human message
// safe for clients and an optional structured payload (for example the
// conflicting attendance record id). The root cause stays server-side.
type Error struct {
	Code    ErrorCode
	Message string
	Payload map[string]any
	cause   error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.cause }

// HTTPStatus maps the failure category to its response status code.
func (e *Error) HTTPStatus() int {
	switch e.Code {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func Validation(message string) *Error {
	return &Error{Code: CodeValidation, Message: message}
}

func Unauthorized(message string) *Error {
	return &Error{Code: CodeUnauthorized, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Code: CodeForbidden, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Code: CodeNotFound, Message: message}
}

func Conflict(message string, payload map[string]any) *Error {
	return &Error{Code: CodeConflict, Message: message, Payload: payload}
}

// Database wraps a lower-layer failure with a generic client-facing
// message. The cause is preserved for server-side logging only.
func Database(message string, cause error) *Error {
	return &Error{Code: CodeDatabase, Message: message, cause: cause}
}

func Internal(message string) *Error {
	return &Error{Code: CodeInternal, Message: message}
}

// AsError unwraps err into a typed *Error if it is one.
func AsError(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
