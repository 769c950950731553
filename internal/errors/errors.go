// Package errors provides the catalog's error taxonomy as coded domain errors.
//
// Usage:
//
//	// In the store - classify engine failures at the boundary
//	if isForeignKeyViolation(err) {
//	    return errors.ReferentialIntegrity("author_id does not name an existing author").WithCause(err)
//	}
//
//	// In services - match by code with errors.Is
//	if errors.Is(err, errors.ErrNotFound) {
//	    ...
//	}
//
//	// In handlers - render with the mapped status
//	var domainErr *errors.Error
//	if errors.As(err, &domainErr) {
//	    status := domainErr.HTTPStatus()
//	}
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Re-export standard library functions for convenience.
var (
	Is  = errors.Is
	As  = errors.As
	New = errors.New
)

// Code represents a machine-readable error code.
type Code string

// Error codes, one per failure class of the catalog.
const (
	CodeValidation           Code = "VALIDATION"
	CodeAuthentication       Code = "AUTHENTICATION"
	CodeAuthorization        Code = "AUTHORIZATION"
	CodeReferentialIntegrity Code = "REFERENTIAL_INTEGRITY"
	CodeNotFound             Code = "NOT_FOUND"
	CodeStorage              Code = "STORAGE"
)

// HTTPStatus returns the HTTP status code for an error code.
//
// Lookups that miss are reported as 400 and ownership failures as 401, which is
// what existing catalog clients expect.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeValidation, CodeNotFound:
		return http.StatusBadRequest
	case CodeAuthentication, CodeAuthorization:
		return http.StatusUnauthorized
	case CodeReferentialIntegrity:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Error is a domain error with a code, message, and optional details.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// HTTPStatus returns the HTTP status code for this error.
func (e *Error) HTTPStatus() int {
	return e.Code.HTTPStatus()
}

// WithCause returns a copy of the error wrapping err.
func (e *Error) WithCause(err error) *Error {
	return &Error{Code: e.Code, Message: e.Message, Details: e.Details, cause: err}
}

// WithMessage returns a copy of the error with a different message.
func (e *Error) WithMessage(msg string) *Error {
	return &Error{Code: e.Code, Message: msg, Details: e.Details, cause: e.cause}
}

// Sentinel errors for use with errors.Is().
var (
	ErrValidation           = &Error{Code: CodeValidation, Message: "validation error"}
	ErrAuthentication       = &Error{Code: CodeAuthentication, Message: "authentication required"}
	ErrAuthorization        = &Error{Code: CodeAuthorization, Message: "not permitted"}
	ErrReferentialIntegrity = &Error{Code: CodeReferentialIntegrity, Message: "referential integrity violation"}
	ErrNotFound             = &Error{Code: CodeNotFound, Message: "not found"}
	ErrStorage              = &Error{Code: CodeStorage, Message: "storage error"}
)

// Validation creates a validation error.
func Validation(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

// ValidationWithDetails creates a validation error with per-field details.
func ValidationWithDetails(msg string, details any) *Error {
	return &Error{Code: CodeValidation, Message: msg, Details: details}
}

// Authentication creates an authentication error.
func Authentication(msg string) *Error {
	return &Error{Code: CodeAuthentication, Message: msg}
}

// Authorization creates an authorization error.
func Authorization(msg string) *Error {
	return &Error{Code: CodeAuthorization, Message: msg}
}

// ReferentialIntegrity creates a referential integrity error.
func ReferentialIntegrity(msg string) *Error {
	return &Error{Code: CodeReferentialIntegrity, Message: msg}
}

// NotFound creates a not found error.
func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg}
}

// Storage creates a storage error.
func Storage(msg string) *Error {
	return &Error{Code: CodeStorage, Message: msg}
}

// Wrap wraps an error with a code and message.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, cause: err}
}

// Wrapf wraps an error with a code and formatted message.
func Wrapf(err error, code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), cause: err}
}

// CodeOf returns the code of the first domain error in err's chain, or
// CodeStorage when err carries none.
func CodeOf(err error) Code {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return CodeStorage
}
