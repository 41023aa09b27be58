package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes
const (
	CodeNotFound   = "NOT_FOUND"
	CodeValidation = "VALIDATION_ERROR"
	CodeInternal   = "INTERNAL_ERROR"
)

// Error is an application error carrying an HTTP status and a stable code.
type Error struct {
	Code    string
	Message string
	Status  int
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound builds a NOT_FOUND error for a missing resource.
func NotFound(resource string, id interface{}) *Error {
	return &Error{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s not found: %v", resource, id),
		Status:  http.StatusNotFound,
	}
}

// Validation builds a VALIDATION_ERROR for a malformed input field.
func Validation(field, reason string) *Error {
	return &Error{
		Code:    CodeValidation,
		Message: fmt.Sprintf("invalid %s: %s", field, reason),
		Status:  http.StatusBadRequest,
	}
}

// Internal wraps a persistence or other infrastructure failure.
func Internal(err error) *Error {
	return &Error{
		Code:    CodeInternal,
		Message: "internal server error",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// StatusOf returns the HTTP status for err, defaulting to 500 for
// errors that are not *Error values.
func StatusOf(err error) int {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Status
	}
	return http.StatusInternalServerError
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Code == CodeValidation
}

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Code == CodeNotFound
}
