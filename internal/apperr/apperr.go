// Package apperr defines the domain error taxonomy. Every business-rule
// failure carries a stable machine code and the HTTP status it maps to,
// so handlers never have to pattern-match on message text.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Stable machine codes returned in error responses.
const (
	CodeValidation        = "VALIDATION"
	CodeUnauthenticated   = "UNAUTHENTICATED"
	CodeBlocked           = "BLOCKED"
	CodeForbidden         = "FORBIDDEN"
	CodeNotFound          = "NOT_FOUND"
	CodeInsufficientStock = "INSUFFICIENT_STOCK"
	CodeInvalidState      = "INVALID_STATE"
	CodeInvalidSignature  = "INVALID_SIGNATURE"
	CodeAlreadyPaid       = "ALREADY_PAID"
	CodeInternal          = "INTERNAL"
)

// Error is a domain error with a stable code and HTTP status.
type Error struct {
	Code    string
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func Validation(format string, args ...interface{}) *Error {
	return &Error{Code: CodeValidation, Status: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

func Unauthenticated(msg string) *Error {
	return &Error{Code: CodeUnauthenticated, Status: http.StatusUnauthorized, Message: msg}
}

func Blocked() *Error {
	return &Error{Code: CodeBlocked, Status: http.StatusForbidden, Message: "account has been blocked by admin"}
}

func Forbidden(msg string) *Error {
	return &Error{Code: CodeForbidden, Status: http.StatusForbidden, Message: msg}
}

func NotFound(format string, args ...interface{}) *Error {
	return &Error{Code: CodeNotFound, Status: http.StatusNotFound, Message: fmt.Sprintf(format, args...)}
}

func InsufficientStock() *Error {
	return &Error{Code: CodeInsufficientStock, Status: http.StatusBadRequest, Message: "insufficient quantity available"}
}

func InvalidState(format string, args ...interface{}) *Error {
	return &Error{Code: CodeInvalidState, Status: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

func InvalidSignature() *Error {
	return &Error{Code: CodeInvalidSignature, Status: http.StatusBadRequest, Message: "invalid payment signature"}
}

func AlreadyPaid() *Error {
	return &Error{Code: CodeAlreadyPaid, Status: http.StatusBadRequest, Message: "payment already verified"}
}

// CodeOf extracts the machine code from err, or CodeInternal for
// anything outside the taxonomy.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// StatusOf extracts the HTTP status from err, defaulting to 500.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return http.StatusInternalServerError
}
