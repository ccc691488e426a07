// Package apperr defines the structured failure taxonomy shared by the
// taskboard core. Every failure carries a machine-readable code, a
// human-readable message, and a free-form detail map.
package apperr

import (
	"errors"
	"fmt"
)

// Error codes. CodeApp is the base code for otherwise unclassified failures.
const (
	CodeApp              = "APP_ERROR"
	CodeValidation       = "VALIDATION_ERROR"
	CodeNotFound         = "NOT_FOUND"
	CodeConflict         = "CONFLICT"
	CodePermissionDenied = "PERMISSION_DENIED"
)

// DetailResourceType is the detail key carried by every NOT_FOUND error.
const DetailResourceType = "resource_type"

// Error is a structured failure. The zero value is not usable; construct
// errors through New or the per-code constructors.
type Error struct {
	Code    string
	Message string
	Details map[string]any
}

// New creates a base APP_ERROR failure.
func New(message string) *Error {
	return &Error{Code: CodeApp, Message: message, Details: map[string]any{}}
}

// NewValidation creates a VALIDATION_ERROR carrying the validation reason.
func NewValidation(message string) *Error {
	return &Error{Code: CodeValidation, Message: message, Details: map[string]any{}}
}

// NewNotFound creates a NOT_FOUND error. resourceType names the missing
// resource kind and is always present under Details["resource_type"].
func NewNotFound(message, resourceType string) *Error {
	return &Error{
		Code:    CodeNotFound,
		Message: message,
		Details: map[string]any{DetailResourceType: resourceType},
	}
}

// NewConflict creates a CONFLICT error for duplicate unique fields.
func NewConflict(message string) *Error {
	return &Error{Code: CodeConflict, Message: message, Details: map[string]any{}}
}

// NewPermissionDenied creates a PERMISSION_DENIED error.
func NewPermissionDenied(message string) *Error {
	if message == "" {
		message = "Permission denied"
	}
	return &Error{Code: CodePermissionDenied, Message: message, Details: map[string]any{}}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// WithDetail sets a detail entry and returns the error for chaining.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = map[string]any{}
	}
	e.Details[key] = value
	return e
}

// ToMap converts the error to its wire form.
func (e *Error) ToMap() map[string]any {
	details := e.Details
	if details == nil {
		details = map[string]any{}
	}
	return map[string]any{
		"error_code": e.Code,
		"message":    e.Message,
		"details":    details,
	}
}

// CodeOf returns the code of a structured error, or CodeApp when err is a
// plain error. Returns "" for nil.
func CodeOf(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeApp
}

// IsValidation reports whether err is a VALIDATION_ERROR.
func IsValidation(err error) bool { return CodeOf(err) == CodeValidation }

// IsNotFound reports whether err is a NOT_FOUND error.
func IsNotFound(err error) bool { return CodeOf(err) == CodeNotFound }

// IsConflict reports whether err is a CONFLICT error.
func IsConflict(err error) bool { return CodeOf(err) == CodeConflict }
