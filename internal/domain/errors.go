package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound     = errors.New("not found")
	ErrAccessDenied = errors.New("access denied")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrValidation   = errors.New("validation error")
)

// AccessDeniedError carries the capability that failed the role check, for
// diagnostics. A bare membership miss is reported as plain ErrAccessDenied so
// the caller cannot distinguish "no such workspace" from "not a member".
type AccessDeniedError struct {
	Capability Capability
}

func (e *AccessDeniedError) Error() string {
	return fmt.Sprintf("access denied: requires %s", e.Capability)
}

func (e *AccessDeniedError) Unwrap() error { return ErrAccessDenied }

// NewAccessDeniedError creates an AccessDeniedError for a capability.
func NewAccessDeniedError(cap Capability) *AccessDeniedError {
	return &AccessDeniedError{Capability: cap}
}

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}
