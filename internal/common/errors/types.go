// Package errors defines the typed application errors the console's HTTP
// layer maps to response statuses.
package errors

import (
	"fmt"
	"sort"
	"strings"
)

// ErrorType represents the category of an error.
type ErrorType string

const (
	// ErrTypeValidation represents validation errors.
	ErrTypeValidation ErrorType = "validation"
	// ErrTypeNotFound represents resource not found errors.
	ErrTypeNotFound ErrorType = "not_found"
	// ErrTypeConfig represents configuration errors.
	ErrTypeConfig ErrorType = "config"
	// ErrTypeUnavailable represents operations that are not offered for the
	// requested object, as opposed to the object being missing.
	ErrTypeUnavailable ErrorType = "unavailable"
	// ErrTypeInternal represents internal errors.
	ErrTypeInternal ErrorType = "internal"
)

// AppError is a structured application error.
type AppError struct {
	Type    ErrorType         `json:"type"`
	Message string            `json:"message"`
	Cause   error             `json:"-"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	parts := []string{string(e.Type), e.Message}
	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("cause=%v", e.Cause))
	}
	if len(e.Fields) > 0 {
		keys := make([]string, 0, len(e.Fields))
		for k := range e.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fieldParts := make([]string, 0, len(keys))
		for _, k := range keys {
			fieldParts = append(fieldParts, fmt.Sprintf("%s=%s", k, e.Fields[k]))
		}
		parts = append(parts, fmt.Sprintf("fields={%s}", strings.Join(fieldParts, ", ")))
	}
	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying cause.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// ValidationError creates a validation error with no field detail.
func ValidationError(msg string) *AppError {
	return &AppError{Type: ErrTypeValidation, Message: msg}
}

// FieldValidationError creates a validation error carrying per-field
// messages, keyed by field name. The configurator surfaces these next to
// the offending form fields.
func FieldValidationError(fields map[string]string) *AppError {
	return &AppError{
		Type:    ErrTypeValidation,
		Message: "invalid configuration",
		Fields:  fields,
	}
}

// NotFoundError creates a not found error naming the missing object.
func NotFoundError(resource string) *AppError {
	return &AppError{Type: ErrTypeNotFound, Message: fmt.Sprintf("%s not found", resource)}
}

// ConfigError creates a configuration error.
func ConfigError(msg string) *AppError {
	return &AppError{Type: ErrTypeConfig, Message: msg}
}

// UnavailableError creates an unavailable error. Distinct from not found:
// the object is recognized but the operation is not offered for it.
func UnavailableError(msg string) *AppError {
	return &AppError{Type: ErrTypeUnavailable, Message: msg}
}

// InternalError creates an internal error wrapping its cause.
func InternalError(msg string, cause error) *AppError {
	return &AppError{Type: ErrTypeInternal, Message: msg, Cause: cause}
}

// IsType checks whether err is an AppError of the given type.
func IsType(err error, errType ErrorType) bool {
	if err == nil {
		return false
	}
	appErr, ok := err.(*AppError)
	return ok && appErr.Type == errType
}
