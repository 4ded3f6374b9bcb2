package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents different types of errors in the system
type ErrorType string

const (
	// ErrorTypeNotFound indicates a resource was not found
	ErrorTypeNotFound ErrorType = "NOT_FOUND"

	// ErrorTypeValidation indicates a caller input validation error,
	// raised before any retrieval or generation call is made
	ErrorTypeValidation ErrorType = "VALIDATION"

	// ErrorTypeDataUnavailable indicates the provider store is unreachable
	ErrorTypeDataUnavailable ErrorType = "DATA_UNAVAILABLE"

	// ErrorTypeUpstreamUnavailable indicates a transient model-API failure
	// that persisted through retry exhaustion
	ErrorTypeUpstreamUnavailable ErrorType = "UPSTREAM_UNAVAILABLE"

	// ErrorTypeUpstreamRejected indicates a non-retryable model-API failure
	// (invalid credential, malformed request)
	ErrorTypeUpstreamRejected ErrorType = "UPSTREAM_REJECTED"

	// ErrorTypeMalformedResponse indicates model output that failed schema
	// validation; the raw text is retained for diagnostics
	ErrorTypeMalformedResponse ErrorType = "MALFORMED_RESPONSE"

	// ErrorTypeInternal indicates an internal server error
	ErrorTypeInternal ErrorType = "INTERNAL"
)

// AppError represents an application error
type AppError struct {
	Type    ErrorType
	Message string
	// Raw carries the offending model output for MALFORMED_RESPONSE
	// errors. Diagnostic only, never echoed to callers as a result.
	Raw string
	Err error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
	}
}

// NewDataUnavailableError creates a new data unavailable error
func NewDataUnavailableError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeDataUnavailable,
		Message: message,
		Err:     err,
	}
}

// NewUpstreamUnavailableError creates a new upstream unavailable error
// carrying the last failure reason observed before retry exhaustion.
func NewUpstreamUnavailableError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeUpstreamUnavailable,
		Message: message,
		Err:     err,
	}
}

// NewUpstreamRejectedError creates a new upstream rejected error
func NewUpstreamRejectedError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeUpstreamRejected,
		Message: message,
		Err:     err,
	}
}

// NewMalformedResponseError creates a new malformed response error naming
// the result variant that failed validation and retaining the raw model
// text.
func NewMalformedResponseError(variant, message, raw string) *AppError {
	return &AppError{
		Type:    ErrorTypeMalformedResponse,
		Message: fmt.Sprintf("%s: %s", variant, message),
		Raw:     raw,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInternal,
		Message: message,
		Err:     err,
	}
}

// TypeOf returns the ErrorType of err if it is (or wraps) an AppError,
// ErrorTypeInternal otherwise.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeInternal
}

// IsType reports whether err is (or wraps) an AppError of the given type.
func IsType(err error, t ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == t
	}
	return false
}
