package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound            = errors.New("not found")
	ErrAlreadyExists       = errors.New("already exists")
	ErrValidation          = errors.New("validation error")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrUnsupportedPlatform = errors.New("unsupported platform")
	ErrOracleFailure       = errors.New("ranking oracle failure")
	ErrOracleDisabled      = errors.New("ranking oracle disabled")
)

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

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// OracleError is a typed ranking-oracle failure: transport errors, timeouts,
// open circuit, and responses that violate the reorder schema.
type OracleError struct {
	Reason string
	Err    error
}

func (e *OracleError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("oracle: %s: %v", e.Reason, e.Err)
	}
	return "oracle: " + e.Reason
}

// Is makes errors.Is(err, ErrOracleFailure) match every OracleError.
func (e *OracleError) Is(target error) bool { return target == ErrOracleFailure }

func (e *OracleError) Unwrap() error { return e.Err }

// NewOracleError creates an OracleError with an optional cause.
func NewOracleError(reason string, err error) *OracleError {
	return &OracleError{Reason: reason, Err: err}
}
