package services

import (
	"errors"
	"fmt"
)

// Error taxonomy returned by the settlement engine. Validation and workflow
// errors carry enough detail for the caller to act on; database errors are
// wrapped and surfaced as opaque internal failures by the handlers.
var (
	ErrNotFound            = errors.New("resource not found")
	ErrWorkflowConflict    = errors.New("operation not valid in current state")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrOverpaymentRejected = errors.New("payment amount exceeds outstanding balance")
	ErrDuplicateKey        = errors.New("duplicate record")
	ErrValidation          = errors.New("validation failed")
)

// ValidationError reports a malformed or missing field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %s", e.Reason)
	}
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalidField(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
