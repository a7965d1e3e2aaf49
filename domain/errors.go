package domain

import (
	"errors"
	"fmt"
)

// ErrorCategory classifies analysis errors by the scope they affect
type ErrorCategory string

const (
	// ErrConfig marks configuration-level errors; these are fatal to
	// the whole run and surface before any task is scheduled
	ErrConfig ErrorCategory = "config"

	// ErrExecution marks a per-task analyzer failure, isolated to one outcome
	ErrExecution ErrorCategory = "execution"

	// ErrTimeout marks a per-task deadline overrun
	ErrTimeout ErrorCategory = "timeout"

	// ErrCancelled marks caller-initiated cancellation
	ErrCancelled ErrorCategory = "cancelled"

	// ErrMalformedFinding marks a finding that reached the aggregator
	// without its required fields
	ErrMalformedFinding ErrorCategory = "malformed_finding"
)

// AnalysisError is the error type shared across the analysis core
type AnalysisError struct {
	Category ErrorCategory
	Message  string
	Err      error
}

// Error implements the error interface
func (e *AnalysisError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Category, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Category, e.Message)
}

// Unwrap returns the underlying error
func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a fatal configuration error
func NewConfigError(message string, err error) *AnalysisError {
	return &AnalysisError{Category: ErrConfig, Message: message, Err: err}
}

// NewExecutionError creates a per-task execution error
func NewExecutionError(message string, err error) *AnalysisError {
	return &AnalysisError{Category: ErrExecution, Message: message, Err: err}
}

// NewCancelledError creates a cancellation error
func NewCancelledError(message string) *AnalysisError {
	return &AnalysisError{Category: ErrCancelled, Message: message}
}

// IsConfigError reports whether err is a configuration-level error
func IsConfigError(err error) bool {
	var ae *AnalysisError
	return errors.As(err, &ae) && ae.Category == ErrConfig
}
