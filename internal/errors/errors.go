// Package errors defines the error taxonomy of the search engine.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions.
var (
	// ErrInvalidInput is returned when query parameter validation fails.
	ErrInvalidInput = errors.New("invalid input")

	// ErrBudgetExceeded marks a query whose comparison budget ran out.
	// It signals degradation to a partial result set, never a failed request.
	ErrBudgetExceeded = errors.New("comparison budget exceeded")

	// ErrSnapshotBuild is returned when a corpus snapshot cannot be built
	// from the source-of-truth store.
	ErrSnapshotBuild = errors.New("snapshot build failed")
)

// ValidationError represents an input validation error with field context.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// SnapshotBuildError wraps the cause of a failed snapshot rebuild.
type SnapshotBuildError struct {
	Cause error
}

func (e *SnapshotBuildError) Error() string {
	return fmt.Sprintf("snapshot build failed: %v", e.Cause)
}

func (e *SnapshotBuildError) Is(target error) bool {
	return target == ErrSnapshotBuild
}

func (e *SnapshotBuildError) Unwrap() error {
	return e.Cause
}

// NewSnapshotBuildError creates a new SnapshotBuildError.
func NewSnapshotBuildError(cause error) *SnapshotBuildError {
	return &SnapshotBuildError{Cause: cause}
}
