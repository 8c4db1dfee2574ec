package engine

import (
	"errors"
	"fmt"
)

// ItemError represents an expected per-item failure during generation.
//
// Item errors include:
//   - Invalid configuration: a task/variant missing required fields
//   - Unresolved date: no holiday-adjusted day within the week/month bound
//   - Duplicate lineage: more than one live occurrence for the same key
//
// Item errors are returned alongside successful items in the same batch;
// they never abort generation for other tasks.
type ItemError struct {
	// Code identifies the error category.
	Code ItemErrorCode

	// Message is a human-readable description.
	Message string

	// TaskID identifies the affected master task.
	TaskID string

	// Variant identifies the affected frequency variant, when applicable.
	Variant string

	// Details contains additional context.
	Details map[string]string
}

// ItemErrorCode categorizes per-item generation errors.
type ItemErrorCode string

const (
	// ErrCodeInvalidConfig indicates a structurally invalid task or variant.
	ErrCodeInvalidConfig ItemErrorCode = "INVALID_CONFIG"

	// ErrCodeUnresolvedDate indicates no holiday-adjusted day could be
	// resolved within the rule's week/month bound.
	ErrCodeUnresolvedDate ItemErrorCode = "UNRESOLVED_DATE"

	// ErrCodeDuplicateLineage indicates more than one live occurrence for
	// the same (task, variant, appearance date). This is a caller/store bug
	// surfaced for investigation, never merged silently.
	ErrCodeDuplicateLineage ItemErrorCode = "DUPLICATE_LINEAGE"
)

// Error implements the error interface.
func (e *ItemError) Error() string {
	switch {
	case e.TaskID != "" && e.Variant != "":
		return fmt.Sprintf("%s: %s (task=%s, variant=%s)", e.Code, e.Message, e.TaskID, e.Variant)
	case e.TaskID != "":
		return fmt.Sprintf("%s: %s (task=%s)", e.Code, e.Message, e.TaskID)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
}

// IsConfigError reports whether the error is an invalid-configuration item
// error. Uses errors.As to handle wrapped errors.
func IsConfigError(err error) bool {
	var ie *ItemError
	if errors.As(err, &ie) {
		return ie.Code == ErrCodeInvalidConfig
	}
	return false
}

// IsUnresolvedDateError reports whether the error is an unresolved-date item
// error.
func IsUnresolvedDateError(err error) bool {
	var ie *ItemError
	if errors.As(err, &ie) {
		return ie.Code == ErrCodeUnresolvedDate
	}
	return false
}

// newConfigError builds an ItemError for a structurally invalid task/variant.
func newConfigError(taskID, variant string, cause error) *ItemError {
	return &ItemError{
		Code:    ErrCodeInvalidConfig,
		Message: cause.Error(),
		TaskID:  taskID,
		Variant: variant,
	}
}

// newUnresolvedError builds an ItemError for an unresolvable calendar date.
func newUnresolvedError(taskID, variant string, cause error) *ItemError {
	return &ItemError{
		Code:    ErrCodeUnresolvedDate,
		Message: cause.Error(),
		TaskID:  taskID,
		Variant: variant,
	}
}
