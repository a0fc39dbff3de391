package app

import (
	"errors"
	"fmt"
)

var (
	// ErrAssessmentNotFound indicates the referenced assessment id does not exist.
	ErrAssessmentNotFound = errors.New("assessment not found")
	// ErrAINotConfigured indicates no inference credential was configured.
	ErrAINotConfigured = errors.New("ai provider not configured")
)

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// UpstreamError wraps a failed call to the inference provider. It is never
// retried here; the caller decides whether to retry.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string {
	return "upstream inference failed: " + e.Err.Error()
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
