// Package errors provides standardized error handling for the query pipeline.
package errors

import (
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Pipeline stage errors.
	ErrCodeParseAmbiguous ErrorCode = "PARSE_AMBIGUOUS"
	ErrCodePlanUnmatched  ErrorCode = "PLAN_UNMATCHED"
	ErrCodeCallFailed     ErrorCode = "CALL_FAILED"
	ErrCodeTotalFailure   ErrorCode = "TOTAL_FAILURE"

	// Provider failure kinds, preserved through the executor for diagnostics.
	ErrCodeEntityNotFound      ErrorCode = "ENTITY_NOT_FOUND"
	ErrCodeInvalidParameter    ErrorCode = "INVALID_PARAMETER"
	ErrCodeRateLimited         ErrorCode = "RATE_LIMITED"
	ErrCodeUpstreamUnavailable ErrorCode = "UPSTREAM_UNAVAILABLE"
	ErrCodeSchemaMismatch      ErrorCode = "SCHEMA_MISMATCH"

	// Registry / configuration errors.
	ErrCodeRegistryLoadFailed     ErrorCode = "REGISTRY_LOAD_FAILED"
	ErrCodeRegistryInvalidSchema  ErrorCode = "REGISTRY_INVALID_SCHEMA"
	ErrCodeDatabaseConnectionLost ErrorCode = "DATABASE_CONNECTION_LOST"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// NewPlanUnmatchedError reports that no answer template fits the parsed question.
func NewPlanUnmatchedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodePlanUnmatched,
		Message:   "No answer template matches this question",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCallFailedError wraps a single tool-call failure.
func NewCallFailedError(operation string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCallFailed,
		Message:   "Data fetch operation failed",
		Details:   fmt.Sprintf("operation %s: %v", operation, err),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewRegistryLoadError reports a template registry that could not be read.
func NewRegistryLoadError(path string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRegistryLoadFailed,
		Message:   "Template registry load failed",
		Details:   fmt.Sprintf("path %s: %v", path, err),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRegistrySchemaError reports a registry document that failed schema validation.
func NewRegistrySchemaError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRegistryInvalidSchema,
		Message:   "Template registry failed schema validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// IsRetryable reports whether err carries a retryable StandardError.
func IsRetryable(err error) bool {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr.Retryable
	}
	return false
}

// CodeOf extracts the ErrorCode from err, or empty when err is not standardized.
func CodeOf(err error) ErrorCode {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr.Code
	}
	return ""
}
