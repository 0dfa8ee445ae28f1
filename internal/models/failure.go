package models

import "fmt"

// FailureKind is the closed set of typed failures a data-fetch
// operation can produce. The executor treats every kind uniformly as
// "this call failed" but preserves the kind for diagnostics.
type FailureKind string

const (
	FailureEntityNotFound      FailureKind = "entity_not_found"
	FailureInvalidParameter    FailureKind = "invalid_parameter"
	FailureRateLimited         FailureKind = "rate_limited"
	FailureUpstreamUnavailable FailureKind = "upstream_unavailable"
	FailureSchemaMismatch      FailureKind = "schema_mismatch"
)

// Failure is the tagged-variant result of a failed operation
// invocation. Failures cross stage boundaries as data, never as panics.
type Failure struct {
	Kind      FailureKind `json:"kind"`
	Message   string      `json:"message"`
	Retryable bool        `json:"retryable"`
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

// NewFailure builds a Failure with retryability derived from the kind.
func NewFailure(kind FailureKind, format string, args ...interface{}) *Failure {
	retryable := false
	switch kind {
	case FailureRateLimited, FailureUpstreamUnavailable:
		retryable = true
	}
	return &Failure{
		Kind:      kind,
		Message:   fmt.Sprintf(format, args...),
		Retryable: retryable,
	}
}
