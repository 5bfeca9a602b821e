// Package compare implements the comparison orchestrator: one prompt
// fanned out to a set of model adapters concurrently, per-model
// outcomes normalized into a single keyed result set.
package compare

import (
	"fmt"
)

// Status is the terminal state of one per-model task.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	StatusTimedOut  Status = "timed_out"
)

// ModelResult is the canonical outcome for one model. Content is set
// only on success; ErrorKind and ErrorMessage only on failure. Results
// are immutable once constructed.
type ModelResult struct {
	ModelID      string `json:"model_id"`
	Status       Status `json:"status"`
	Content      string `json:"content,omitempty"`
	ErrorKind    string `json:"error_kind,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
	LatencyMs    int64  `json:"latency_ms"`
}

// Request is one user-submitted comparison.
type Request struct {
	Prompt   string   `json:"prompt"`
	ModelIDs []string `json:"models"`
}

// Metadata summarizes a comparison. Failed includes timeouts.
type Metadata struct {
	Requested int `json:"requested"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// Response is the aggregated outcome of one comparison. Results keys
// are exactly the requested model ids; Order preserves the request
// order for rendering.
type Response struct {
	Results  map[string]ModelResult `json:"results"`
	Order    []string               `json:"order"`
	Metadata Metadata               `json:"metadata"`
}

// ValidationError rejects a request before any outbound call is made.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func validationErrorf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// InternalError signals that the contract between dispatcher and
// aggregator was broken. It is a programmer-error class and fails the
// whole request.
type InternalError struct {
	msg string
}

func (e *InternalError) Error() string {
	return e.msg
}

func internalErrorf(format string, args ...interface{}) *InternalError {
	return &InternalError{msg: fmt.Sprintf(format, args...)}
}
