// Package aierrors provides the classified error taxonomy shared by
// provider adapters, the HTTP plumbing, and result normalization.
package aierrors

import (
	"context"
	"errors"
	"fmt"
)

// Standard error classes that can be matched with errors.Is()
var (
	// ErrInvalidConfig indicates an adapter was built from a bad configuration
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrAuthentication indicates the provider rejected our credentials
	ErrAuthentication = errors.New("authentication failed")

	// ErrRateLimited indicates provider rate limiting
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrServer indicates a provider-side failure (5xx equivalent)
	ErrServer = errors.New("provider server error")

	// ErrMalformedResponse indicates the provider replied with a payload
	// we could not extract content from
	ErrMalformedResponse = errors.New("malformed provider response")

	// ErrBadRequest indicates the provider rejected the request itself
	// (4xx other than auth or rate limiting); resending cannot succeed
	ErrBadRequest = errors.New("provider rejected request")

	// ErrNetwork indicates the call never produced an HTTP response
	ErrNetwork = errors.New("network failure")

	// ErrTimeout indicates the per-call deadline fired
	ErrTimeout = errors.New("provider call timed out")
)

// Canonical error kinds surfaced to clients in per-model results.
const (
	KindTimeout           = "timeout"
	KindAuth              = "auth_error"
	KindRateLimited       = "rate_limited"
	KindServer            = "server_error"
	KindMalformedResponse = "malformed_response"
	KindNetwork           = "network_error"
	KindUnknown           = "provider_error"
)

// ProviderError wraps provider-related errors with context
type ProviderError struct {
	// Provider is the name of the provider (e.g., "anthropic", "openai")
	Provider string

	// Operation being performed (e.g., "submit", "create")
	Op string

	// Underlying error
	Err error
}

// Error implements the error interface
func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %s: %v", e.Provider, e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// New creates a new ProviderError
func New(provider, op string, err error) error {
	return &ProviderError{
		Provider: provider,
		Op:       op,
		Err:      err,
	}
}

// Wrap adds provider context to an existing error
func Wrap(err error, provider, op string) error {
	if err == nil {
		return nil
	}
	return &ProviderError{
		Provider: provider,
		Op:       op,
		Err:      err,
	}
}

// Kind maps a classified error onto the canonical errorKind strings.
// A fired deadline is reported as a timeout regardless of how deep in
// the call stack it surfaced.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	case errors.Is(err, ErrAuthentication):
		return KindAuth
	case errors.Is(err, ErrRateLimited):
		return KindRateLimited
	case errors.Is(err, ErrServer):
		return KindServer
	case errors.Is(err, ErrMalformedResponse):
		return KindMalformedResponse
	case errors.Is(err, ErrNetwork):
		return KindNetwork
	default:
		return KindUnknown
	}
}

// Transient reports whether an error class is worth retrying. Auth,
// bad-request, and malformed-response failures will not heal on their
// own, and context errors mean the caller has already given up.
func Transient(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return errors.Is(err, ErrRateLimited) ||
		errors.Is(err, ErrServer) ||
		errors.Is(err, ErrNetwork)
}
