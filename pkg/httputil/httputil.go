// Package httputil provides the shared HTTP plumbing used by provider
// adapters. Every failure is classified into one of the provider error
// classes so callers can decide on retry and reporting without looking
// at status codes themselves.
package httputil

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/arenalabs/arena/pkg/aierrors"
)

// RequestDetails holds the details for an HTTP request
type RequestDetails struct {
	URL               string
	APIKey            string
	RequestBody       interface{}
	AdditionalHeaders map[string]string
}

var (
	httpClient *http.Client
	clientOnce sync.Once
)

func initClient() {
	// Timeouts are driven by the request context, not the client, so a
	// single shared client can serve calls with different deadlines.
	httpClient = &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:        64,
			MaxIdleConnsPerHost: 8,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

func drainAndCloseBody(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}

func createRequest(ctx context.Context, details RequestDetails) (*http.Request, error) {
	jsonBody, err := json.Marshal(details.RequestBody)
	if err != nil {
		return nil, fmt.Errorf("error marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, details.URL, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("error creating request for URL %s: %w", details.URL, err)
	}

	req.Header.Set("Content-Type", "application/json")
	if details.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+details.APIKey)
	}

	for key, value := range details.AdditionalHeaders {
		req.Header.Set(key, value)
	}

	return req, nil
}

// ClassifyStatus maps an HTTP status code onto a provider error class.
func ClassifyStatus(statusCode int) error {
	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return aierrors.ErrAuthentication
	case statusCode == http.StatusTooManyRequests:
		return aierrors.ErrRateLimited
	case statusCode >= 500:
		return aierrors.ErrServer
	default:
		// Any other 4xx means the provider rejected this request.
		// Resending the same payload cannot succeed, so the class must
		// not be retried.
		return aierrors.ErrBadRequest
	}
}

// Post sends a JSON POST request and returns the raw response body.
// Non-200 statuses and transport failures come back as classified
// errors; the body of a failed call is folded into the error message.
func Post(ctx context.Context, details RequestDetails) ([]byte, error) {
	clientOnce.Do(initClient)

	req, err := createRequest(ctx, details)
	if err != nil {
		return nil, err
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("request to %s: %w", details.URL, aierrors.ErrTimeout)
		}
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, fmt.Errorf("request to %s: %v: %w", details.URL, err, aierrors.ErrNetwork)
	}
	defer drainAndCloseBody(resp.Body)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("reading response from %s: %w", details.URL, aierrors.ErrTimeout)
		}
		return nil, fmt.Errorf("reading response from %s: %v: %w", details.URL, err, aierrors.ErrNetwork)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request to %s failed with status %d: %s: %w",
			details.URL, resp.StatusCode, truncate(body, 512), ClassifyStatus(resp.StatusCode))
	}

	return body, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
