package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arenalabs/arena/pkg/aierrors"
	"github.com/arenalabs/arena/pkg/compare"
	"github.com/arenalabs/arena/pkg/providers"
)

type scriptedAdapter struct {
	name string
	fn   func(ctx context.Context) (string, error)
}

func (s *scriptedAdapter) Submit(ctx context.Context, prompt string) (string, error) {
	return s.fn(ctx)
}

func (s *scriptedAdapter) Name() string  { return s.name }
func (s *scriptedAdapter) Model() string { return s.name + "-model" }

func newTestServer(t *testing.T) *Server {
	t.Helper()

	registry := providers.NewRegistry()
	require.NoError(t, registry.Register("good", providers.Entry{
		Adapter: &scriptedAdapter{name: "good", fn: func(context.Context) (string, error) {
			return "a fine answer", nil
		}},
		Timeout: time.Second,
	}))
	require.NoError(t, registry.Register("broken", providers.Entry{
		Adapter: &scriptedAdapter{name: "broken", fn: func(context.Context) (string, error) {
			return "", fmt.Errorf("kaput: %w", aierrors.ErrServer)
		}},
		Timeout: time.Second,
	}))

	srv, err := New(Config{
		Addr:       ":0",
		Dispatcher: compare.NewDispatcher(registry, 4),
		Registry:   registry,
	})
	require.NoError(t, err)
	return srv
}

func doJSON(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestCompareEndpoint_Success(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/compare",
		`{"prompt":"hello","models":["good","broken"]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		ID       string                         `json:"id"`
		Results  map[string]compare.ModelResult `json:"results"`
		Order    []string                       `json:"order"`
		Metadata compare.Metadata               `json:"metadata"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, []string{"good", "broken"}, resp.Order)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, compare.StatusSucceeded, resp.Results["good"].Status)
	assert.Equal(t, "a fine answer", resp.Results["good"].Content)
	assert.Equal(t, compare.StatusFailed, resp.Results["broken"].Status)
	assert.Equal(t, aierrors.KindServer, resp.Results["broken"].ErrorKind)
	assert.Equal(t, compare.Metadata{Requested: 2, Succeeded: 1, Failed: 1}, resp.Metadata)
}

func TestCompareEndpoint_ValidationIs400(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"empty prompt", `{"prompt":"","models":["good"]}`},
		{"no models", `{"prompt":"hi","models":[]}`},
		{"unknown model", `{"prompt":"hi","models":["good","ghost"]}`},
		{"not json", `{{{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, srv, http.MethodPost, "/api/compare", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "error")
		})
	}
}

func TestModelsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/models", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Models []string `json:"models"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"broken", "good"}, resp.Models)
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNew_RequiresDependencies(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)
}
