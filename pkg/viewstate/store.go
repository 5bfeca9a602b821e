// Package viewstate holds the client-side visibility state over an
// already-received comparison: which result cards are closed and which
// remain on screen. It is a plain state container, independent of any
// rendering framework.
package viewstate

import (
	"sync"

	"github.com/arenalabs/arena/pkg/compare"
)

// Store tracks closed result cards for one UI session. Closed keys are
// always a subset of the installed result set, and installing a new
// comparison clears them, so stale closures never leak across
// comparisons.
type Store struct {
	mu      sync.Mutex
	results map[string]compare.ModelResult
	order   []string
	closed  map[string]struct{}
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		results: make(map[string]compare.ModelResult),
		closed:  make(map[string]struct{}),
	}
}

// Install replaces the full result set with a newly accepted
// comparison and clears all closed cards.
func (s *Store) Install(resp *compare.Response) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = make(map[string]struct{})
	s.results = make(map[string]compare.ModelResult, len(resp.Results))
	for id, result := range resp.Results {
		s.results[id] = result
	}
	s.order = make([]string, len(resp.Order))
	copy(s.order, resp.Order)
}

// CloseCard hides the result for the given model id. Unknown ids and
// already-closed cards are no-ops.
func (s *Store) CloseCard(modelID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.results[modelID]; !ok {
		return
	}
	s.closed[modelID] = struct{}{}
}

// ShowAll reopens every closed card.
func (s *Store) ShowAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = make(map[string]struct{})
}

// Visible returns the open results in install order.
func (s *Store) Visible() []compare.ModelResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	visible := make([]compare.ModelResult, 0, len(s.order))
	for _, id := range s.order {
		if _, closed := s.closed[id]; closed {
			continue
		}
		if result, ok := s.results[id]; ok {
			visible = append(visible, result)
		}
	}
	return visible
}

// HiddenCount returns the number of closed cards.
func (s *Store) HiddenCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.closed)
}
