package compare

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/arenalabs/arena/pkg/providers"
)

// DefaultMaxConcurrent bounds outbound provider calls across all
// comparisons in flight when no explicit cap is configured.
const DefaultMaxConcurrent = 8

// Dispatcher fans a prompt out to the requested models and waits for
// every call to reach a terminal state. A single model's failure or
// timeout never aborts sibling calls or the overall request.
type Dispatcher struct {
	registry *providers.Registry

	// slots is the global concurrency cap, shared across all
	// comparisons handled by this dispatcher. It protects outbound
	// connections, not individual requests.
	slots *semaphore.Weighted
}

// NewDispatcher creates a dispatcher over the given registry with a
// global cap on concurrent outbound calls.
func NewDispatcher(registry *providers.Registry, maxConcurrent int64) *Dispatcher {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrent
	}
	return &Dispatcher{
		registry: registry,
		slots:    semaphore.NewWeighted(maxConcurrent),
	}
}

// Dispatch runs one comparison. Validation failures are reported as
// *ValidationError before any outbound call; a broken aggregation
// invariant as *InternalError. Per-model provider failures are captured
// inside the per-model results and never fail the request.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (*Response, error) {
	entries, err := d.validate(req)
	if err != nil {
		return nil, err
	}

	agg := newAggregator(len(req.ModelIDs))
	g, ctx := errgroup.WithContext(ctx)

	for i, entry := range entries {
		modelID := req.ModelIDs[i]
		entry := entry

		g.Go(func() error {
			agg.record(d.runOne(ctx, modelID, entry, req.Prompt))
			return nil
		})
	}

	// Tasks never return errors; Wait is purely the fan-in barrier.
	_ = g.Wait()

	return agg.collect(req.ModelIDs)
}

// runOne drives a single model call to a terminal state: acquire a
// slot, apply the per-call deadline, submit, normalize.
func (d *Dispatcher) runOne(ctx context.Context, modelID string, entry providers.Entry, prompt string) ModelResult {
	start := time.Now()

	// Excess tasks queue here for a free slot. Acquisition fails only
	// when the overall request is abandoned.
	if err := d.slots.Acquire(ctx, 1); err != nil {
		return Normalize(modelID, "", err, time.Since(start))
	}
	defer d.slots.Release(1)

	callCtx, cancel := context.WithTimeout(ctx, entry.Timeout)
	defer cancel()

	content, err := entry.Adapter.Submit(callCtx, prompt)
	if err != nil && callCtx.Err() == context.DeadlineExceeded {
		// The deadline fired while the call was in flight; report the
		// timeout class no matter how the adapter dressed the error.
		err = callCtx.Err()
	}

	return Normalize(modelID, content, err, time.Since(start))
}

// validate checks the request preconditions and resolves every model id
// before any network activity. Unresolvable ids fail the entire request.
func (d *Dispatcher) validate(req Request) ([]providers.Entry, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, validationErrorf("prompt must not be empty")
	}
	if len(req.ModelIDs) == 0 {
		return nil, validationErrorf("at least one model must be selected")
	}

	seen := make(map[string]struct{}, len(req.ModelIDs))
	for _, id := range req.ModelIDs {
		if _, dup := seen[id]; dup {
			return nil, validationErrorf("duplicate model id: %s", id)
		}
		seen[id] = struct{}{}
	}

	entries, err := d.registry.Resolve(req.ModelIDs)
	if err != nil {
		return nil, validationErrorf("%v", err)
	}
	return entries, nil
}
