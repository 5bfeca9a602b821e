package compare

// aggregator owns the fan-in side of a single comparison run. Tasks
// hand their terminal results to a buffered channel, so adapters and
// normalization stay free of concurrency concerns; the channel is the
// only synchronization around the result collection.
type aggregator struct {
	results chan ModelResult
}

func newAggregator(n int) *aggregator {
	return &aggregator{
		// Buffered to capacity so no task ever blocks on hand-off.
		results: make(chan ModelResult, n),
	}
}

// record accepts one terminal result. Each task calls it exactly once.
func (a *aggregator) record(result ModelResult) {
	a.results <- result
}

// collect builds the keyed response. It must only be called after
// every task has recorded its result. The completeness invariant is
// asserted here: the key set must equal want exactly, with each key
// written once.
func (a *aggregator) collect(want []string) (*Response, error) {
	close(a.results)

	results := make(map[string]ModelResult, len(want))
	for result := range a.results {
		if _, dup := results[result.ModelID]; dup {
			return nil, internalErrorf("aggregation invariant violated: duplicate result for model %q", result.ModelID)
		}
		results[result.ModelID] = result
	}

	if len(results) != len(want) {
		return nil, internalErrorf("aggregation invariant violated: got %d results, want %d", len(results), len(want))
	}

	metadata := Metadata{Requested: len(want)}
	for _, id := range want {
		result, ok := results[id]
		if !ok {
			return nil, internalErrorf("aggregation invariant violated: missing result for model %q", id)
		}
		if result.Status == StatusSucceeded {
			metadata.Succeeded++
		} else {
			metadata.Failed++
		}
	}

	order := make([]string, len(want))
	copy(order, want)

	return &Response{
		Results:  results,
		Order:    order,
		Metadata: metadata,
	}, nil
}
