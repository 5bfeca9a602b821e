package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregator_Collect(t *testing.T) {
	agg := newAggregator(3)
	agg.record(ModelResult{ModelID: "b", Status: StatusFailed, ErrorKind: "server_error"})
	agg.record(ModelResult{ModelID: "a", Status: StatusSucceeded, Content: "x"})
	agg.record(ModelResult{ModelID: "c", Status: StatusTimedOut, ErrorKind: "timeout"})

	resp, err := agg.collect([]string{"a", "b", "c"})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, resp.Order)
	assert.Equal(t, Metadata{Requested: 3, Succeeded: 1, Failed: 2}, resp.Metadata)
	assert.Equal(t, "x", resp.Results["a"].Content)
}

func TestAggregator_MissingResultIsInternalError(t *testing.T) {
	agg := newAggregator(2)
	agg.record(ModelResult{ModelID: "a", Status: StatusSucceeded})

	resp, err := agg.collect([]string{"a", "b"})
	require.Nil(t, resp)

	var internalErr *InternalError
	assert.ErrorAs(t, err, &internalErr)
}

func TestAggregator_WrongKeyIsInternalError(t *testing.T) {
	agg := newAggregator(2)
	agg.record(ModelResult{ModelID: "a", Status: StatusSucceeded})
	agg.record(ModelResult{ModelID: "intruder", Status: StatusSucceeded})

	resp, err := agg.collect([]string{"a", "b"})
	require.Nil(t, resp)

	var internalErr *InternalError
	assert.ErrorAs(t, err, &internalErr)
}

func TestAggregator_DuplicateKeyIsInternalError(t *testing.T) {
	agg := newAggregator(2)
	agg.record(ModelResult{ModelID: "a", Status: StatusSucceeded})
	agg.record(ModelResult{ModelID: "a", Status: StatusFailed})

	resp, err := agg.collect([]string{"a", "b"})
	require.Nil(t, resp)

	var internalErr *InternalError
	assert.ErrorAs(t, err, &internalErr)
}
