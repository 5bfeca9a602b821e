package providers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAdapter struct {
	name string
}

func (f *fakeAdapter) Submit(ctx context.Context, prompt string) (string, error) {
	return "ok", nil
}

func (f *fakeAdapter) Name() string  { return f.name }
func (f *fakeAdapter) Model() string { return f.name + "-model" }

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register("m1", Entry{Adapter: &fakeAdapter{name: "one"}, Timeout: time.Second}))

	entry, ok := r.Get("m1")
	require.True(t, ok)
	assert.Equal(t, "one", entry.Adapter.Name())
	assert.Equal(t, time.Second, entry.Timeout)

	_, ok = r.Get("absent")
	assert.False(t, ok)
}

func TestRegistry_RegisterRejectsBadEntries(t *testing.T) {
	r := NewRegistry()

	assert.Error(t, r.Register("", Entry{Adapter: &fakeAdapter{}, Timeout: time.Second}))
	assert.Error(t, r.Register("m", Entry{Adapter: nil, Timeout: time.Second}))
	assert.Error(t, r.Register("m", Entry{Adapter: &fakeAdapter{}, Timeout: 0}))

	require.NoError(t, r.Register("m", Entry{Adapter: &fakeAdapter{}, Timeout: time.Second}))
	assert.Error(t, r.Register("m", Entry{Adapter: &fakeAdapter{}, Timeout: time.Second}),
		"duplicate registration must fail")
}

func TestRegistry_ResolveAllOrNothing(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("m1", Entry{Adapter: &fakeAdapter{name: "one"}, Timeout: time.Second}))
	require.NoError(t, r.Register("m2", Entry{Adapter: &fakeAdapter{name: "two"}, Timeout: time.Second}))

	entries, err := r.Resolve([]string{"m2", "m1"})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "two", entries[0].Adapter.Name(), "entries must follow input order")
	assert.Equal(t, "one", entries[1].Adapter.Name())

	_, err = r.Resolve([]string{"m1", "ghost"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ghost")
}

func TestRegistry_IDsSorted(t *testing.T) {
	r := NewRegistry()
	for _, id := range []string{"zed", "alpha", "mid"} {
		require.NoError(t, r.Register(id, Entry{Adapter: &fakeAdapter{}, Timeout: time.Second}))
	}

	assert.Equal(t, []string{"alpha", "mid", "zed"}, r.IDs())
	assert.Equal(t, 3, r.Len())
}
