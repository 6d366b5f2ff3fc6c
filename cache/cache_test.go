package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_PutGet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, ok, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Put(ctx, "a", []byte("payload")))

	data, ok, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("payload"), data)
}

func TestMemoryStore_PutReplaces(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Put(ctx, "a", []byte("v1")))
	require.NoError(t, store.Put(ctx, "a", []byte("v2")))

	data, ok, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v2"), data)
}

func TestMemoryStore_EvictsInInsertionOrder(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(WithMaxEntries(2))

	require.NoError(t, store.Put(ctx, "a", []byte("1")))
	require.NoError(t, store.Put(ctx, "b", []byte("2")))
	require.NoError(t, store.Put(ctx, "c", []byte("3")))

	_, ok, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok, "oldest entry is evicted first")

	for _, key := range []string{"b", "c"} {
		_, ok, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.True(t, ok, "entry %q survives eviction", key)
	}
}

func TestMemoryStore_RewriteDoesNotDoubleCount(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(WithMaxEntries(2))

	require.NoError(t, store.Put(ctx, "a", []byte("1")))
	require.NoError(t, store.Put(ctx, "a", []byte("2")))
	require.NoError(t, store.Put(ctx, "b", []byte("3")))

	_, ok, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok, "rewriting a key must not consume a second slot")
}

func TestMemoryStore_Close(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Put(ctx, "a", []byte("1")))
	require.NoError(t, store.Close())

	_, ok, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, store.Put(ctx, "b", []byte("2")))
	_, ok, err = store.Get(ctx, "b")
	require.NoError(t, err)
	assert.False(t, ok, "puts after Close are dropped")
}
