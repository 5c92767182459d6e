package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/FulinM/waib-2025-LM3-adventurous-compass/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemoryStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStorePutGetDelete(t *testing.T) {
	store := newMemoryStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "origin_wallet_connection", "true"))
	require.NoError(t, store.Put(ctx, "origin_wallet_connection", "true"))

	got, err := store.Get(ctx, "origin_wallet_connection")
	require.NoError(t, err)
	assert.Equal(t, "true", got)

	require.NoError(t, store.Delete(ctx, "origin_wallet_connection"))
	require.NoError(t, store.Delete(ctx, "origin_wallet_connection"))

	_, err = store.Get(ctx, "origin_wallet_connection")
	require.ErrorIs(t, err, domain.ErrKeyNotFound)
}

func TestStoreUpsertReplacesValue(t *testing.T) {
	store := newMemoryStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "k", "first"))
	require.NoError(t, store.Put(ctx, "k", "second"))

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "second", got)
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "compass.db")
	ctx := context.Background()

	first, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, first.Put(ctx, "origin_wallet_user", `{"address":"0xabc"}`))
	require.NoError(t, first.Close())

	second, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })

	got, err := second.Get(ctx, "origin_wallet_user")
	require.NoError(t, err)
	assert.Equal(t, `{"address":"0xabc"}`, got)
}

func TestStoreRejectsEmptyKey(t *testing.T) {
	store := newMemoryStore(t)

	err := store.Put(context.Background(), "  ", "v")
	assert.ErrorContains(t, err, "store key is empty")
}
