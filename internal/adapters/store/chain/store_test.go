package chain

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/FulinM/waib-2025-LM3-adventurous-compass/internal/domain"
	portmocks "github.com/FulinM/waib-2025-LM3-adventurous-compass/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const userKey = "origin_wallet_user"

func TestStoreGetUsesPrimaryWhenItSucceeds(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockPersistentStore(t)
	fallback := portmocks.NewMockPersistentStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Get(mock.Anything, userKey).Return("from-sqlite", nil).Once()

	value, err := store.Get(context.Background(), userKey)
	require.NoError(t, err)
	assert.Equal(t, "from-sqlite", value)
}

func TestStoreGetFallsBackWhenPrimaryFails(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockPersistentStore(t)
	fallback := portmocks.NewMockPersistentStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Get(mock.Anything, userKey).Return("", errors.New("database locked")).Once()
	fallback.EXPECT().Get(mock.Anything, userKey).Return("from-file", nil).Once()

	value, err := store.Get(context.Background(), userKey)
	require.NoError(t, err)
	assert.Equal(t, "from-file", value)
}

func TestStoreGetReportsNotFoundWhenNeitherBackendHasKey(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockPersistentStore(t)
	fallback := portmocks.NewMockPersistentStore(t)
	store := NewStore(primary, fallback)

	notFound := fmt.Errorf("entry %q: %w", userKey, domain.ErrKeyNotFound)
	primary.EXPECT().Get(mock.Anything, userKey).Return("", notFound).Once()
	fallback.EXPECT().Get(mock.Anything, userKey).Return("", notFound).Once()

	_, err := store.Get(context.Background(), userKey)
	require.ErrorIs(t, err, domain.ErrKeyNotFound)
	assert.NotContains(t, err.Error(), "primary backend")
}

func TestStoreGetReturnsCombinedErrorWhenBothBackendsFail(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockPersistentStore(t)
	fallback := portmocks.NewMockPersistentStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Get(mock.Anything, userKey).Return("", errors.New("sqlite failed")).Once()
	fallback.EXPECT().Get(mock.Anything, userKey).Return("", errors.New("file failed")).Once()

	_, err := store.Get(context.Background(), userKey)
	require.Error(t, err)
	assert.ErrorContains(t, err, "primary backend")
	assert.ErrorContains(t, err, "fallback backend")
	assert.ErrorContains(t, err, "sqlite failed")
	assert.ErrorContains(t, err, "file failed")
}

func TestStorePutFallsBackWhenPrimaryFails(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockPersistentStore(t)
	fallback := portmocks.NewMockPersistentStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Put(mock.Anything, userKey, "payload").Return(errors.New("sqlite failed")).Once()
	fallback.EXPECT().Put(mock.Anything, userKey, "payload").Return(nil).Once()
	primary.EXPECT().Delete(mock.Anything, userKey).Return(fmt.Errorf("entry %q: %w", userKey, domain.ErrKeyNotFound)).Once()

	require.NoError(t, store.Put(context.Background(), userKey, "payload"))
}

func TestStoreFallbackPutShadowsOlderPrimaryValue(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockPersistentStore(t)
	fallback := portmocks.NewMockPersistentStore(t)
	store := NewStore(primary, fallback)
	ctx := context.Background()

	primary.EXPECT().Put(mock.Anything, userKey, "v1").Return(nil).Once()
	primary.EXPECT().Put(mock.Anything, userKey, "v2").Return(errors.New("database locked")).Once()
	fallback.EXPECT().Put(mock.Anything, userKey, "v2").Return(nil).Once()
	primary.EXPECT().Delete(mock.Anything, userKey).Return(nil).Once()
	primary.EXPECT().Get(mock.Anything, userKey).Return("", fmt.Errorf("entry %q: %w", userKey, domain.ErrKeyNotFound)).Once()
	fallback.EXPECT().Get(mock.Anything, userKey).Return("v2", nil).Once()

	require.NoError(t, store.Put(ctx, userKey, "v1"))
	require.NoError(t, store.Put(ctx, userKey, "v2"))

	got, err := store.Get(ctx, userKey)
	require.NoError(t, err)
	assert.Equal(t, "v2", got)
}

func TestStoreFallbackPutFailsWhenStalePrimaryEntryRemains(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockPersistentStore(t)
	fallback := portmocks.NewMockPersistentStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Put(mock.Anything, userKey, "payload").Return(errors.New("sqlite failed")).Once()
	fallback.EXPECT().Put(mock.Anything, userKey, "payload").Return(nil).Once()
	primary.EXPECT().Delete(mock.Anything, userKey).Return(errors.New("sqlite readonly")).Once()

	err := store.Put(context.Background(), userKey, "payload")
	require.Error(t, err)
	assert.ErrorContains(t, err, "drop stale primary entry")
	assert.ErrorContains(t, err, "sqlite readonly")
}

func TestStorePutDoesNotCallFallbackWhenPrimarySucceeds(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockPersistentStore(t)
	fallback := portmocks.NewMockPersistentStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Put(mock.Anything, userKey, "payload").Return(nil).Once()

	require.NoError(t, store.Put(context.Background(), userKey, "payload"))
}

func TestStoreDeleteAlwaysReachesBothBackends(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockPersistentStore(t)
	fallback := portmocks.NewMockPersistentStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Delete(mock.Anything, userKey).Return(nil).Once()
	fallback.EXPECT().Delete(mock.Anything, userKey).Return(nil).Once()

	require.NoError(t, store.Delete(context.Background(), userKey))
}

func TestStoreDeleteReportsPrimaryFailureAfterClearingFallback(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockPersistentStore(t)
	fallback := portmocks.NewMockPersistentStore(t)
	store := NewStore(primary, fallback)

	deleteErr := errors.New("sqlite failed")
	primary.EXPECT().Delete(mock.Anything, userKey).Return(deleteErr).Once()
	fallback.EXPECT().Delete(mock.Anything, userKey).Return(nil).Once()

	err := store.Delete(context.Background(), userKey)
	require.ErrorIs(t, err, deleteErr)
}

func TestStoreGetDoesNotFallbackOnCanceledContextError(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockPersistentStore(t)
	fallback := portmocks.NewMockPersistentStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Get(mock.Anything, userKey).Return("", context.Canceled).Once()

	_, err := store.Get(context.Background(), userKey)
	require.ErrorIs(t, err, context.Canceled)
}

func TestNewStoreCheckedRejectsNilBackends(t *testing.T) {
	t.Parallel()

	_, err := NewStoreChecked(nil, portmocks.NewMockPersistentStore(t))
	require.ErrorIs(t, err, errNilPrimaryStore)

	_, err = NewStoreChecked(portmocks.NewMockPersistentStore(t), nil)
	require.ErrorIs(t, err, errNilFallbackStore)
}

func TestSQLiteFirstWithFileFallbackRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store, err := NewSQLiteFirstWithFileFallback(filepath.Join(dir, "compass.db"), filepath.Join(dir, "entries"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	ctx := context.Background()
	require.NoError(t, store.Put(ctx, userKey, `{"address":"0x1"}`))

	got, err := store.Get(ctx, userKey)
	require.NoError(t, err)
	assert.Equal(t, `{"address":"0x1"}`, got)

	require.NoError(t, store.Delete(ctx, userKey))
	_, err = store.Get(ctx, userKey)
	require.ErrorIs(t, err, domain.ErrKeyNotFound)
}
