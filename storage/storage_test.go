package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohammedbenserya/stealthium/storage"
)

func TestFileStoreRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := &storage.FileStore{BaseDir: t.TempDir()}

	require.NoError(t, store.Save(ctx, "session", []byte(`{"cookies":[]}`)))

	got, err := store.Load(ctx, "session")
	require.NoError(t, err)
	assert.Equal(t, `{"cookies":[]}`, string(got))

	require.NoError(t, store.Delete(ctx, "session"))

	_, err = store.Load(ctx, "session")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestFileStoreMissingKey(t *testing.T) {
	t.Parallel()

	store := &storage.FileStore{BaseDir: t.TempDir()}
	_, err := store.Load(context.Background(), "never-saved")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestFileStoreDeleteIsIdempotent(t *testing.T) {
	t.Parallel()

	store := &storage.FileStore{BaseDir: t.TempDir()}
	assert.NoError(t, store.Delete(context.Background(), "never-saved"))
}

func TestFileStoreRejectsEmptyKey(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := &storage.FileStore{BaseDir: t.TempDir()}

	assert.Error(t, store.Save(ctx, "", []byte("x")))
	_, err := store.Load(ctx, "")
	assert.Error(t, err)
	assert.Error(t, store.Delete(ctx, ""))
}

func TestFileStoreSanitizesKeyPath(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := &storage.FileStore{BaseDir: t.TempDir()}

	// Path separators must not escape the base directory.
	require.NoError(t, store.Save(ctx, "../escape", []byte("x")))
	got, err := store.Load(ctx, "escape")
	require.NoError(t, err)
	assert.Equal(t, "x", string(got))
}

func TestMemStoreRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := storage.NewMemStore()

	require.NoError(t, store.Save(ctx, "session", []byte("payload")))

	got, err := store.Load(ctx, "session")
	require.NoError(t, err)
	assert.Equal(t, "payload", string(got))

	require.NoError(t, store.Delete(ctx, "session"))
	_, err = store.Load(ctx, "session")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestMemStoreCopiesBlobs(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := storage.NewMemStore()

	data := []byte("original")
	require.NoError(t, store.Save(ctx, "k", data))
	data[0] = 'X'

	got, err := store.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "original", string(got))

	got[0] = 'Y'
	again, err := store.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "original", string(again))
}
