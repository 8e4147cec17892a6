package blobstore

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	data := []byte("hello world")
	require.NoError(t, store.Put(ctx, "runs/a", data))
	require.NoError(t, store.Put(ctx, "runs/b", []byte("b")))
	require.NoError(t, store.Put(ctx, "other", []byte("o")))

	// Mutating the caller's slice must not affect the stored blob.
	data[0] = 'H'

	blob, err := store.Open(ctx, "runs/a")
	require.NoError(t, err)
	defer blob.Close()
	assert.Equal(t, int64(11), blob.Size())

	buf := make([]byte, 5)
	n, err := blob.ReadAt(ctx, buf, 0)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "hello", string(buf))

	n, err = blob.ReadAt(ctx, buf, 8)
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, 3, n)

	rr, err := blob.ReadRange(ctx, 6, 100)
	require.NoError(t, err)
	got, err := io.ReadAll(rr)
	require.NoError(t, err)
	assert.Equal(t, "world", string(got))

	assert.Equal(t, []string{"runs/a", "runs/b"}, store.Names("runs/"))

	_, err = store.Open(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
