package fs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFS(t *testing.T) {
	tmp := t.TempDir()
	lfs := LocalFS{}

	dir := filepath.Join(tmp, "subdir")
	require.NoError(t, lfs.MkdirAll(dir, 0o755))

	fpath := filepath.Join(dir, "test.txt")
	f, err := lfs.OpenFile(fpath, os.O_CREATE|os.O_RDWR, 0o644)
	require.NoError(t, err)
	assert.Equal(t, fpath, f.Name())

	_, err = f.Write([]byte("hello"))
	require.NoError(t, err)
	require.NoError(t, f.Sync())
	require.NoError(t, f.Close())

	info, err := lfs.Stat(fpath)
	require.NoError(t, err)
	assert.Equal(t, int64(5), info.Size())

	newPath := filepath.Join(dir, "renamed.txt")
	require.NoError(t, lfs.Rename(fpath, newPath))

	require.NoError(t, lfs.Remove(newPath))
	_, err = lfs.Stat(newPath)
	assert.True(t, os.IsNotExist(err))
}

func TestFaultyFS_FailAfterBytes(t *testing.T) {
	ffs := NewFaultyFS(nil)
	ffs.AddRule("limited", Fault{FailAfterBytes: 5})

	f, err := ffs.OpenFile(filepath.Join(t.TempDir(), "limited.txt"), os.O_CREATE|os.O_RDWR, 0o644)
	require.NoError(t, err)
	defer f.Close()

	n, err := f.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	_, err = f.Write([]byte("!"))
	assert.ErrorIs(t, err, ErrInjected)
	assert.Equal(t, int64(5), ffs.Written())
}

func TestFaultyFS_SyncAndClose(t *testing.T) {
	boom := errors.New("boom")
	ffs := NewFaultyFS(LocalFS{})
	ffs.AddRule("sync", Fault{FailAfterBytes: -1, FailOnSync: true, Err: boom})
	ffs.AddRule("close", Fault{FailAfterBytes: -1, FailOnClose: true})

	dir := t.TempDir()

	f, err := ffs.OpenFile(filepath.Join(dir, "sync.txt"), os.O_CREATE|os.O_RDWR, 0o644)
	require.NoError(t, err)
	assert.ErrorIs(t, f.Sync(), boom)
	require.NoError(t, f.Close())

	f, err = ffs.OpenFile(filepath.Join(dir, "close.txt"), os.O_CREATE|os.O_RDWR, 0o644)
	require.NoError(t, err)
	require.NoError(t, f.Sync())
	assert.ErrorIs(t, f.Close(), ErrInjected)
}

func TestFaultyFS_UnmatchedFilesPassThrough(t *testing.T) {
	ffs := NewFaultyFS(nil)
	ffs.AddRule("other", Fault{FailOnSync: true})

	path := filepath.Join(t.TempDir(), "plain.txt")
	f, err := ffs.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	require.NoError(t, err)
	_, err = f.Write([]byte("data"))
	require.NoError(t, err)
	require.NoError(t, f.Sync())
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "data", string(data))
}
