package blobstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/hupe1980/kmeanspp/internal/fs"
	"github.com/hupe1980/kmeanspp/internal/mmap"
)

// LocalStore implements BlobStore using the local file system.
type LocalStore struct {
	root string
	fs   fs.FileSystem
}

// NewLocalStore creates a new LocalStore rooted at the given directory.
// An empty root resolves names relative to the working directory.
func NewLocalStore(root string) *LocalStore {
	return NewLocalStoreWithFS(root, nil)
}

// NewLocalStoreWithFS is like NewLocalStore but writes through fsys.
// A nil fsys uses fs.Default.
func NewLocalStoreWithFS(root string, fsys fs.FileSystem) *LocalStore {
	if fsys == nil {
		fsys = fs.Default
	}
	return &LocalStore{root: root, fs: fsys}
}

var tmpSeq atomic.Uint64

func (s *LocalStore) path(name string) string {
	if s.root == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.root, name)
}

// Open maps the file for reading.
func (s *LocalStore) Open(ctx context.Context, name string) (Blob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m, err := mmap.Open(s.path(name))
	if err != nil {
		return nil, err
	}
	// Tables are parsed front to back.
	_ = m.Advise(mmap.AccessSequential)
	return &localBlob{m: m}, nil
}

// Put writes data to a temporary file and renames it into place.
// On failure the previous content, if any, is left untouched.
func (s *LocalStore) Put(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path := s.path(name)
	if err := s.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	tmpPath := fmt.Sprintf("%s.tmp-%d-%d", path, os.Getpid(), tmpSeq.Add(1))
	tmp, err := s.fs.OpenFile(tmpPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.fs.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := s.fs.Rename(tmpPath, path); err != nil {
		return err
	}
	committed = true
	return nil
}

type localBlob struct {
	m *mmap.Mapping
}

func (b *localBlob) ReadAt(_ context.Context, p []byte, off int64) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	return b.m.ReadAt(p, off)
}

func (b *localBlob) ReadRange(_ context.Context, off, length int64) (io.ReadCloser, error) {
	r, err := b.m.Section(off, length)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(r), nil
}

func (b *localBlob) Close() error {
	return b.m.Close()
}

func (b *localBlob) Size() int64 {
	return int64(b.m.Size())
}

func (b *localBlob) Bytes() ([]byte, error) {
	data := b.m.Bytes()
	if data == nil && b.m.Size() > 0 {
		return nil, mmap.ErrClosed
	}
	return data, nil
}
