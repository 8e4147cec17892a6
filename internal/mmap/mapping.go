package mmap

import (
	"bytes"
	"io"
	"os"
	"sync/atomic"
)

// Mapping is a read-only view of a file's contents.
// It owns the underlying byte slice and is responsible for releasing it.
type Mapping struct {
	path   string
	data   []byte
	closed atomic.Bool
	unmap  func([]byte) error
}

// Open maps the file at path into memory.
func Open(path string) (*Mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}

	size := fi.Size()
	if size < 0 || int64(int(size)) != size {
		return nil, ErrInvalidSize
	}
	if size == 0 {
		return &Mapping{path: path}, nil
	}

	data, unmap, err := osMap(f, int(size))
	if err != nil {
		return nil, err
	}

	return &Mapping{path: path, data: data, unmap: unmap}, nil
}

// Path returns the file the mapping was created from.
func (m *Mapping) Path() string {
	return m.path
}

// Close releases the mapping. It is idempotent.
func (m *Mapping) Close() error {
	if m.closed.Swap(true) {
		return nil
	}
	if m.unmap != nil && m.data != nil {
		return m.unmap(m.data)
	}
	return nil
}

// Bytes returns the mapped contents, or nil once the mapping is closed.
// The slice must not be used after Close.
func (m *Mapping) Bytes() []byte {
	if m.closed.Load() {
		return nil
	}
	return m.data
}

// Size returns the size of the mapping in bytes.
func (m *Mapping) Size() int {
	return len(m.data)
}

// Advise provides hints to the kernel about how the memory will be accessed.
func (m *Mapping) Advise(pattern AccessPattern) error {
	if m.closed.Load() {
		return ErrClosed
	}
	return osAdvise(m.data, pattern)
}

// ReadAt implements io.ReaderAt.
func (m *Mapping) ReadAt(p []byte, off int64) (int, error) {
	if m.closed.Load() {
		return 0, ErrClosed
	}
	if off < 0 {
		return 0, ErrInvalidOffset
	}
	if off >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n := copy(p, m.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Section returns a reader over length bytes starting at off, clamped to the
// end of the mapping.
func (m *Mapping) Section(off, length int64) (*bytes.Reader, error) {
	if m.closed.Load() {
		return nil, ErrClosed
	}
	if off < 0 || length < 0 {
		return nil, ErrInvalidOffset
	}
	size := int64(len(m.data))
	if off > size {
		off = size
	}
	end := min(off+length, size)
	return bytes.NewReader(m.data[off:end]), nil
}
