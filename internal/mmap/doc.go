// Package mmap provides read-only memory-mapped file access.
//
// Local input tables are mapped instead of read so that large files do not
// have to be copied onto the heap before parsing.
//
// # Usage
//
//	m, err := mmap.Open("points.csv")
//	if err != nil { ... }
//	defer m.Close()
//
//	_ = m.Advise(mmap.AccessSequential)
//	data := m.Bytes()
//
// # Platform Support
//
//   - Unix (Linux, macOS, BSD): mmap(2) with madvise(2) for access hints
//   - Other platforms: the file is read into memory; Advise is a no-op
//
// # Thread Safety
//
// Mapping is safe for concurrent read access. Close is idempotent, but callers
// must ensure no goroutine uses Bytes() after Close() returns.
package mmap
