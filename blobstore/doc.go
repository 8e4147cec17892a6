// Package blobstore provides storage abstraction for input tables and run
// reports.
//
// BlobStore is the interface for reading and writing whole blobs.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem, reads are memory-mapped
//   - MemoryStore: in-memory, for tests
//   - s3.Store: Amazon S3 with range reads and managed uploads
//   - minio.Store: MinIO and other S3-compatible storage
//
// # Custom Implementations
//
//	type BlobStore interface {
//	    Open(ctx, name) (Blob, error)
//	    Put(ctx, name, data) error
//	}
//
// Remote backends implement ReadRange so that callers can stream a blob
// without buffering it:
//
//	r, err := blobstore.NewReader(ctx, blob)
package blobstore
