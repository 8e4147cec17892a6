package dataset

import (
	"context"
	"fmt"
	"io"

	"github.com/hupe1980/kmeanspp/blobstore"
	"github.com/hupe1980/kmeanspp/internal/compress"
	"github.com/hupe1980/kmeanspp/resource"
)

// Decompress returns a reader over the decoded contents of r.
// gzip, zstd and lz4 frames are detected by their magic bytes; anything else
// passes through unchanged.
func Decompress(r io.Reader) (io.ReadCloser, error) {
	rc, _, err := compress.NewReader(r)
	return rc, err
}

// Load reads and parses the table stored under name.
// Reads are throttled by rc's IO limit; rc may be nil.
func Load(ctx context.Context, store blobstore.BlobStore, name string, rc *resource.Controller) (*Table, error) {
	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer blob.Close()

	raw, err := blobstore.NewReader(ctx, blob)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	defer raw.Close()

	r, err := Decompress(resource.NewRateLimitedReader(ctx, raw, rc))
	if err != nil {
		return nil, fmt.Errorf("decompress %s: %w", name, err)
	}
	defer r.Close()

	t, err := ReadTable(r)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	return t, nil
}
