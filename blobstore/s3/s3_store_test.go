package s3

import (
	"context"
	"os"
	"testing"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/hupe1980/kmeanspp/blobstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestS3Store_Integration(t *testing.T) {
	bucket := os.Getenv("S3_BUCKET")
	if bucket == "" {
		t.Skip("S3_BUCKET not set; skipping S3 integration test")
	}

	ctx := context.Background()
	cfg, err := config.LoadDefaultConfig(ctx)
	require.NoError(t, err)

	store := NewStore(s3.NewFromConfig(cfg), bucket, "kmeanspp-test")

	payload := []byte("id,x\n1,0.5\n2,1.5\n")
	require.NoError(t, store.Put(ctx, "table.csv", payload))

	got, err := blobstore.ReadAll(ctx, store, "table.csv")
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	_, err = store.Open(ctx, "does-not-exist.csv")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
