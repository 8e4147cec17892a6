package main

import (
	"context"
	"testing"

	"github.com/hupe1980/kmeanspp/blobstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocation(t *testing.T) {
	cases := []struct {
		uri  string
		want location
	}{
		{uri: "data/left.csv", want: location{name: "data/left.csv"}},
		{uri: "file:///tmp/left.csv", want: location{name: "/tmp/left.csv"}},
		{uri: "s3://bucket/in/left.csv", want: location{scheme: "s3", bucket: "bucket", name: "in/left.csv"}},
		{uri: "minio://bucket/left.csv.zst", want: location{scheme: "minio", bucket: "bucket", name: "left.csv.zst"}},
	}
	for _, tc := range cases {
		got, err := parseLocation(tc.uri)
		require.NoError(t, err, tc.uri)
		assert.Equal(t, tc.want, got, tc.uri)
	}

	for _, bad := range []string{"gs://bucket/key", "s3://bucket", "s3:///key"} {
		_, err := parseLocation(bad)
		assert.Error(t, err, bad)
	}
}

func TestResolver(t *testing.T) {
	ctx := context.Background()
	r := newResolver(noEnv)

	s, err := r.store(ctx, location{name: "x.csv"})
	require.NoError(t, err)
	assert.IsType(t, &blobstore.LocalStore{}, s)

	_, err = r.store(ctx, location{scheme: "minio", bucket: "b", name: "x.csv"})
	assert.ErrorContains(t, err, "MINIO_ENDPOINT")

	_, err = r.ledger(ctx, location{name: "out.json"}, "runs")
	assert.Error(t, err)
}
