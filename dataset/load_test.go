package dataset

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/hupe1980/kmeanspp/blobstore"
	"github.com/hupe1980/kmeanspp/internal/compress"
	"github.com/hupe1980/kmeanspp/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = "id,x,y\n2,1,1\n1,0,0\n3,2,2\n"

func TestDecompress(t *testing.T) {
	for _, typ := range []compress.Type{compress.None, compress.Gzip, compress.Zstd, compress.LZ4} {
		t.Run(typ.String(), func(t *testing.T) {
			encoded, err := compress.Encode([]byte(sampleCSV), typ)
			require.NoError(t, err)

			r, err := Decompress(strings.NewReader(string(encoded)))
			require.NoError(t, err)
			defer r.Close()

			got, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, sampleCSV, string(got))
		})
	}
}

func TestLoad(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	encoded, err := compress.Encode([]byte(sampleCSV), compress.Zstd)
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, "left.csv.zst", encoded))
	require.NoError(t, store.Put(ctx, "right.csv", []byte("id,z\n3,30\n1,10\n")))

	rc := resource.NewController(resource.Config{IOLimitBytesPerSec: 1 << 20})

	left, err := Load(ctx, store, "left.csv.zst", rc)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 1, 3}, left.Keys)

	right, err := Load(ctx, store, "right.csv", nil)
	require.NoError(t, err)

	ps, err := Join(left, right)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, ps.Keys())
	assert.Equal(t, [][]float64{{0, 0, 10}, {2, 2, 30}}, ps.Points())
}

func TestLoad_Errors(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	_, err := Load(ctx, store, "missing.csv", nil)
	assert.ErrorIs(t, err, blobstore.ErrNotFound)

	require.NoError(t, store.Put(ctx, "bad.csv", []byte("id,x\n1,nope\n")))
	_, err = Load(ctx, store, "bad.csv", nil)
	assert.ErrorIs(t, err, ErrMalformedTable)
	assert.Contains(t, err.Error(), "bad.csv")
}
