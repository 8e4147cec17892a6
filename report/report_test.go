package report

import (
	"bytes"
	"context"
	"testing"

	"github.com/hupe1980/kmeanspp"
	"github.com/hupe1980/kmeanspp/blobstore"
	"github.com/hupe1980/kmeanspp/codec"
	"github.com/hupe1980/kmeanspp/dataset"
	"github.com/hupe1980/kmeanspp/internal/compress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *Report {
	return &Report{
		SeedKeys:     []int64{3, 0},
		SeedIndices:  []int{2, 0},
		Centroids:    [][]float64{{10, 10.123456}, {-0.00001, 1.5}},
		Iterations:   2,
		Converged:    true,
		Inertia:      0.25,
		ClusterSizes: []int{2, 2},
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, sampleReport()))
	assert.Equal(t, "3,0\n10.0000,10.1235\n-0.0000,1.5000\n", buf.String())
}

func TestWriteJSON(t *testing.T) {
	for _, c := range []codec.Codec{nil, codec.JSON{}, codec.GoJSON{}} {
		var buf bytes.Buffer
		require.NoError(t, WriteJSON(&buf, sampleReport(), c))

		got, err := ReadJSON(buf.Bytes(), c)
		require.NoError(t, err)
		assert.Equal(t, sampleReport(), got)
	}
}

func TestNew(t *testing.T) {
	ps, err := dataset.NewPointSet([]int64{10, 11, 12, 13}, [][]float64{{0, 0}, {0, 0}, {10, 10}, {10, 10}})
	require.NoError(t, err)

	res, err := kmeanspp.Run(context.Background(), ps, kmeanspp.Config{K: 2, MaxIter: 10, Epsilon: 0.0001})
	require.NoError(t, err)

	rep := New(res, ps, true)
	assert.Equal(t, res.SeedKeys, rep.SeedKeys)
	assert.Equal(t, res.SeedIndices, rep.SeedIndices)
	assert.Equal(t, []int{2, 2}, rep.ClusterSizes)
	assert.True(t, rep.Converged)
	require.Len(t, rep.Members, 2)
	assert.ElementsMatch(t, [][]int64{{10, 11}, {12, 13}}, rep.Members)

	assert.Nil(t, New(res, ps, false).Members)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("json")
	require.NoError(t, err)
	assert.Equal(t, JSON, f)

	f, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, Text, f)
	assert.Equal(t, "text", f.String())

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func TestWriterSink(t *testing.T) {
	var buf bytes.Buffer
	sink := &WriterSink{W: &buf, Format: Text}
	require.NoError(t, sink.Write(context.Background(), sampleReport()))
	assert.Equal(t, "3,0\n10.0000,10.1235\n-0.0000,1.5000\n", buf.String())
}

func TestBlobSink(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	for _, name := range []string{"out/run.json", "out/run.json.zst", "out/run.json.gz", "out/run.json.lz4"} {
		t.Run(name, func(t *testing.T) {
			sink := &BlobSink{Store: store, Name: name, Format: JSON}
			require.NoError(t, sink.Write(ctx, sampleReport()))

			raw, err := blobstore.ReadAll(ctx, store, name)
			require.NoError(t, err)

			r, typ, err := compress.NewReader(bytes.NewReader(raw))
			require.NoError(t, err)
			defer r.Close()
			assert.Equal(t, compress.ForName(name), typ)

			var decoded bytes.Buffer
			_, err = decoded.ReadFrom(r)
			require.NoError(t, err)

			got, err := ReadJSON(decoded.Bytes(), nil)
			require.NoError(t, err)
			assert.Equal(t, sampleReport(), got)
		})
	}
}
