package kmeanspp

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"slices"
	"testing"

	"github.com/hupe1980/kmeanspp/dataset"
	"github.com/hupe1980/kmeanspp/resource"
	"github.com/hupe1980/kmeanspp/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pointSet(t *testing.T, points [][]float64) *dataset.PointSet {
	t.Helper()
	ps, err := dataset.NewPointSet(testutil.Sequence(len(points)), points)
	require.NoError(t, err)
	return ps
}

func duplicatePairs(t *testing.T) *dataset.PointSet {
	return pointSet(t, [][]float64{{0, 0}, {0, 0}, {10, 10}, {10, 10}})
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{K: 2, MaxIter: 10, Epsilon: 0.001}

	cases := []struct {
		name   string
		mutate func(*Config)
		n      int
		want   error
	}{
		{name: "valid", mutate: func(*Config) {}, n: 3},
		{name: "zero epsilon", mutate: func(c *Config) { c.Epsilon = 0 }, n: 3},
		{name: "k zero", mutate: func(c *Config) { c.K = 0 }, n: 3, want: ErrInvalidK},
		{name: "k equals n", mutate: func(c *Config) { c.K = 3 }, n: 3, want: ErrInvalidK},
		{name: "k above n", mutate: func(c *Config) { c.K = 4 }, n: 3, want: ErrInvalidK},
		{name: "max iter zero", mutate: func(c *Config) { c.MaxIter = 0 }, n: 3, want: ErrInvalidMaxIter},
		{name: "negative epsilon", mutate: func(c *Config) { c.Epsilon = -1 }, n: 3, want: ErrInvalidEpsilon},
		{name: "empty", mutate: func(*Config) {}, n: 0, want: ErrEmptyPointSet},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid
			tc.mutate(&cfg)
			err := cfg.Validate(tc.n)
			if tc.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.want)
			assert.ErrorIs(t, err, ErrInvalidConfiguration)
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig(4)
	assert.Equal(t, 4, cfg.K)
	assert.Equal(t, 300, cfg.MaxIter)
	assert.Equal(t, uint64(1234), cfg.Seed)
	assert.Zero(t, cfg.Epsilon)
}

func TestRun_DuplicatePairs(t *testing.T) {
	ps := duplicatePairs(t)
	cfg := Config{K: 2, MaxIter: 10, Epsilon: 0.0001, Seed: DefaultSeed}

	res, err := Run(context.Background(), ps, cfg)
	require.NoError(t, err)

	require.Len(t, res.Clusters, 2)
	assert.True(t, res.Converged)
	assert.Equal(t, 1, res.Iterations)
	assert.Zero(t, res.Inertia)
	assert.ElementsMatch(t, [][]float64{{0, 0}, {10, 10}}, res.Centroids())

	// Seeds come from different pairs.
	require.Len(t, res.SeedIndices, 2)
	assert.NotEqual(t, res.SeedIndices[0]/2, res.SeedIndices[1]/2)
	assert.Equal(t, ps.KeysOf(res.SeedIndices), res.SeedKeys)

	for c, cl := range res.Clusters {
		assert.Equal(t, 2, cl.Size())
		for _, key := range cl.Keys(ps) {
			assert.Equal(t, c, res.Labels[key])
		}
	}
}

func TestRun_SingleClusterIsMean(t *testing.T) {
	rng := testutil.NewRNG(7)
	points := rng.UniformPoints(50, 3)
	ps := pointSet(t, points)

	res, err := Run(context.Background(), ps, Config{K: 1, MaxIter: 5, Epsilon: 1e-9})
	require.NoError(t, err)

	mean := testutil.Mean(points)
	require.Len(t, res.Clusters, 1)
	assert.InDeltaSlice(t, mean, res.Clusters[0].Centroid, 1e-12)
	assert.Equal(t, 50, res.Clusters[0].Size())
}

func TestRun_FullPartition(t *testing.T) {
	ps := pointSet(t, [][]float64{{0}, {1}, {5}})
	cfg := Config{K: 3, MaxIter: 10, Epsilon: 0.001}

	_, err := Run(context.Background(), ps, cfg)
	assert.ErrorIs(t, err, ErrInvalidK)

	res, err := Run(context.Background(), ps, cfg, WithFullPartition())
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.Equal(t, 1, res.Iterations)
	assert.Zero(t, res.Inertia)
	for _, cl := range res.Clusters {
		assert.Equal(t, 1, cl.Size())
	}
}

func TestRun_Deterministic(t *testing.T) {
	rng := testutil.NewRNG(42)
	points, _ := rng.Blobs(4, 1500, 3, 0.5)
	ps := pointSet(t, points)
	cfg := Config{K: 4, MaxIter: 50, Epsilon: 1e-6, Seed: DefaultSeed}

	a, err := Run(context.Background(), ps, cfg)
	require.NoError(t, err)
	b, err := Run(context.Background(), ps, cfg, WithWorkers(4))
	require.NoError(t, err)

	assert.Equal(t, a.SeedIndices, b.SeedIndices)
	assert.Equal(t, a.Centroids(), b.Centroids())
	assert.Equal(t, a.Labels, b.Labels)
	assert.Equal(t, a.Iterations, b.Iterations)

	other := cfg
	other.Seed = 99
	c, err := Run(context.Background(), ps, other)
	require.NoError(t, err)
	assert.Len(t, c.Clusters, 4)
}

func TestRun_InertiaNonIncreasing(t *testing.T) {
	rng := testutil.NewRNG(3)
	points, _ := rng.Blobs(5, 40, 2, 3)
	ps := pointSet(t, points)

	res, err := Run(context.Background(), ps, Config{K: 5, MaxIter: 100, Epsilon: 0})
	require.NoError(t, err)

	assert.False(t, res.Converged)
	assert.Equal(t, 100, res.Iterations)
	require.Len(t, res.History, 100)
	for i := 1; i < len(res.History); i++ {
		assert.LessOrEqual(t, res.History[i].Inertia, res.History[i-1].Inertia+1e-9)
	}
	assert.LessOrEqual(t, res.Inertia, res.History[len(res.History)-1].Inertia+1e-9)
}

func TestRun_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := Run(ctx, nil, DefaultConfig(1))
	assert.ErrorIs(t, err, ErrEmptyPointSet)

	ps := duplicatePairs(t)
	_, err = Run(ctx, ps, Config{K: 2, MaxIter: 0})
	assert.ErrorIs(t, err, ErrInvalidMaxIter)

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = Run(canceled, ps, Config{K: 2, MaxIter: 10, Epsilon: 0.1})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_ResourceController(t *testing.T) {
	ps := duplicatePairs(t)
	cfg := Config{K: 2, MaxIter: 10, Epsilon: 0.1}

	rc := resource.NewController(resource.Config{MaxWorkers: 2, MemoryLimitBytes: 1 << 20})
	_, err := Run(context.Background(), ps, cfg, WithResourceController(rc))
	require.NoError(t, err)
	assert.Zero(t, rc.MemoryUsage())

	tiny := resource.NewController(resource.Config{MemoryLimitBytes: 8})
	_, err = Run(context.Background(), ps, cfg, WithResourceController(tiny))
	require.ErrorIs(t, err, ErrMemoryLimit)
	assert.Zero(t, tiny.MemoryUsage())
}

func TestRun_MetricsAndLogging(t *testing.T) {
	ps := duplicatePairs(t)
	metrics := &BasicMetricsCollector{}

	var buf bytes.Buffer
	logger := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := Run(context.Background(), ps, Config{K: 2, MaxIter: 10, Epsilon: 0.1},
		WithMetricsCollector(metrics), WithLogger(logger))
	require.NoError(t, err)

	_, err = Run(context.Background(), ps, Config{K: 9, MaxIter: 10},
		WithMetricsCollector(metrics), WithLogger(logger))
	require.Error(t, err)

	stats := metrics.GetStats()
	assert.Equal(t, int64(2), stats.RunCount)
	assert.Equal(t, int64(1), stats.RunErrors)
	assert.Equal(t, int64(1), stats.ConvergedRuns)
	assert.Equal(t, int64(1), stats.IterationCount)

	out := buf.String()
	assert.Contains(t, out, `"msg":"seeding completed"`)
	assert.Contains(t, out, `"msg":"iteration completed"`)
	assert.Contains(t, out, `"msg":"run converged"`)
	assert.Contains(t, out, `"msg":"run failed"`)
	assert.Contains(t, out, `"k":2`)
}

func TestRun_NilOptions(t *testing.T) {
	_, err := Run(context.Background(), duplicatePairs(t), Config{K: 2, MaxIter: 3},
		nil, WithLogger(nil), WithMetricsCollector(nil))
	require.NoError(t, err)
}

func TestErrorAliases(t *testing.T) {
	_, err := dataset.NewPointSet([]int64{1, 1}, [][]float64{{0}, {1}})
	var dup *ErrDuplicateKey
	require.True(t, errors.As(err, &dup))
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	_, err = dataset.NewPointSet([]int64{1, 2}, [][]float64{{0}, {1, 2}})
	var dim *ErrDimensionMismatch
	require.True(t, errors.As(err, &dim))
	assert.Equal(t, 1, dim.Expected)
	assert.Equal(t, 2, dim.Actual)
}

func TestResult_CentroidsOrder(t *testing.T) {
	res, err := Run(context.Background(), duplicatePairs(t), Config{K: 2, MaxIter: 10, Epsilon: 0.1})
	require.NoError(t, err)

	points := duplicatePairs(t).Points()
	for i, idx := range res.SeedIndices {
		assert.True(t, slices.Equal(points[idx], res.Clusters[i].Centroid))
	}
}
