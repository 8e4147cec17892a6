package kmeanspp

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/kmeanspp/dataset"
	"github.com/hupe1980/kmeanspp/internal/kmeans"
)

const (
	// DefaultMaxIter is the iteration cap used when none is given.
	DefaultMaxIter = 300

	// DefaultSeed seeds the k-means++ generator.
	DefaultSeed = kmeans.DefaultSeed
)

// IterationStats describes one refinement iteration.
type IterationStats = kmeans.IterationStats

// Config holds the numeric parameters of a run.
type Config struct {
	// K is the number of clusters.
	K int
	// MaxIter caps the number of refinement iterations. Must be >= 1.
	MaxIter int
	// Epsilon is the convergence threshold: the run stops once every
	// centroid moved strictly less than Epsilon (Euclidean) in one
	// iteration. Epsilon 0 therefore always runs MaxIter iterations.
	Epsilon float64
	// Seed seeds the k-means++ generator.
	Seed uint64
}

// DefaultConfig returns a Config for k clusters with the default iteration
// cap and seed and an Epsilon of zero.
func DefaultConfig(k int) Config {
	return Config{
		K:       k,
		MaxIter: DefaultMaxIter,
		Seed:    DefaultSeed,
	}
}

// Validate checks the Config against a point set of n points.
// K must lie in [1, n).
func (c Config) Validate(n int) error {
	return c.validate(n, false)
}

func (c Config) validate(n int, fullPartition bool) error {
	if n < 1 {
		return ErrEmptyPointSet
	}
	if c.K < 1 || c.K > n || (c.K == n && !fullPartition) {
		return fmt.Errorf("%w: k=%d, n=%d", ErrInvalidK, c.K, n)
	}
	if c.MaxIter < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidMaxIter, c.MaxIter)
	}
	if c.Epsilon < 0 || math.IsNaN(c.Epsilon) {
		return fmt.Errorf("%w: got %v", ErrInvalidEpsilon, c.Epsilon)
	}
	return nil
}

// Cluster is one final cluster.
type Cluster struct {
	// Centroid holds the final coordinates.
	Centroid []float64
	// Members holds the indices of the points assigned to the centroid.
	Members *roaring.Bitmap
}

// Size returns the number of member points.
func (c *Cluster) Size() int {
	return int(c.Members.GetCardinality())
}

// Keys returns the keys of the member points in ascending index order.
func (c *Cluster) Keys(ps *dataset.PointSet) []int64 {
	keys := make([]int64, 0, c.Members.GetCardinality())
	it := c.Members.Iterator()
	for it.HasNext() {
		keys = append(keys, ps.Key(int(it.Next())))
	}
	return keys
}

// Result is the outcome of Run.
type Result struct {
	// SeedIndices are the positions of the k-means++ seeds, in selection order.
	SeedIndices []int
	// SeedKeys are the keys of the seed points, in selection order.
	SeedKeys []int64
	// Clusters holds the final clusters in seed order.
	Clusters []Cluster
	// Labels maps every point to its cluster.
	Labels []int
	// Iterations is the number of refinement iterations performed.
	Iterations int
	// Converged reports whether the Epsilon test passed before MaxIter.
	Converged bool
	// Inertia is the sum of squared distances to the final centroids.
	Inertia float64
	// History has one entry per iteration.
	History []IterationStats
}

// Centroids returns the final centroids in seed order.
func (r *Result) Centroids() [][]float64 {
	out := make([][]float64, len(r.Clusters))
	for i := range r.Clusters {
		out[i] = r.Clusters[i].Centroid
	}
	return out
}

// Run seeds k centroids with k-means++ and refines them with Lloyd's
// algorithm.
//
// ps is not modified. Non-convergence within cfg.MaxIter is reported through
// Result.Converged, not as an error.
func Run(ctx context.Context, ps *dataset.PointSet, cfg Config, optFns ...Option) (res *Result, err error) {
	o := applyOptions(optFns)
	start := time.Now()

	log := o.logger
	defer func() {
		duration := time.Since(start)
		log.LogRun(ctx, res, duration, err)
		if err != nil {
			o.metricsCollector.RecordRun(0, false, duration, err)
			return
		}
		o.metricsCollector.RecordRun(res.Iterations, res.Converged, duration, nil)
	}()

	if ps == nil {
		return nil, ErrEmptyPointSet
	}
	n := ps.Len()
	if err := cfg.validate(n, o.fullPartition); err != nil {
		return nil, err
	}
	if uint64(n) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d points exceed the cluster membership limit", ErrInvalidConfiguration, n)
	}
	log = log.WithK(cfg.K).WithDimension(ps.Dim()).WithCount(n)

	// Labels, two centroid generations and the per-cluster sums.
	working := int64(n)*8 + int64(cfg.K)*int64(ps.Dim())*8*3
	if err := o.controller.AcquireMemory(ctx, working); err != nil {
		return nil, err
	}
	defer o.controller.ReleaseMemory(working)

	points := ps.Points()
	rng := kmeans.NewRand(cfg.Seed)
	seeds, err := kmeans.Seed(points, cfg.K, rng)
	log.LogSeed(ctx, seeds, err)
	if err != nil {
		return nil, err
	}

	refined, err := kmeans.Refine(ctx, points, kmeans.Gather(points, seeds), kmeans.Options{
		MaxIter:    cfg.MaxIter,
		Epsilon:    cfg.Epsilon,
		Workers:    o.workers,
		Controller: o.controller,
		OnIteration: func(s kmeans.IterationStats) {
			log.LogIteration(ctx, s)
			o.metricsCollector.RecordIteration(s)
		},
	})
	if err != nil {
		return nil, err
	}

	clusters := make([]Cluster, cfg.K)
	for c := range clusters {
		clusters[c] = Cluster{
			Centroid: refined.Centroids[c],
			Members:  roaring.New(),
		}
	}
	for i, label := range refined.Labels {
		clusters[label].Members.Add(uint32(i))
	}
	for c := range clusters {
		clusters[c].Members.RunOptimize()
	}

	return &Result{
		SeedIndices: seeds,
		SeedKeys:    ps.KeysOf(seeds),
		Clusters:    clusters,
		Labels:      refined.Labels,
		Iterations:  refined.Iterations,
		Converged:   refined.Converged,
		Inertia:     refined.Inertia,
		History:     refined.History,
	}, nil
}
