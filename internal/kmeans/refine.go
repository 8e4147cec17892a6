package kmeans

import (
	"context"
	"fmt"
	"math"
	"slices"

	"github.com/hupe1980/kmeanspp/distance"
	"github.com/hupe1980/kmeanspp/resource"
)

// Options configures Refine.
type Options struct {
	// MaxIter bounds the number of assign/update iterations. Must be >= 1.
	MaxIter int

	// Epsilon is the convergence threshold. The run converges once every
	// centroid moved strictly less than Epsilon (Euclidean) in one update.
	Epsilon float64

	// Workers is the number of assignment workers. 0 defers to the
	// controller's MaxWorkers, and then to 1.
	Workers int

	// Controller limits concurrent workers. May be nil.
	Controller *resource.Controller

	// OnIteration, if set, is called after every update step.
	OnIteration func(IterationStats)
}

// IterationStats describes one assign/update iteration.
type IterationStats struct {
	// Iteration is 1-based.
	Iteration int
	// Inertia is measured against the centroids used for assignment.
	Inertia float64
	// MaxShift is the largest Euclidean distance a centroid moved.
	MaxShift float64
	// Empty is the number of centroids that received no points.
	Empty int
}

// Result is the outcome of Refine.
type Result struct {
	// Centroids holds the final k centroids in seed order.
	Centroids [][]float64
	// Labels assigns every point to its nearest final centroid.
	Labels []int
	// Iterations is the number of iterations performed.
	Iterations int
	// Converged reports whether the epsilon test passed before MaxIter.
	Converged bool
	// Inertia is measured against the final centroids.
	Inertia float64
	// History has one entry per iteration.
	History []IterationStats
}

// Refine runs Lloyd's algorithm from the initial centroids.
//
// Every iteration assigns each point to its nearest centroid, then moves each
// centroid to the mean of its points. A centroid that receives no points keeps
// its coordinates. Refine stops when every centroid moved less than
// opts.Epsilon, or after opts.MaxIter iterations; neither is an error.
//
// initial is not modified.
func Refine(ctx context.Context, points, initial [][]float64, opts Options) (*Result, error) {
	dim, err := ValidatePoints(points)
	if err != nil {
		return nil, err
	}
	n, k := len(points), len(initial)
	if err := validateK(k, n); err != nil {
		return nil, err
	}
	for c, centroid := range initial {
		if len(centroid) != dim {
			return nil, fmt.Errorf("centroid: %w", &ErrDimensionMismatch{Index: c, Expected: dim, Actual: len(centroid)})
		}
	}
	if err := validateOptions(opts); err != nil {
		return nil, err
	}

	centroids := make([][]float64, k)
	for c := range initial {
		centroids[c] = slices.Clone(initial[c])
	}
	prev := make([][]float64, k)
	for c := range prev {
		prev[c] = make([]float64, dim)
	}
	u := newUpdater(k, dim)
	a := newAssigner(n, opts.Workers, opts.Controller)
	labels := make([]int, n)

	res := &Result{
		History: make([]IterationStats, 0, min(opts.MaxIter, 64)),
	}

	for iter := 1; iter <= opts.MaxIter; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		inertia, err := a.assign(ctx, points, centroids, labels)
		if err != nil {
			return nil, err
		}

		for c := range centroids {
			copy(prev[c], centroids[c])
		}
		empty := u.update(points, labels, centroids)

		converged := true
		var maxShift float64
		for c := range centroids {
			shift := distance.L2(prev[c], centroids[c])
			if shift > maxShift {
				maxShift = shift
			}
			if !(shift < opts.Epsilon) {
				converged = false
			}
		}

		stats := IterationStats{
			Iteration: iter,
			Inertia:   inertia,
			MaxShift:  maxShift,
			Empty:     empty,
		}
		res.History = append(res.History, stats)
		res.Iterations = iter
		if opts.OnIteration != nil {
			opts.OnIteration(stats)
		}

		if converged {
			res.Converged = true
			break
		}
	}

	inertia, err := a.assign(ctx, points, centroids, labels)
	if err != nil {
		return nil, err
	}

	res.Centroids = centroids
	res.Labels = labels
	res.Inertia = inertia
	return res, nil
}

// updater holds the per-cluster accumulators reused across iterations.
type updater struct {
	sums     [][]float64
	counts   []int
	overflow []bool
}

func newUpdater(k, dim int) *updater {
	sums := make([][]float64, k)
	for c := range sums {
		sums[c] = make([]float64, dim)
	}
	return &updater{
		sums:     sums,
		counts:   make([]int, k),
		overflow: make([]bool, k),
	}
}

// update moves every centroid with at least one member to the mean of its
// members, in point order. It returns the number of empty clusters.
func (u *updater) update(points [][]float64, labels []int, centroids [][]float64) int {
	for c := range u.sums {
		clear(u.sums[c])
		u.counts[c] = 0
	}

	for i, p := range points {
		c := labels[i]
		u.counts[c]++
		sum := u.sums[c]
		for d, v := range p {
			sum[d] += v
		}
	}

	empty, overflowed := 0, false
	for c, count := range u.counts {
		u.overflow[c] = false
		if count == 0 {
			empty++
			continue
		}
		for _, s := range u.sums[c] {
			if math.IsInf(s, 0) {
				u.overflow[c] = true
				overflowed = true
				break
			}
		}
		if u.overflow[c] {
			continue
		}
		for d, s := range u.sums[c] {
			centroids[c][d] = s / float64(count)
		}
	}
	if overflowed {
		u.scaledMean(points, labels, centroids)
	}
	return empty
}

// scaledMean recomputes the clusters whose plain sums overflowed by summing
// pre-divided coordinates. The result stays finite for finite members.
func (u *updater) scaledMean(points [][]float64, labels []int, centroids [][]float64) {
	for c, over := range u.overflow {
		if over {
			clear(u.sums[c])
		}
	}
	for i, p := range points {
		c := labels[i]
		if !u.overflow[c] {
			continue
		}
		count := float64(u.counts[c])
		sum := u.sums[c]
		for d, v := range p {
			sum[d] += v / count
		}
	}
	for c, over := range u.overflow {
		if over {
			copy(centroids[c], u.sums[c])
		}
	}
}
