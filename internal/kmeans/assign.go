package kmeans

import (
	"context"

	"github.com/hupe1980/kmeanspp/distance"
	"github.com/hupe1980/kmeanspp/resource"
	"golang.org/x/sync/errgroup"
)

// minChunk is the smallest number of points handed to one assignment worker.
const minChunk = 1024

// Assign labels every point with the index of its nearest centroid and
// returns the inertia (sum of squared distances to the assigned centroids).
// Ties resolve to the lowest centroid index.
func Assign(points, centroids [][]float64, labels []int) float64 {
	var inertia float64
	for i, p := range points {
		c, d := distance.Nearest(p, centroids)
		labels[i] = c
		inertia += d
	}
	return inertia
}

// assigner runs the assignment step, optionally across several workers.
// Each worker owns a contiguous range of points; labels do not depend on the
// split, and partial inertias are summed in range order.
type assigner struct {
	workers int
	rc      *resource.Controller
	partial []float64
}

func newAssigner(n, workers int, rc *resource.Controller) *assigner {
	if workers <= 0 {
		workers = rc.MaxWorkers()
	}
	if maxByChunk := (n + minChunk - 1) / minChunk; workers > maxByChunk {
		workers = maxByChunk
	}
	if workers < 1 {
		workers = 1
	}
	return &assigner{
		workers: workers,
		rc:      rc,
		partial: make([]float64, workers),
	}
}

func (a *assigner) assign(ctx context.Context, points, centroids [][]float64, labels []int) (float64, error) {
	if a.workers == 1 {
		return Assign(points, centroids, labels), nil
	}

	n := len(points)
	chunk := (n + a.workers - 1) / a.workers

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < a.workers; w++ {
		start := w * chunk
		end := min(start+chunk, n)
		a.partial[w] = 0
		if start >= end {
			continue
		}
		g.Go(func() error {
			if err := a.rc.AcquireWorker(gctx); err != nil {
				return err
			}
			defer a.rc.ReleaseWorker()
			a.partial[w] = Assign(points[start:end], centroids, labels[start:end])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	var inertia float64
	for _, p := range a.partial {
		inertia += p
	}
	return inertia, nil
}
