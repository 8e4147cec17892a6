package dataset

import (
	"fmt"

	"github.com/hupe1980/kmeanspp/internal/kmeans"
)

// PointSet is an ordered, immutable set of points with unique integer keys.
// Points are ordered ascending by key when produced by Join.
type PointSet struct {
	keys   []int64
	points [][]float64
	dim    int
}

// NewPointSet validates keys and points and wraps them.
//
// It fails when the set is empty, when keys and points differ in length, when
// a key repeats, or when the points differ in dimensionality. The slices are
// retained, not copied; callers must not modify them afterwards.
func NewPointSet(keys []int64, points [][]float64) (*PointSet, error) {
	if len(keys) != len(points) {
		return nil, fmt.Errorf("%w: %d keys for %d points", kmeans.ErrInvalidConfiguration, len(keys), len(points))
	}

	dim, err := kmeans.ValidatePoints(points)
	if err != nil {
		return nil, err
	}

	seen := make(map[int64]struct{}, len(keys))
	for _, key := range keys {
		if _, dup := seen[key]; dup {
			return nil, &ErrDuplicateKey{Key: key}
		}
		seen[key] = struct{}{}
	}

	return &PointSet{keys: keys, points: points, dim: dim}, nil
}

// Len returns the number of points.
func (ps *PointSet) Len() int { return len(ps.points) }

// Dim returns the dimensionality shared by all points.
func (ps *PointSet) Dim() int { return ps.dim }

// Key returns the key of the i-th point.
func (ps *PointSet) Key(i int) int64 { return ps.keys[i] }

// Keys returns the keys in point order. The slice must not be modified.
func (ps *PointSet) Keys() []int64 { return ps.keys }

// Points returns the points in order. The slices must not be modified.
func (ps *PointSet) Points() [][]float64 { return ps.points }

// KeysOf maps point indices to their keys.
func (ps *PointSet) KeysOf(indices []int) []int64 {
	out := make([]int64, len(indices))
	for i, idx := range indices {
		out[i] = ps.keys[idx]
	}
	return out
}
