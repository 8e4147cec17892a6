package kmeans

import (
	"fmt"
	"math"
)

// ValidatePoints checks that points is non-empty, that every point has the
// same positive dimensionality and that all coordinates are finite.
// It returns the common dimensionality.
func ValidatePoints(points [][]float64) (int, error) {
	if len(points) == 0 {
		return 0, ErrEmptyPointSet
	}
	dim := len(points[0])
	if dim == 0 {
		return 0, &ErrDimensionMismatch{Index: 0, Expected: 1, Actual: 0}
	}
	for i, p := range points {
		if len(p) != dim {
			return 0, &ErrDimensionMismatch{Index: i, Expected: dim, Actual: len(p)}
		}
		for _, v := range p {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return 0, fmt.Errorf("%w: point %d", ErrNonFinite, i)
			}
		}
	}
	return dim, nil
}

func validateK(k, n int) error {
	if k < 1 || k > n {
		return fmt.Errorf("%w: k=%d, n=%d", ErrInvalidK, k, n)
	}
	return nil
}

func validateOptions(o Options) error {
	if o.MaxIter < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidMaxIter, o.MaxIter)
	}
	if o.Epsilon < 0 || math.IsNaN(o.Epsilon) {
		return fmt.Errorf("%w: got %v", ErrInvalidEpsilon, o.Epsilon)
	}
	return nil
}
