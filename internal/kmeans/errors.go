package kmeans

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfiguration is the kind shared by every precondition
	// violation. All other errors in this package satisfy
	// errors.Is(err, ErrInvalidConfiguration).
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrEmptyPointSet is returned when no points were supplied.
	ErrEmptyPointSet = fmt.Errorf("%w: empty point set", ErrInvalidConfiguration)

	// ErrInvalidK is returned when k is outside the accepted range.
	ErrInvalidK = fmt.Errorf("%w: k out of range", ErrInvalidConfiguration)

	// ErrInvalidMaxIter is returned when the iteration cap is not positive.
	ErrInvalidMaxIter = fmt.Errorf("%w: max_iter must be positive", ErrInvalidConfiguration)

	// ErrInvalidEpsilon is returned when epsilon is negative or NaN.
	ErrInvalidEpsilon = fmt.Errorf("%w: epsilon must be a non-negative number", ErrInvalidConfiguration)

	// ErrNonFinite is returned when a coordinate is NaN or infinite.
	ErrNonFinite = fmt.Errorf("%w: non-finite coordinate", ErrInvalidConfiguration)
)

// ErrDimensionMismatch indicates a point or centroid whose dimensionality
// differs from the rest of the run.
type ErrDimensionMismatch struct {
	Index    int
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch at %d: expected %d, got %d", e.Index, e.Expected, e.Actual)
}

func (e *ErrDimensionMismatch) Unwrap() error { return ErrInvalidConfiguration }
