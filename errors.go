package kmeanspp

import (
	"github.com/hupe1980/kmeanspp/dataset"
	"github.com/hupe1980/kmeanspp/internal/kmeans"
	"github.com/hupe1980/kmeanspp/resource"
)

var (
	// ErrInvalidConfiguration is the kind shared by every precondition
	// violation.
	ErrInvalidConfiguration = kmeans.ErrInvalidConfiguration

	// ErrEmptyPointSet is returned when the point set is empty.
	ErrEmptyPointSet = kmeans.ErrEmptyPointSet

	// ErrInvalidK is returned when k is outside [1, n), or [1, n] with
	// WithFullPartition.
	ErrInvalidK = kmeans.ErrInvalidK

	// ErrInvalidMaxIter is returned when MaxIter is not positive.
	ErrInvalidMaxIter = kmeans.ErrInvalidMaxIter

	// ErrInvalidEpsilon is returned when Epsilon is negative or NaN.
	ErrInvalidEpsilon = kmeans.ErrInvalidEpsilon

	// ErrNonFinite is returned when a coordinate is NaN or infinite.
	ErrNonFinite = kmeans.ErrNonFinite

	// ErrMemoryLimit is returned when a run's working set exceeds the
	// resource controller's memory limit.
	ErrMemoryLimit = resource.ErrMemoryLimit
)

// ErrDimensionMismatch indicates a point whose dimensionality differs from
// the rest of the point set.
type ErrDimensionMismatch = kmeans.ErrDimensionMismatch

// ErrDuplicateKey indicates a key that occurs more than once.
type ErrDuplicateKey = dataset.ErrDuplicateKey
