package kmeans

import (
	"math"
	"math/rand/v2"
	"slices"

	"github.com/hupe1980/kmeanspp/distance"
)

// DefaultSeed is the fixed generator seed used for reproducible seeding.
const DefaultSeed uint64 = 1234

// NewRand returns a deterministic generator for seed.
// Two generators built from the same seed produce identical streams.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// Seed selects k initial centroid indices from points using k-means++.
//
// The first index is uniform over [0, n). Each further index is drawn with
// probability proportional to the squared distance from a point to its
// nearest already-chosen seed. When every weight is zero the draw falls back
// to uniform over all points. Every draw consumes exactly one value from rng,
// and rng is never reseeded.
func Seed(points [][]float64, k int, rng *rand.Rand) ([]int, error) {
	if _, err := ValidatePoints(points); err != nil {
		return nil, err
	}
	n := len(points)
	if err := validateK(k, n); err != nil {
		return nil, err
	}

	indices := make([]int, 0, k)
	chosen := make([][]float64, 0, k)
	weights := make([]float64, n)

	first := rng.IntN(n)
	indices = append(indices, first)
	chosen = append(chosen, points[first])

	for len(indices) < k {
		for i, p := range points {
			_, weights[i] = distance.Nearest(p, chosen)
		}
		next := sample(weights, rng)
		indices = append(indices, next)
		chosen = append(chosen, points[next])
	}

	return indices, nil
}

// sample draws an index with probability proportional to weights using
// inverse-transform sampling over the cumulative sum.
// Zero-weight entries are never returned unless all weights are zero.
func sample(weights []float64, rng *rand.Rand) int {
	var total float64
	for _, w := range weights {
		total += w
	}
	if !(total > 0) {
		return rng.IntN(len(weights))
	}
	if math.IsInf(total, 1) {
		return sampleOverflow(weights, rng)
	}

	r := rng.Float64() * total
	var cum float64
	last := -1
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		cum += w
		last = i
		if r < cum {
			return i
		}
	}
	// Rounding can leave r at or above the final cumulative sum.
	return last
}

// sampleOverflow draws from weights whose sum is not representable.
// Entries that are themselves +Inf share all of the mass; otherwise the
// weights are scaled by their maximum first.
func sampleOverflow(weights []float64, rng *rand.Rand) int {
	var inf []int
	var maxW float64
	for i, w := range weights {
		if math.IsInf(w, 1) {
			inf = append(inf, i)
		}
		maxW = max(maxW, w)
	}
	if len(inf) > 0 {
		return inf[rng.IntN(len(inf))]
	}

	scaled := make([]float64, len(weights))
	for i, w := range weights {
		scaled[i] = w / maxW
	}
	return sample(scaled, rng)
}

// Gather copies the points at indices into a fresh centroid slice.
func Gather(points [][]float64, indices []int) [][]float64 {
	centroids := make([][]float64, len(indices))
	for i, idx := range indices {
		centroids[i] = slices.Clone(points[idx])
	}
	return centroids
}
