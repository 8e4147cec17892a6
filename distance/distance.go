package distance

import "math"

// SquaredL2 calculates the squared L2 (Euclidean) distance between two points.
// Assumes points are the same length (caller's responsibility).
func SquaredL2(a, b []float64) float64 {
	var sum float64
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return sum
}

// L2 calculates the Euclidean distance between two points.
func L2(a, b []float64) float64 {
	return math.Sqrt(SquaredL2(a, b))
}

// Nearest returns the index of the centroid closest to p together with the
// squared distance to it. Exact ties resolve to the lowest index, so a point
// whose distances all overflow to +Inf still maps to centroid 0.
// Returns -1 and +Inf when centroids is empty.
func Nearest(p []float64, centroids [][]float64) (int, float64) {
	if len(centroids) == 0 {
		return -1, math.Inf(1)
	}
	best := 0
	bestDist := SquaredL2(p, centroids[0])
	for j := 1; j < len(centroids); j++ {
		if d := SquaredL2(p, centroids[j]); d < bestDist {
			bestDist = d
			best = j
		}
	}
	return best, bestDist
}
