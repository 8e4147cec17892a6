// Package distance provides the Euclidean distance primitives used by the
// clustering engine.
//
// All arithmetic is done in float64. Assignment and seeding compare squared
// distances; convergence compares rooted distances against epsilon.
//
// # Usage
//
//	d2 := distance.SquaredL2(a, b)
//	d := distance.L2(a, b)
//	idx, d2 := distance.Nearest(p, centroids)
package distance
