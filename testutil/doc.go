// Package testutil provides testing utilities for kmeanspp.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded generator for synthetic point clouds and helpers to
// render point tables as CSV.
//
// # Random Point Generation
//
//	rng := testutil.NewRNG(seed)
//	points := rng.UniformPoints(100, 3)
//	blobs, centers := rng.Blobs(4, 50, 2, 0.5)
//
// # CSV Fixtures
//
//	csv := testutil.TableCSV([]int64{1, 2}, [][]float64{{0.5}, {1.5}})
package testutil
