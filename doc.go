// Package kmeanspp clusters points with k-means, seeded by k-means++.
//
// A run picks k initial centroids with k-means++ from a deterministic
// generator (seed 1234 by default), then refines them with Lloyd's algorithm
// until every centroid moves less than Epsilon or MaxIter iterations have
// been performed.
//
// # Quick Start
//
//	left, _ := dataset.Load(ctx, store, "left.csv", nil)
//	right, _ := dataset.Load(ctx, store, "right.csv", nil)
//	ps, _ := dataset.Join(left, right)
//
//	cfg := kmeanspp.DefaultConfig(3)
//	cfg.Epsilon = 0.001
//	res, err := kmeanspp.Run(ctx, ps, cfg)
//
// res.SeedKeys lists the keys of the seed points in selection order and
// res.Clusters holds the final centroids in the same order.
//
// # Determinism
//
// Two runs with the same point set and Config produce identical seeds and
// bit-identical centroids, independent of the number of assignment workers.
//
// # Options
//
//	res, err := kmeanspp.Run(ctx, ps, cfg,
//	    kmeanspp.WithLogger(kmeanspp.NewJSONLogger(slog.LevelDebug)),
//	    kmeanspp.WithWorkers(8),
//	)
//
// # Errors
//
// Every precondition violation satisfies errors.Is(err, ErrInvalidConfiguration).
// Non-convergence is not an error; check Result.Converged.
package kmeanspp
