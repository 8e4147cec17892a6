// Package kmeans implements the clustering engine: k-means++ seeding and
// Lloyd refinement.
//
// Seeding draws from a caller-owned, explicitly seeded generator so that
// identical inputs always produce identical seeds. Refinement is a pure
// numeric loop; the only failure modes are precondition violations, which
// are reported before any work is done.
//
//	rng := kmeans.NewRand(kmeans.DefaultSeed)
//	seeds, err := kmeans.Seed(points, k, rng)
//	res, err := kmeans.Refine(ctx, points, kmeans.Gather(points, seeds), kmeans.Options{
//	    MaxIter: 300,
//	    Epsilon: 1e-4,
//	})
package kmeans
