// Package dataset turns keyed tabular inputs into the ordered point set the
// clustering engine consumes.
//
// A table is CSV: the first column holds an integer key, the remaining
// columns hold float64 features. Two tables are inner-joined on the key and
// sorted ascending by it:
//
//	left, _ := dataset.Load(ctx, store, "left.csv", nil)
//	right, _ := dataset.Load(ctx, store, "right.csv.zst", nil)
//	ps, err := dataset.Join(left, right)
//
// Inputs may be gzip, zstd or lz4 compressed; the format is detected from the
// leading magic bytes, not from the name.
package dataset
