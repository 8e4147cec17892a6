// Package report renders clustering results.
//
// The text format is the classic one: the seed keys comma-joined on the first
// line, followed by one line per final centroid with coordinates printed to
// four decimal places. The JSON format carries the same data plus run
// statistics and cluster membership.
package report
