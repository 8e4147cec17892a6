// Package compress detects and handles the stream formats accepted for input
// tables and written for reports: gzip, zstd and LZ4 frames.
//
// Detection looks at magic bytes only, so file names never have to carry an
// extension for inputs. Outputs pick a format from the name suffix.
package compress
