// Package s3 provides an S3 implementation of the blobstore.BlobStore
// interface, plus a DynamoDB-backed ledger of clustering runs.
//
// # Usage
//
//	cfg, _ := config.LoadDefaultConfig(ctx)
//	store := s3.NewStore(awss3.NewFromConfig(cfg), "my-bucket", "inputs/")
//	table, _ := dataset.Load(ctx, store, "left.csv.zst", nil)
//
// # Features
//
//   - Range reads for streaming large tables
//   - Managed (multipart when large) uploads for reports
//   - Configurable prefix for multi-tenant isolation
//   - DDBLedger: versioned, conflict-free run records
package s3
