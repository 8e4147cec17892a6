// Package fs provides filesystem abstractions for testability and fault injection.
//
//   - [FileSystem]: the operations blob stores need (open, rename, remove...)
//   - [LocalFS]: production implementation using the os package
//   - [FaultyFS]: test utility that injects write, sync and close failures
//
// Production code should use fs.Default (which is [LocalFS]). Tests can inject
// [FaultyFS] to simulate failures:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.AddRule(".tmp-", fs.Fault{FailOnSync: true})
//	store := blobstore.NewLocalStoreWithFS(dir, ffs)
//
// Operations take no context.Context; local syscalls are not interruptible.
// Slow remote IO goes through blobstore, which is context-aware.
package fs
