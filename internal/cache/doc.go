// Package cache memoizes lint results across runs.
//
// Two layers cooperate:
//
//   - FileEntryCache tracks, per file path, a content signature from the
//     previous run and an opaque payload, persisted as one msgpack file.
//   - ResultCache decides whether a file can skip analysis: its content must
//     be unchanged and its stored config digest must equal the digest of the
//     configuration in effect now.
//
// Only clean results are ever stored; files with problems are evicted so
// that the next run analyzes them again.
package cache
