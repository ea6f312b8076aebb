// Package fsops implements the filesystem operations engine.
//
// The engine is a set of synchronous, stateless, path-based operations over
// the local filesystem:
//
//   - ReadMetadata: single-snapshot metadata for one entry, display-ready
//   - ListDirectory: direct children of one directory, fail-soft per child
//   - CreateDirectory / CreateFile: exclusive-creation primitives
//   - Rename / MoveItem: atomic same-volume renames, never copy+delete
//   - DeleteTree: post-order recursive delete, symlink-safe, best-effort
//   - CopyItem: pre-order recursive copy with fixed-buffer streaming
//   - ArchiveZip / ArchiveTar: tree-mirroring archive creation
//
// Every operation runs to completion on the calling goroutine and releases
// all file handles on every exit path. The engine holds no state between
// calls and provides no internal locking; callers driving concurrent
// operations must serialize access to overlapping path subtrees.
//
// Failures are reported through the error taxonomy in errors.go. Ordinary
// filesystem conditions (missing file, permission denied, existing name)
// are classified errors, never panics.
package fsops
