// Package filesystem provides file system operations against the local disk.
//
// This package is organized into specialized modules:
//   - directory: Directory operations (list, create, tree, flatten)
//   - operations: Tree mutations (create, rename, delete, copy, move)
//   - metadata: File metadata and statistics
//   - archives: Archive operations (ZIP, TAR with compression)
//   - search: File search (glob patterns, name matching)
//   - formats: Structured formats (JSON, YAML, TOML)
//
// All operations:
//   - Resolve relative paths against the session working directory
//   - Provide detailed error messages
//   - Return structured JSON results
//
// Example Usage:
//
//	provider := filesystem.NewProvider("/srv/files", hub)
//	result, err := provider.Execute(ctx, "filesystem.list", params, appCtx)
package filesystem
