package fsops

import (
	"errors"
	"os"
	"path/filepath"
)

// ReadMetadata stats a single filesystem entry and returns its display-ready
// record. The stat is taken once; all fields of the returned Entry reflect
// that one snapshot. Symbolic links are described as links, not their targets.
func ReadMetadata(path string) (Entry, error) {
	if path == "" {
		return Entry{}, errKind("stat", path, KindInvalidArgument, errors.New("empty path"))
	}
	info, err := os.Lstat(path)
	if err != nil {
		return Entry{}, wrap("stat", path, err)
	}
	return newEntry(filepath.Clean(path), info), nil
}

// ListDirectory enumerates the direct children of one directory. The self
// and parent pseudo-entries are never included. Enumeration order is
// whatever the filesystem reports; callers wanting an order must sort.
//
// A child whose metadata cannot be read is silently skipped so one broken
// entry does not abort the listing; failure to open the directory itself
// is surfaced.
func ListDirectory(path string) ([]Entry, error) {
	children, err := os.ReadDir(path)
	if err != nil {
		return nil, wrap("list", path, err)
	}

	entries := make([]Entry, 0, len(children))
	for _, child := range children {
		info, err := child.Info()
		if err != nil {
			continue
		}
		entries = append(entries, newEntry(filepath.Join(path, child.Name()), info))
	}
	return entries, nil
}
