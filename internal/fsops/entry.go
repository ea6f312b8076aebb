package fsops

import (
	"fmt"
	"io/fs"
	"path/filepath"
)

// timestampLayout is the fixed display format for modification times,
// rendered in the host's local time zone.
const timestampLayout = "2006-01-02 15:04:05"

// Entry is a display-ready record for one filesystem item. Every field is
// computed from a single metadata snapshot; entries are plain values that
// hold no live handle to the filesystem.
type Entry struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	IsDir       bool   `json:"is_dir"`
	Kind        string `json:"kind"`
	SizeDisplay string `json:"size_display"`
	Modified    string `json:"modified"`
	Permissions string `json:"permissions"`
}

// newEntry builds an Entry from one FileInfo snapshot.
func newEntry(path string, info fs.FileInfo) Entry {
	e := Entry{
		Name:        filepath.Base(path),
		Path:        path,
		IsDir:       info.IsDir(),
		Modified:    info.ModTime().Local().Format(timestampLayout),
		Permissions: info.Mode().String(),
	}
	if e.IsDir {
		e.Kind = "Directory"
	} else {
		e.Kind = "File"
		e.SizeDisplay = FormatSize(info.Size())
	}
	return e
}

// FormatSize renders a byte count as a human string: integer bytes below
// 1 KiB, one-decimal KB below 1 MiB, one-decimal MB above. Base 1024,
// never GB.
func FormatSize(size int64) string {
	switch {
	case size < 1024:
		return fmt.Sprintf("%d B", size)
	case size < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(size)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(size)/(1024*1024))
	}
}
