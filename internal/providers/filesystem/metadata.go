package filesystem

import (
	"context"
	"os"
	"sync/atomic"

	"github.com/charlievieth/fastwalk"
	"github.com/filedeck/filedeck/internal/fsops"
	"github.com/filedeck/filedeck/internal/shared/types"
	"github.com/gabriel-vasile/mimetype"
)

// MetadataOps handles file metadata operations
type MetadataOps struct {
	*FilesystemOps
}

// GetTools returns metadata operation tool definitions
func (m *MetadataOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "filesystem.stat",
			Name:        "File Stats",
			Description: "Get file or directory metadata",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File or directory path", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "filesystem.size_human",
			Name:        "Human-Readable Size",
			Description: "Get file size in human-readable format",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
			},
			Returns: "string",
		},
		{
			ID:          "filesystem.total_size",
			Name:        "Directory Size",
			Description: "Calculate total size of directory",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Directory path", Required: true},
				{Name: "human", Type: "boolean", Description: "Return human-readable format", Required: false},
			},
			Returns: "object",
		},
		{
			ID:          "filesystem.mime_type",
			Name:        "MIME Type",
			Description: "Detect file MIME type (fast, accurate)",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
			},
			Returns: "string",
		},
	}
}

// Stat gets file stats
func (m *MetadataOps) Stat(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return Failure("path parameter required")
	}

	fullPath := m.resolvePath(path, appCtx)
	entry, err := fsops.ReadMetadata(fullPath)
	if err != nil {
		return FailureErr("stat failed", err)
	}

	return Success(map[string]interface{}{
		"name":        entry.Name,
		"path":        entry.Path,
		"is_dir":      entry.IsDir,
		"kind":        entry.Kind,
		"size":        entry.SizeDisplay,
		"modified":    entry.Modified,
		"permissions": entry.Permissions,
	})
}

// SizeHuman gets human-readable file size
func (m *MetadataOps) SizeHuman(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return Failure("path parameter required")
	}

	fullPath := m.resolvePath(path, appCtx)
	info, err := os.Lstat(fullPath)
	if err != nil {
		return FailureErr("stat failed", err)
	}

	return Success(map[string]interface{}{
		"path":  path,
		"size":  fsops.FormatSize(info.Size()),
		"bytes": info.Size(),
	})
}

// TotalSize calculates directory size
func (m *MetadataOps) TotalSize(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return Failure("path parameter required")
	}

	human := false
	if h, ok := params["human"].(bool); ok {
		human = h
	}

	fullPath := m.resolvePath(path, appCtx)

	// Walk callbacks run concurrently, counters must be atomic.
	var totalSize, fileCount atomic.Int64
	conf := fastwalk.Config{Follow: false}

	err := fastwalk.Walk(&conf, fullPath, func(p string, d os.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil || d.IsDir() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}

		totalSize.Add(info.Size())
		fileCount.Add(1)
		return nil
	})

	if err != nil {
		return FailureErr("size calculation failed", err)
	}

	result := map[string]interface{}{
		"path":  path,
		"bytes": totalSize.Load(),
		"files": fileCount.Load(),
	}

	if human {
		result["size"] = fsops.FormatSize(totalSize.Load())
	}

	return Success(result)
}

// MIMEType detects file MIME type
func (m *MetadataOps) MIMEType(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return Failure("path parameter required")
	}

	fullPath := m.resolvePath(path, appCtx)

	mtype, err := mimetype.DetectFile(fullPath)
	if err != nil {
		return FailureErr("mime detection failed", err)
	}

	return Success(map[string]interface{}{
		"path":      path,
		"mime_type": mtype.String(),
		"extension": mtype.Extension(),
	})
}
