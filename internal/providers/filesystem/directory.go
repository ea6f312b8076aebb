package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"
	"github.com/filedeck/filedeck/internal/fsops"
	"github.com/filedeck/filedeck/internal/shared/types"
)

// DirectoryOps handles directory operations
type DirectoryOps struct {
	*FilesystemOps
}

// GetTools returns directory operation tool definitions
func (d *DirectoryOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "filesystem.list",
			Name:        "List Directory",
			Description: "List directory contents with per-entry metadata",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Directory path", Required: true},
			},
			Returns: "array",
		},
		{
			ID:          "filesystem.dir.create",
			Name:        "Create Directory",
			Description: "Create a new directory inside a parent directory",
			Parameters: []types.Parameter{
				{Name: "parent", Type: "string", Description: "Parent directory path", Required: true},
				{Name: "name", Type: "string", Description: "New directory name", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "filesystem.dir.tree",
			Name:        "Directory Tree",
			Description: "Get directory tree structure",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Directory path", Required: true},
				{Name: "max_depth", Type: "number", Description: "Max depth (0=unlimited)", Required: false},
			},
			Returns: "string",
		},
		{
			ID:          "filesystem.dir.flatten",
			Name:        "Flatten Files",
			Description: "Get all files as flat array (fast)",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Directory path", Required: true},
			},
			Returns: "array",
		},
	}
}

// List lists directory contents
func (d *DirectoryOps) List(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return Failure("path parameter required")
	}

	fullPath := d.resolvePath(path, appCtx)
	entries, err := fsops.ListDirectory(fullPath)
	if err != nil {
		return FailureErr("list failed", err)
	}

	files := make([]string, len(entries))
	out := make([]interface{}, len(entries))
	for i, entry := range entries {
		files[i] = entry.Name
		out[i] = entry
	}

	return Success(map[string]interface{}{
		"path":    path,
		"files":   files,
		"entries": out,
		"count":   len(entries),
	})
}

// Create creates a directory inside a parent directory
func (d *DirectoryOps) Create(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	parent, ok := params["parent"].(string)
	if !ok || parent == "" {
		return Failure("parent parameter required")
	}
	name, ok := params["name"].(string)
	if !ok || name == "" {
		return Failure("name parameter required")
	}

	fullParent := d.resolvePath(parent, appCtx)
	if err := fsops.CreateDirectory(fullParent, name); err != nil {
		return FailureErr("create failed", err)
	}

	created := filepath.Join(fullParent, name)
	d.notify("dir.create", created)

	return Success(map[string]interface{}{"created": true, "path": created})
}

// Tree generates directory tree structure
func (d *DirectoryOps) Tree(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return Failure("path parameter required")
	}

	maxDepth := 0
	if depth, ok := params["max_depth"].(float64); ok {
		maxDepth = int(depth)
	}

	fullPath := d.resolvePath(path, appCtx)
	var tree strings.Builder
	tree.WriteString(filepath.Base(fullPath) + "/\n")

	// Single worker plus lexical sort keeps the rendered tree deterministic.
	conf := fastwalk.Config{Follow: false, Sort: fastwalk.SortLexical, NumWorkers: 1}
	err := fastwalk.Walk(&conf, fullPath, func(p string, de os.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil || p == fullPath {
			return nil
		}

		relPath, _ := filepath.Rel(fullPath, p)
		depth := len(strings.Split(relPath, string(os.PathSeparator))) - 1
		if maxDepth > 0 && depth > maxDepth {
			if de.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		indent := strings.Repeat("  ", depth+1)
		name := filepath.Base(p)
		if de.IsDir() {
			tree.WriteString(indent + name + "/\n")
		} else {
			tree.WriteString(indent + name + "\n")
		}
		return nil
	})

	if err != nil {
		return FailureErr("tree failed", err)
	}

	return Success(map[string]interface{}{"path": path, "tree": tree.String()})
}

// Flatten gets all files as flat array
func (d *DirectoryOps) Flatten(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return Failure("path parameter required")
	}

	fullPath := d.resolvePath(path, appCtx)

	var mu sync.Mutex
	files := []string{}
	conf := fastwalk.Config{Follow: false}

	err := fastwalk.Walk(&conf, fullPath, func(p string, de os.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil || de.IsDir() {
			return nil
		}

		relPath, _ := filepath.Rel(fullPath, p)
		mu.Lock()
		files = append(files, relPath)
		mu.Unlock()
		return nil
	})

	if err != nil {
		return FailureErr("flatten failed", err)
	}
	sort.Strings(files)

	return Success(map[string]interface{}{"path": path, "files": files, "count": len(files)})
}
