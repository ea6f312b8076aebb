package filesystem

import (
	"context"
	"path/filepath"

	"github.com/filedeck/filedeck/internal/fsops"
	"github.com/filedeck/filedeck/internal/shared/types"
)

// OperationsOps handles file tree mutations
type OperationsOps struct {
	*FilesystemOps
}

// GetTools returns tree operation tool definitions
func (o *OperationsOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "filesystem.create_file",
			Name:        "Create File",
			Description: "Create a new empty file (fails if it already exists)",
			Parameters: []types.Parameter{
				{Name: "parent", Type: "string", Description: "Parent directory path", Required: true},
				{Name: "name", Type: "string", Description: "New file name", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "filesystem.rename",
			Name:        "Rename",
			Description: "Rename a file or directory within its parent",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Current path", Required: true},
				{Name: "new_name", Type: "string", Description: "New base name", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "filesystem.delete",
			Name:        "Delete",
			Description: "Delete a file or directory tree recursively",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Path to delete", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "filesystem.copy",
			Name:        "Copy",
			Description: "Copy a file or directory tree into a destination directory",
			Parameters: []types.Parameter{
				{Name: "source", Type: "string", Description: "Source path", Required: true},
				{Name: "destination", Type: "string", Description: "Destination directory", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "filesystem.move",
			Name:        "Move",
			Description: "Move a file or directory into a destination directory",
			Parameters: []types.Parameter{
				{Name: "source", Type: "string", Description: "Source path", Required: true},
				{Name: "destination", Type: "string", Description: "Destination directory", Required: true},
			},
			Returns: "object",
		},
	}
}

// CreateFile creates a new empty file
func (o *OperationsOps) CreateFile(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	parent, ok := params["parent"].(string)
	if !ok || parent == "" {
		return Failure("parent parameter required")
	}
	name, ok := params["name"].(string)
	if !ok || name == "" {
		return Failure("name parameter required")
	}

	fullParent := o.resolvePath(parent, appCtx)
	if err := fsops.CreateFile(fullParent, name); err != nil {
		return FailureErr("create failed", err)
	}

	created := filepath.Join(fullParent, name)
	o.notify("create_file", created)

	return Success(map[string]interface{}{"created": true, "path": created})
}

// Rename renames an item within its parent directory
func (o *OperationsOps) Rename(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return Failure("path parameter required")
	}
	newName, ok := params["new_name"].(string)
	if !ok || newName == "" {
		return Failure("new_name parameter required")
	}

	fullPath := o.resolvePath(path, appCtx)
	if err := fsops.Rename(fullPath, newName); err != nil {
		return FailureErr("rename failed", err)
	}

	renamed := filepath.Join(filepath.Dir(fullPath), newName)
	o.notify("rename", renamed)

	return Success(map[string]interface{}{"renamed": true, "path": renamed})
}

// Delete removes a file or directory tree
func (o *OperationsOps) Delete(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return Failure("path parameter required")
	}

	fullPath := o.resolvePath(path, appCtx)
	if err := fsops.DeleteTree(fullPath); err != nil {
		return FailureErr("delete failed", err)
	}

	o.notify("delete", fullPath)

	return Success(map[string]interface{}{"deleted": true, "path": fullPath})
}

// Copy copies an item into a destination directory
func (o *OperationsOps) Copy(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	source, ok := params["source"].(string)
	if !ok || source == "" {
		return Failure("source parameter required")
	}
	destination, ok := params["destination"].(string)
	if !ok || destination == "" {
		return Failure("destination parameter required")
	}

	fullSource := o.resolvePath(source, appCtx)
	fullDest := o.resolvePath(destination, appCtx)
	if err := fsops.CopyItem(fullSource, fullDest); err != nil {
		return FailureErr("copy failed", err)
	}

	copied := filepath.Join(fullDest, filepath.Base(fullSource))
	o.notify("copy", copied)

	return Success(map[string]interface{}{
		"copied":      true,
		"source":      fullSource,
		"destination": copied,
	})
}

// Move moves an item into a destination directory
func (o *OperationsOps) Move(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	source, ok := params["source"].(string)
	if !ok || source == "" {
		return Failure("source parameter required")
	}
	destination, ok := params["destination"].(string)
	if !ok || destination == "" {
		return Failure("destination parameter required")
	}

	fullSource := o.resolvePath(source, appCtx)
	fullDest := o.resolvePath(destination, appCtx)
	if err := fsops.MoveItem(fullSource, fullDest); err != nil {
		return FailureErr("move failed", err)
	}

	moved := filepath.Join(fullDest, filepath.Base(fullSource))
	o.notify("move", moved)

	return Success(map[string]interface{}{
		"moved":       true,
		"source":      fullSource,
		"destination": moved,
	})
}
