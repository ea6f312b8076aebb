package filesystem

import (
	"context"
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"github.com/filedeck/filedeck/internal/shared/types"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

// FormatsOps handles structured file format operations
type FormatsOps struct {
	*FilesystemOps
}

// GetTools returns format operation tool definitions
func (f *FormatsOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "filesystem.json.read",
			Name:        "Read JSON",
			Description: "Parse JSON file (fast decoding)",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "filesystem.json.write",
			Name:        "Write JSON",
			Description: "Write data as indented JSON file",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
				{Name: "data", Type: "object", Description: "Data to write", Required: true},
			},
			Returns: "boolean",
		},
		{
			ID:          "filesystem.yaml.read",
			Name:        "Read YAML",
			Description: "Parse YAML file (3-5x faster)",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "filesystem.yaml.write",
			Name:        "Write YAML",
			Description: "Write YAML file (optimized)",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
				{Name: "data", Type: "object", Description: "Data to write", Required: true},
			},
			Returns: "boolean",
		},
		{
			ID:          "filesystem.toml.read",
			Name:        "Read TOML",
			Description: "Parse TOML file (2x faster)",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "filesystem.toml.write",
			Name:        "Write TOML",
			Description: "Write TOML file (optimized)",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
				{Name: "data", Type: "object", Description: "Data to write", Required: true},
			},
			Returns: "boolean",
		},
	}
}

// JSONRead parses a JSON file
func (f *FormatsOps) JSONRead(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return Failure("path parameter required")
	}

	data, err := os.ReadFile(f.resolvePath(path, appCtx))
	if err != nil {
		return FailureErr("read failed", err)
	}

	var parsed interface{}
	if err := sonic.Unmarshal(data, &parsed); err != nil {
		return Failure(fmt.Sprintf("invalid JSON: %v", err))
	}

	return Success(map[string]interface{}{"path": path, "data": parsed})
}

// JSONWrite writes data as an indented JSON file
func (f *FormatsOps) JSONWrite(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return Failure("path parameter required")
	}
	data, ok := params["data"]
	if !ok {
		return Failure("data parameter required")
	}

	encoded, err := sonic.MarshalIndent(data, "", "  ")
	if err != nil {
		return Failure(fmt.Sprintf("JSON serialization failed: %v", err))
	}

	fullPath := f.resolvePath(path, appCtx)
	if err := os.WriteFile(fullPath, encoded, 0o644); err != nil {
		return FailureErr("write failed", err)
	}

	f.notify("json.write", fullPath)

	return Success(map[string]interface{}{"written": true, "path": fullPath, "size": len(encoded)})
}

// YAMLRead parses a YAML file
func (f *FormatsOps) YAMLRead(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return Failure("path parameter required")
	}

	data, err := os.ReadFile(f.resolvePath(path, appCtx))
	if err != nil {
		return FailureErr("read failed", err)
	}

	var parsed interface{}
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return Failure(fmt.Sprintf("invalid YAML: %v", err))
	}

	return Success(map[string]interface{}{"path": path, "data": parsed})
}

// YAMLWrite writes data as a YAML file
func (f *FormatsOps) YAMLWrite(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return Failure("path parameter required")
	}
	data, ok := params["data"]
	if !ok {
		return Failure("data parameter required")
	}

	encoded, err := yaml.Marshal(data)
	if err != nil {
		return Failure(fmt.Sprintf("YAML serialization failed: %v", err))
	}

	fullPath := f.resolvePath(path, appCtx)
	if err := os.WriteFile(fullPath, encoded, 0o644); err != nil {
		return FailureErr("write failed", err)
	}

	f.notify("yaml.write", fullPath)

	return Success(map[string]interface{}{"written": true, "path": fullPath, "size": len(encoded)})
}

// TOMLRead parses a TOML file
func (f *FormatsOps) TOMLRead(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return Failure("path parameter required")
	}

	data, err := os.ReadFile(f.resolvePath(path, appCtx))
	if err != nil {
		return FailureErr("read failed", err)
	}

	var parsed map[string]interface{}
	if err := toml.Unmarshal(data, &parsed); err != nil {
		return Failure(fmt.Sprintf("invalid TOML: %v", err))
	}

	return Success(map[string]interface{}{"path": path, "data": parsed})
}

// TOMLWrite writes data as a TOML file
func (f *FormatsOps) TOMLWrite(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return Failure("path parameter required")
	}
	data, ok := params["data"]
	if !ok {
		return Failure("data parameter required")
	}

	encoded, err := toml.Marshal(data)
	if err != nil {
		return Failure(fmt.Sprintf("TOML serialization failed: %v", err))
	}

	fullPath := f.resolvePath(path, appCtx)
	if err := os.WriteFile(fullPath, encoded, 0o644); err != nil {
		return FailureErr("write failed", err)
	}

	f.notify("toml.write", fullPath)

	return Success(map[string]interface{}{"written": true, "path": fullPath, "size": len(encoded)})
}
