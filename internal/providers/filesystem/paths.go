package filesystem

import (
	"path/filepath"

	"github.com/filedeck/filedeck/internal/shared/types"
)

// resolvePath resolves a tool path argument to an absolute path. Absolute
// paths are used as-is; relative paths are scoped to the session's working
// directory when one is set, falling back to the provider root.
func (ops *FilesystemOps) resolvePath(path string, appCtx *types.Context) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	if appCtx != nil && appCtx.WorkDir != nil && *appCtx.WorkDir != "" {
		return filepath.Join(*appCtx.WorkDir, path)
	}
	return filepath.Join(ops.Root, path)
}
