package clipboard

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/filedeck/filedeck/internal/fsops"
	"github.com/filedeck/filedeck/internal/shared/types"
	"github.com/google/uuid"
)

// Mode selects what pasting an entry does to the source.
type Mode string

const (
	ModeCopy Mode = "copy"
	ModeCut  Mode = "cut"
)

// Entry is one held clipboard item.
type Entry struct {
	ID      string    `json:"id"`
	Path    string    `json:"path"`
	Mode    Mode      `json:"mode"`
	SetAt   time.Time `json:"set_at"`
	Session string    `json:"session,omitempty"`
}

// globalKey holds entries set outside any session.
const globalKey = "global"

// Provider implements per-session file clipboard operations
type Provider struct {
	root    string
	entries sync.Map // session key -> *Entry
}

// NewProvider creates a clipboard provider rooted at the managed tree
func NewProvider(root string) *Provider {
	return &Provider{root: root}
}

// Definition returns service metadata
func (c *Provider) Definition() types.Service {
	return types.Service{
		ID:          "clipboard",
		Name:        "Clipboard Service",
		Description: "Per-session file clipboard with copy and cut semantics",
		Category:    types.CategoryClipboard,
		Capabilities: []string{
			"copy",
			"cut",
			"paste",
		},
		Tools: c.getTools(),
	}
}

func (c *Provider) getTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "clipboard.set",
			Name:        "Set Clipboard",
			Description: "Hold a path for a later paste",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Path to hold", Required: true},
				{Name: "mode", Type: "string", Description: "Paste behavior (copy/cut)", Required: false},
			},
			Returns: "object",
		},
		{
			ID:          "clipboard.get",
			Name:        "Get Clipboard",
			Description: "Retrieve the currently held entry",
			Parameters:  []types.Parameter{},
			Returns:     "object",
		},
		{
			ID:          "clipboard.clear",
			Name:        "Clear Clipboard",
			Description: "Drop the currently held entry",
			Parameters:  []types.Parameter{},
			Returns:     "boolean",
		},
		{
			ID:          "clipboard.paste",
			Name:        "Paste",
			Description: "Copy or move the held entry into a destination directory",
			Parameters: []types.Parameter{
				{Name: "destination", Type: "string", Description: "Destination directory", Required: true},
			},
			Returns: "object",
		},
	}
}

// Execute runs a clipboard operation
func (c *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "clipboard.set":
		return c.set(params, appCtx)
	case "clipboard.get":
		return c.get(appCtx)
	case "clipboard.clear":
		return c.clear(appCtx)
	case "clipboard.paste":
		return c.paste(params, appCtx)
	default:
		return failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

func sessionKey(appCtx *types.Context) string {
	if appCtx != nil && appCtx.SessionID != nil && *appCtx.SessionID != "" {
		return *appCtx.SessionID
	}
	return globalKey
}

// resolvePath anchors relative paths the same way the filesystem tools do:
// session workdir when set, provider root otherwise.
func (c *Provider) resolvePath(path string, appCtx *types.Context) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	if appCtx != nil && appCtx.WorkDir != nil && *appCtx.WorkDir != "" {
		return filepath.Join(*appCtx.WorkDir, path)
	}
	return filepath.Join(c.root, path)
}

func (c *Provider) set(params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return failure("path parameter required")
	}

	mode := ModeCopy
	if m, ok := params["mode"].(string); ok && m != "" {
		switch Mode(m) {
		case ModeCopy, ModeCut:
			mode = Mode(m)
		default:
			return failure(fmt.Sprintf("invalid mode: %s", m))
		}
	}

	key := sessionKey(appCtx)
	entry := &Entry{
		ID:      uuid.NewString(),
		Path:    c.resolvePath(path, appCtx),
		Mode:    mode,
		SetAt:   time.Now(),
		Session: key,
	}
	c.entries.Store(key, entry)

	return success(map[string]interface{}{
		"set":      true,
		"entry_id": entry.ID,
		"path":     entry.Path,
		"mode":     string(entry.Mode),
	})
}

func (c *Provider) get(appCtx *types.Context) (*types.Result, error) {
	val, ok := c.entries.Load(sessionKey(appCtx))
	if !ok {
		return failure("clipboard is empty")
	}
	entry := val.(*Entry)

	return success(map[string]interface{}{
		"entry_id": entry.ID,
		"path":     entry.Path,
		"mode":     string(entry.Mode),
		"set_at":   entry.SetAt.Unix(),
	})
}

func (c *Provider) clear(appCtx *types.Context) (*types.Result, error) {
	c.entries.Delete(sessionKey(appCtx))
	return success(map[string]interface{}{"cleared": true})
}

func (c *Provider) paste(params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	dest, ok := params["destination"].(string)
	if !ok || dest == "" {
		return failure("destination parameter required")
	}
	destination := c.resolvePath(dest, appCtx)

	key := sessionKey(appCtx)
	val, ok := c.entries.Load(key)
	if !ok {
		return failure("clipboard is empty")
	}
	entry := val.(*Entry)

	var err error
	switch entry.Mode {
	case ModeCut:
		err = fsops.MoveItem(entry.Path, destination)
	default:
		err = fsops.CopyItem(entry.Path, destination)
	}
	if err != nil {
		return failure(fmt.Sprintf("paste failed: %v", err))
	}

	// A cut entry is consumed by its paste, the source is gone.
	if entry.Mode == ModeCut {
		c.entries.Delete(key)
	}

	pasted := filepath.Join(destination, filepath.Base(entry.Path))
	return success(map[string]interface{}{
		"pasted":      true,
		"mode":        string(entry.Mode),
		"source":      entry.Path,
		"destination": pasted,
	})
}

func success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{
		Success: true,
		Data:    data,
	}, nil
}

func failure(message string) (*types.Result, error) {
	errMsg := message
	return &types.Result{
		Success: false,
		Error:   &errMsg,
	}, fmt.Errorf("%s", message)
}
