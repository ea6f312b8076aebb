package filesystem

import (
	"context"
	"fmt"

	"github.com/filedeck/filedeck/internal/shared/types"
)

// Provider implements filesystem operations against the local disk
type Provider struct {
	directory  *DirectoryOps
	operations *OperationsOps
	metadata   *MetadataOps
	archives   *ArchivesOps
	search     *SearchOps
	formats    *FormatsOps
}

// NewProvider creates a filesystem provider rooted at root. The notifier may
// be nil when no change stream is attached.
func NewProvider(root string, notifier Notifier) *Provider {
	ops := &FilesystemOps{Root: root, Notifier: notifier}
	return &Provider{
		directory:  &DirectoryOps{FilesystemOps: ops},
		operations: &OperationsOps{FilesystemOps: ops},
		metadata:   &MetadataOps{FilesystemOps: ops},
		archives:   &ArchivesOps{FilesystemOps: ops},
		search:     &SearchOps{FilesystemOps: ops},
		formats:    &FormatsOps{FilesystemOps: ops},
	}
}

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	var tools []types.Tool
	tools = append(tools, p.directory.GetTools()...)
	tools = append(tools, p.operations.GetTools()...)
	tools = append(tools, p.metadata.GetTools()...)
	tools = append(tools, p.archives.GetTools()...)
	tools = append(tools, p.search.GetTools()...)
	tools = append(tools, p.formats.GetTools()...)

	return types.Service{
		ID:          "filesystem",
		Name:        "Filesystem Service",
		Description: "File and directory operations on the local filesystem",
		Category:    types.CategoryFilesystem,
		Capabilities: []string{
			"list",
			"stat",
			"create",
			"delete",
			"rename",
			"move",
			"copy",
			"archive",
			"search",
			"formats",
		},
		Tools: tools,
	}
}

// Execute runs a filesystem operation
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "filesystem.list":
		return p.directory.List(ctx, params, appCtx)
	case "filesystem.dir.create":
		return p.directory.Create(ctx, params, appCtx)
	case "filesystem.dir.tree":
		return p.directory.Tree(ctx, params, appCtx)
	case "filesystem.dir.flatten":
		return p.directory.Flatten(ctx, params, appCtx)
	case "filesystem.create_file":
		return p.operations.CreateFile(ctx, params, appCtx)
	case "filesystem.rename":
		return p.operations.Rename(ctx, params, appCtx)
	case "filesystem.delete":
		return p.operations.Delete(ctx, params, appCtx)
	case "filesystem.copy":
		return p.operations.Copy(ctx, params, appCtx)
	case "filesystem.move":
		return p.operations.Move(ctx, params, appCtx)
	case "filesystem.stat":
		return p.metadata.Stat(ctx, params, appCtx)
	case "filesystem.size_human":
		return p.metadata.SizeHuman(ctx, params, appCtx)
	case "filesystem.total_size":
		return p.metadata.TotalSize(ctx, params, appCtx)
	case "filesystem.mime_type":
		return p.metadata.MIMEType(ctx, params, appCtx)
	case "filesystem.archive":
		return p.archives.Archive(ctx, params, appCtx)
	case "filesystem.tar.create":
		return p.archives.TARCreate(ctx, params, appCtx)
	case "filesystem.zip.list":
		return p.archives.ZIPList(ctx, params, appCtx)
	case "filesystem.zip.extract":
		return p.archives.ZIPExtract(ctx, params, appCtx)
	case "filesystem.find":
		return p.search.Find(ctx, params, appCtx)
	case "filesystem.glob":
		return p.search.Glob(ctx, params, appCtx)
	case "filesystem.json.read":
		return p.formats.JSONRead(ctx, params, appCtx)
	case "filesystem.json.write":
		return p.formats.JSONWrite(ctx, params, appCtx)
	case "filesystem.yaml.read":
		return p.formats.YAMLRead(ctx, params, appCtx)
	case "filesystem.yaml.write":
		return p.formats.YAMLWrite(ctx, params, appCtx)
	case "filesystem.toml.read":
		return p.formats.TOMLRead(ctx, params, appCtx)
	case "filesystem.toml.write":
		return p.formats.TOMLWrite(ctx, params, appCtx)
	default:
		return Failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}
