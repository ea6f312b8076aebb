package filesystem

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/filedeck/filedeck/internal/fsops"
	"github.com/filedeck/filedeck/internal/shared/types"
)

// ArchivesOps handles archive operations (zip, tar, tar.gz, tar.zst)
type ArchivesOps struct {
	*FilesystemOps
}

// GetTools returns archive operation tool definitions
func (a *ArchivesOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "filesystem.archive",
			Name:        "Create ZIP",
			Description: "Compress a file or directory into a ZIP archive",
			Parameters: []types.Parameter{
				{Name: "source", Type: "string", Description: "Source file or directory", Required: true},
				{Name: "output", Type: "string", Description: "Output ZIP path", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "filesystem.tar.create",
			Name:        "Create TAR",
			Description: "Create TAR archive (gzip/zstd compression)",
			Parameters: []types.Parameter{
				{Name: "source", Type: "string", Description: "Source file or directory", Required: true},
				{Name: "output", Type: "string", Description: "Output TAR path", Required: true},
				{Name: "compression", Type: "string", Description: "Compression (none/gzip/zstd)", Required: false},
			},
			Returns: "object",
		},
		{
			ID:          "filesystem.zip.list",
			Name:        "List ZIP",
			Description: "List ZIP archive contents",
			Parameters: []types.Parameter{
				{Name: "archive", Type: "string", Description: "ZIP file path", Required: true},
			},
			Returns: "array",
		},
		{
			ID:          "filesystem.zip.extract",
			Name:        "Extract ZIP",
			Description: "Extract ZIP archive into a destination directory",
			Parameters: []types.Parameter{
				{Name: "archive", Type: "string", Description: "ZIP file path", Required: true},
				{Name: "destination", Type: "string", Description: "Destination directory", Required: true},
			},
			Returns: "object",
		},
	}
}

// Archive compresses a file or directory into a ZIP archive
func (a *ArchivesOps) Archive(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	source, ok := params["source"].(string)
	if !ok || source == "" {
		return Failure("source parameter required")
	}
	output, ok := params["output"].(string)
	if !ok || output == "" {
		return Failure("output parameter required")
	}

	fullSource := a.resolvePath(source, appCtx)
	fullOutput := a.resolvePath(output, appCtx)

	if err := fsops.ArchiveZip(fullSource, fullOutput); err != nil {
		return FailureErr("archive failed", err)
	}

	a.notify("archive", fullOutput)

	return Success(map[string]interface{}{
		"created": true,
		"source":  fullSource,
		"output":  fullOutput,
	})
}

// TARCreate creates a TAR archive
func (a *ArchivesOps) TARCreate(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	source, ok := params["source"].(string)
	if !ok || source == "" {
		return Failure("source parameter required")
	}
	output, ok := params["output"].(string)
	if !ok || output == "" {
		return Failure("output parameter required")
	}

	compression := fsops.TarGzip
	if comp, ok := params["compression"].(string); ok && comp != "" {
		compression = fsops.TarCompression(comp)
	}

	fullSource := a.resolvePath(source, appCtx)
	fullOutput := a.resolvePath(output, appCtx)

	if err := fsops.ArchiveTar(fullSource, fullOutput, compression); err != nil {
		return FailureErr("tar creation failed", err)
	}

	a.notify("tar.create", fullOutput)

	return Success(map[string]interface{}{
		"created":     true,
		"source":      fullSource,
		"output":      fullOutput,
		"compression": string(compression),
	})
}

// ZIPList lists ZIP contents
func (a *ArchivesOps) ZIPList(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	archive, ok := params["archive"].(string)
	if !ok || archive == "" {
		return Failure("archive parameter required")
	}

	fullArchive := a.resolvePath(archive, appCtx)

	reader, err := zip.OpenReader(fullArchive)
	if err != nil {
		return FailureErr("open failed", err)
	}
	defer reader.Close()

	entries := []map[string]interface{}{}
	for _, file := range reader.File {
		info := file.FileInfo()
		entries = append(entries, map[string]interface{}{
			"name":            file.Name,
			"size":            info.Size(),
			"compressed_size": file.CompressedSize64,
			"modified":        info.ModTime().Unix(),
			"is_dir":          info.IsDir(),
		})
	}

	return Success(map[string]interface{}{"archive": archive, "entries": entries, "count": len(entries)})
}

// ZIPExtract extracts a ZIP archive
func (a *ArchivesOps) ZIPExtract(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	archive, ok := params["archive"].(string)
	if !ok || archive == "" {
		return Failure("archive parameter required")
	}
	destination, ok := params["destination"].(string)
	if !ok || destination == "" {
		return Failure("destination parameter required")
	}

	fullArchive := a.resolvePath(archive, appCtx)
	fullDest := a.resolvePath(destination, appCtx)

	reader, err := zip.OpenReader(fullArchive)
	if err != nil {
		return FailureErr("open failed", err)
	}
	defer reader.Close()

	fileCount := 0

	for _, file := range reader.File {
		select {
		case <-ctx.Done():
			return Failure(fmt.Sprintf("extraction cancelled: %v", ctx.Err()))
		default:
		}

		// Prevent zip-slip: entries must land inside the destination.
		destPath := filepath.Join(fullDest, file.Name)
		if !strings.HasPrefix(destPath, filepath.Clean(fullDest)+string(os.PathSeparator)) {
			continue
		}

		if file.FileInfo().IsDir() {
			os.MkdirAll(destPath, 0o755)
			continue
		}

		if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
			continue
		}

		srcFile, err := file.Open()
		if err != nil {
			continue
		}

		dstFile, err := os.Create(destPath)
		if err != nil {
			srcFile.Close()
			continue
		}

		_, err = io.Copy(dstFile, srcFile)
		srcFile.Close()
		dstFile.Close()

		if err == nil {
			fileCount++
		}
	}

	a.notify("zip.extract", fullDest)

	return Success(map[string]interface{}{
		"extracted":   true,
		"destination": fullDest,
		"files":       fileCount,
	})
}
