package fsops_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/filedeck/filedeck/internal/fsops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildTree creates root/{a.txt, sub/b.txt, sub/deep/c.bin} under parent and
// returns the root path.
func buildTree(t *testing.T, parent string) string {
	t.Helper()
	root := filepath.Join(parent, "root")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub", "deep"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("alpha"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "b.txt"), []byte("beta"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "deep", "c.bin"), []byte{0, 1, 2, 3}, 0o600))
	return root
}

func TestCreateDirectoryNotIdempotent(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, fsops.CreateDirectory(dir, "proj"))
	info, err := os.Stat(filepath.Join(dir, "proj"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// The second call must fail, never silently succeed.
	err = fsops.CreateDirectory(dir, "proj")
	require.Error(t, err)
	assert.Equal(t, fsops.KindAlreadyExists, fsops.KindOf(err))
}

func TestCreateDirectoryInvalidName(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"", ".", "..", "a/b"} {
		err := fsops.CreateDirectory(dir, name)
		require.Error(t, err, "name=%q", name)
		assert.Equal(t, fsops.KindInvalidArgument, fsops.KindOf(err), "name=%q", name)
	}
}

func TestCreateFileExclusive(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, fsops.CreateDirectory(dir, "proj"))
	proj := filepath.Join(dir, "proj")

	require.NoError(t, fsops.CreateFile(proj, "readme.txt"))

	err := fsops.CreateFile(proj, "readme.txt")
	require.Error(t, err)
	assert.Equal(t, fsops.KindAlreadyExists, fsops.KindOf(err))

	entries, err := fsops.ListDirectory(proj)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRename(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "old.txt")
	require.NoError(t, os.WriteFile(old, []byte("x"), 0o644))

	require.NoError(t, fsops.Rename(old, "new.txt"))
	assert.NoFileExists(t, old)
	assert.FileExists(t, filepath.Join(dir, "new.txt"))
}

func TestRenameOntoExistingRejected(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("b"), 0o644))

	err := fsops.Rename(filepath.Join(dir, "a.txt"), "b.txt")
	require.Error(t, err)
	assert.Equal(t, fsops.KindAlreadyExists, fsops.KindOf(err))

	// Nothing was overwritten.
	data, err := os.ReadFile(filepath.Join(dir, "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "b", string(data))
}

func TestRenameMissing(t *testing.T) {
	err := fsops.Rename(filepath.Join(t.TempDir(), "ghost"), "renamed")
	require.Error(t, err)
	assert.Equal(t, fsops.KindNotFound, fsops.KindOf(err))
}

func TestMoveItem(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(src, []byte("payload"), 0o644))
	require.NoError(t, fsops.CreateDirectory(dir, "dest"))

	require.NoError(t, fsops.MoveItem(src, filepath.Join(dir, "dest")))
	assert.NoFileExists(t, src)

	data, err := os.ReadFile(filepath.Join(dir, "dest", "file.txt"))
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestMoveItemDestinationExists(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "file.txt"), []byte("new"), 0o644))
	require.NoError(t, fsops.CreateDirectory(dir, "dest"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dest", "file.txt"), []byte("old"), 0o644))

	err := fsops.MoveItem(filepath.Join(dir, "file.txt"), filepath.Join(dir, "dest"))
	require.Error(t, err)
	assert.Equal(t, fsops.KindAlreadyExists, fsops.KindOf(err))
}

func TestMoveItemMissingSource(t *testing.T) {
	dir := t.TempDir()
	err := fsops.MoveItem(filepath.Join(dir, "ghost"), dir)
	require.Error(t, err)
	assert.Equal(t, fsops.KindNotFound, fsops.KindOf(err))
}

func TestDeleteTreeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "single.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	require.NoError(t, fsops.DeleteTree(path))
	assert.NoFileExists(t, path)
}

func TestDeleteTreeRecursive(t *testing.T) {
	root := buildTree(t, t.TempDir())

	require.NoError(t, fsops.DeleteTree(root))
	assert.NoDirExists(t, root)
}

func TestDeleteTreeIdempotenceLaw(t *testing.T) {
	root := buildTree(t, t.TempDir())
	require.NoError(t, fsops.DeleteTree(root))

	// The second delete must fail with NotFound, never succeed silently.
	err := fsops.DeleteTree(root)
	require.Error(t, err)
	assert.Equal(t, fsops.KindNotFound, fsops.KindOf(err))
}

func TestDeleteTreeDoesNotFollowLinks(t *testing.T) {
	base := t.TempDir()
	outside := filepath.Join(base, "outside")
	require.NoError(t, os.Mkdir(outside, 0o755))
	keep := filepath.Join(outside, "keep.txt")
	require.NoError(t, os.WriteFile(keep, []byte("survives"), 0o644))

	doomed := filepath.Join(base, "doomed")
	require.NoError(t, os.Mkdir(doomed, 0o755))
	require.NoError(t, os.Symlink(outside, filepath.Join(doomed, "escape")))
	require.NoError(t, os.WriteFile(filepath.Join(doomed, "f.txt"), []byte("x"), 0o644))

	require.NoError(t, fsops.DeleteTree(doomed))
	assert.NoDirExists(t, doomed)
	// The link target was never entered.
	assert.FileExists(t, keep)
}

func TestCopyItemRoundTrip(t *testing.T) {
	base := t.TempDir()
	root := buildTree(t, base)
	dest := filepath.Join(base, "dest")
	require.NoError(t, os.Mkdir(dest, 0o755))

	require.NoError(t, fsops.CopyItem(root, dest))

	for _, rel := range []string{
		filepath.Join("a.txt"),
		filepath.Join("sub", "b.txt"),
		filepath.Join("sub", "deep", "c.bin"),
	} {
		want, err := os.ReadFile(filepath.Join(root, rel))
		require.NoError(t, err)
		got, err := os.ReadFile(filepath.Join(dest, "root", rel))
		require.NoError(t, err)
		assert.Equal(t, want, got, "content mismatch for %s", rel)
	}

	info, err := os.Stat(filepath.Join(dest, "root", "sub"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestCopyItemSingleFileTruncates(t *testing.T) {
	base := t.TempDir()
	src := filepath.Join(base, "data.txt")
	require.NoError(t, os.WriteFile(src, []byte("short"), 0o644))
	dest := filepath.Join(base, "dest")
	require.NoError(t, os.Mkdir(dest, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dest, "data.txt"), []byte("much longer stale content"), 0o644))

	require.NoError(t, fsops.CopyItem(src, dest))

	data, err := os.ReadFile(filepath.Join(dest, "data.txt"))
	require.NoError(t, err)
	assert.Equal(t, "short", string(data))
}

func TestCopyItemPreservesLinks(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, "root")
	require.NoError(t, os.Mkdir(root, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "target.txt"), []byte("t"), 0o644))
	require.NoError(t, os.Symlink("target.txt", filepath.Join(root, "link")))
	dest := filepath.Join(base, "dest")
	require.NoError(t, os.Mkdir(dest, 0o755))

	require.NoError(t, fsops.CopyItem(root, dest))

	target, err := os.Readlink(filepath.Join(dest, "root", "link"))
	require.NoError(t, err)
	assert.Equal(t, "target.txt", target)
}

func TestCopyItemMissingSource(t *testing.T) {
	dir := t.TempDir()
	err := fsops.CopyItem(filepath.Join(dir, "ghost"), dir)
	require.Error(t, err)
	assert.Equal(t, fsops.KindNotFound, fsops.KindOf(err))
}
