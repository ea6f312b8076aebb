package fsops

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644

	// copyBufSize is the fixed transfer buffer for file content copies.
	copyBufSize = 8 * 1024
)

// validateName rejects names that are empty or would escape the parent
// directory when joined.
func validateName(op, name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsRune(name, os.PathSeparator) {
		return errKind(op, name, KindInvalidArgument, errors.New("invalid entry name"))
	}
	return nil
}

// CreateDirectory creates one new directory under parent with default
// permissions. It is deliberately not idempotent: a second call with the
// same name fails with AlreadyExists.
func CreateDirectory(parent, name string) error {
	if err := validateName("mkdir", name); err != nil {
		return err
	}
	path := filepath.Join(parent, name)
	if err := os.Mkdir(path, dirPerm); err != nil {
		return wrap("mkdir", path, err)
	}
	return nil
}

// CreateFile creates a new empty file under parent with exclusive-creation
// semantics: an existing entry of the same name fails with AlreadyExists,
// never overwrites.
func CreateFile(parent, name string) error {
	if err := validateName("create", name); err != nil {
		return err
	}
	path := filepath.Join(parent, name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePerm)
	if err != nil {
		return wrap("create", path, err)
	}
	return f.Close()
}

// Rename renames an entry within its parent directory. Renaming onto an
// existing name is rejected with AlreadyExists rather than inheriting
// platform overwrite semantics. Same-volume renames are a single atomic
// metadata update; no data moves.
func Rename(oldPath, newName string) error {
	if err := validateName("rename", newName); err != nil {
		return err
	}
	newPath := filepath.Join(filepath.Dir(oldPath), newName)
	if _, err := os.Lstat(newPath); err == nil {
		return errKind("rename", newPath, KindAlreadyExists, fs.ErrExist)
	}
	if err := os.Rename(oldPath, newPath); err != nil {
		return wrap("rename", oldPath, err)
	}
	return nil
}

// MoveItem moves an entry into destDir under its existing base name with a
// single rename. It never degrades to copy+delete, so a same-volume move of
// a multi-gigabyte file completes in constant time; a cross-volume move
// fails with IoFailure. An existing destination name is rejected.
func MoveItem(sourcePath, destDir string) error {
	destPath := filepath.Join(destDir, filepath.Base(sourcePath))
	if _, err := os.Lstat(destPath); err == nil {
		return errKind("move", destPath, KindAlreadyExists, fs.ErrExist)
	}
	if err := os.Rename(sourcePath, destPath); err != nil {
		return wrap("move", sourcePath, err)
	}
	return nil
}

// DeleteTree deletes a single file, or a directory and everything beneath
// it, children strictly before their directory. Symbolic links are removed
// as links and never followed, so a link out of the tree cannot drag
// unrelated parts of the filesystem into the deletion.
//
// Removal is best-effort: a failing node does not stop the remaining nodes,
// but any failure makes the whole operation fail. Deleting a path that does
// not exist fails with NotFound.
func DeleteTree(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		return wrap("delete", path, err)
	}
	if !info.IsDir() {
		if err := os.Remove(path); err != nil {
			return wrap("delete", path, err)
		}
		return nil
	}

	// Post-order traversal with an explicit work stack instead of
	// self-recursion, so tree depth never risks goroutine stack growth.
	type frame struct {
		path     string
		expanded bool
	}
	stack := []frame{{path: path}}
	var failed []error

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.expanded {
			// Children already handled; the directory should be empty now.
			if err := os.Remove(top.path); err != nil {
				failed = append(failed, wrap("delete", top.path, err))
			}
			stack = stack[:len(stack)-1]
			continue
		}
		top.expanded = true

		children, err := os.ReadDir(top.path)
		if err != nil {
			failed = append(failed, wrap("delete", top.path, err))
			stack = stack[:len(stack)-1]
			continue
		}
		for _, child := range children {
			childPath := filepath.Join(top.path, child.Name())
			// DirEntry type comes from the directory entry itself, so a
			// symlink to a directory reports as a link and is removed here.
			if child.IsDir() {
				stack = append(stack, frame{path: childPath})
				continue
			}
			if err := os.Remove(childPath); err != nil {
				failed = append(failed, wrap("delete", childPath, err))
			}
		}
	}

	if len(failed) > 0 {
		return &TreeError{Op: "delete", Path: path, Errs: failed}
	}
	return nil
}

// CopyItem copies a file or directory tree into destDir under the source's
// base name. One metadata snapshot decides the source kind. Directories are
// copied pre-order: the destination directory exists (mirroring the source
// permission bits) before any child is placed inside it. A failing child
// does not stop its siblings; any failure makes the aggregate fail.
func CopyItem(sourcePath, destDir string) error {
	info, err := os.Lstat(sourcePath)
	if err != nil {
		return wrap("copy", sourcePath, err)
	}
	return copyNode(sourcePath, filepath.Join(destDir, filepath.Base(sourcePath)), info)
}

func copyNode(src, dest string, info fs.FileInfo) error {
	switch {
	case info.Mode()&fs.ModeSymlink != 0:
		return copyLink(src, dest)
	case info.IsDir():
		return copyDir(src, dest, info.Mode().Perm())
	default:
		return copyFileContents(src, dest)
	}
}

// copyLink recreates a symbolic link instead of dereferencing it into
// target content.
func copyLink(src, dest string) error {
	target, err := os.Readlink(src)
	if err != nil {
		return wrap("copy", src, err)
	}
	if err := os.Symlink(target, dest); err != nil {
		return wrap("copy", dest, err)
	}
	return nil
}

func copyDir(src, dest string, perm fs.FileMode) error {
	if err := os.Mkdir(dest, perm); err != nil {
		return wrap("copy", dest, err)
	}
	children, err := os.ReadDir(src)
	if err != nil {
		return wrap("copy", src, err)
	}

	var failed []error
	for _, child := range children {
		info, err := child.Info()
		if err != nil {
			failed = append(failed, wrap("copy", filepath.Join(src, child.Name()), err))
			continue
		}
		childSrc := filepath.Join(src, child.Name())
		childDest := filepath.Join(dest, child.Name())
		if err := copyNode(childSrc, childDest, info); err != nil {
			failed = append(failed, err)
		}
	}
	if len(failed) > 0 {
		return &TreeError{Op: "copy", Path: src, Errs: failed}
	}
	return nil
}

// copyFileContents streams src into a truncating create of dest through a
// fixed-size buffer. A short write (typically disk-full) fails the copy.
func copyFileContents(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return wrap("copy", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePerm)
	if err != nil {
		return wrap("copy", dest, err)
	}

	buf := make([]byte, copyBufSize)
	if _, err := io.CopyBuffer(out, in, buf); err != nil {
		out.Close()
		return errKind("copy", dest, KindIoFailure, err)
	}
	if err := out.Close(); err != nil {
		return errKind("copy", dest, KindIoFailure, err)
	}
	return nil
}
