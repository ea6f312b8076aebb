package fsops

import (
	"archive/tar"
	"archive/zip"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// TarCompression selects the compression applied around a tar stream.
type TarCompression string

const (
	TarNone TarCompression = "none"
	TarGzip TarCompression = "gzip"
	TarZstd TarCompression = "zstd"
)

// ArchiveZip compresses a file or directory tree into a zip container at
// destPath, truncating any existing file there. Entry names are the source's
// base name plus the path relative to the source — host path segments above
// the source never leak into the archive. Directory entries are zero-length
// names ending in "/".
//
// The archive is only valid once the final close completes; the operation's
// result is the result of that finalization. A partial container left behind
// after a failure is never reported as success.
func ArchiveZip(sourcePath, destPath string) error {
	info, err := os.Lstat(sourcePath)
	if err != nil {
		return wrap("archive", sourcePath, err)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return errKind("archive", destPath, KindArchiveFailure, err)
	}

	zw := zip.NewWriter(out)
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, flate.BestSpeed)
	})

	base := filepath.Base(sourcePath)
	if info.IsDir() {
		if _, err = zw.Create(base + "/"); err == nil {
			err = addZipTree(zw, sourcePath, base+"/")
		}
	} else {
		err = addZipFile(zw, sourcePath, base)
	}
	if err != nil {
		zw.Close()
		out.Close()
		return errKind("archive", sourcePath, KindArchiveFailure, err)
	}

	if err := zw.Close(); err != nil {
		out.Close()
		return errKind("archive", destPath, KindArchiveFailure, err)
	}
	if err := out.Close(); err != nil {
		return errKind("archive", destPath, KindArchiveFailure, err)
	}
	return nil
}

// addZipTree walks dir recursively, emitting a directory entry for every
// subdirectory and a file entry for every file. Archive-internal paths are
// built from the parent's archive path, not the filesystem path.
func addZipTree(zw *zip.Writer, dir, prefix string) error {
	children, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, child := range children {
		fsPath := filepath.Join(dir, child.Name())
		zipPath := prefix + child.Name()
		if child.IsDir() {
			if _, err := zw.Create(zipPath + "/"); err != nil {
				return err
			}
			if err := addZipTree(zw, fsPath, zipPath+"/"); err != nil {
				return err
			}
			continue
		}
		if err := addZipFile(zw, fsPath, zipPath); err != nil {
			return err
		}
	}
	return nil
}

// addZipFile streams one file from disk into the archive without buffering
// the whole file in memory.
func addZipFile(zw *zip.Writer, path, zipPath string) error {
	w, err := zw.Create(zipPath)
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(w, f)
	return err
}

// ArchiveTar writes a file or directory tree into a tar container at
// destPath with the selected compression, following the same path-mapping
// rules as ArchiveZip.
func ArchiveTar(sourcePath, destPath string, compression TarCompression) error {
	info, err := os.Lstat(sourcePath)
	if err != nil {
		return wrap("archive", sourcePath, err)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return errKind("archive", destPath, KindArchiveFailure, err)
	}

	var (
		tw     *tar.Writer
		closer io.Closer
	)
	switch compression {
	case TarNone:
		tw = tar.NewWriter(out)
	case TarGzip:
		gz := gzip.NewWriter(out)
		closer = gz
		tw = tar.NewWriter(gz)
	case TarZstd:
		zw, err := zstd.NewWriter(out)
		if err != nil {
			out.Close()
			return errKind("archive", destPath, KindArchiveFailure, err)
		}
		closer = zw
		tw = tar.NewWriter(zw)
	default:
		out.Close()
		return errKind("archive", destPath, KindInvalidArgument,
			errors.New("unknown compression: "+string(compression)))
	}

	base := filepath.Base(sourcePath)
	if info.IsDir() {
		if err = writeTarDir(tw, base+"/", info); err == nil {
			err = addTarTree(tw, sourcePath, base+"/")
		}
	} else {
		err = addTarFile(tw, sourcePath, base, info)
	}
	if err == nil {
		err = tw.Close()
	} else {
		tw.Close()
	}
	if closer != nil {
		if cerr := closer.Close(); err == nil {
			err = cerr
		}
	}
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return errKind("archive", destPath, KindArchiveFailure, err)
	}
	return nil
}

func writeTarDir(tw *tar.Writer, name string, info os.FileInfo) error {
	return tw.WriteHeader(&tar.Header{
		Typeflag: tar.TypeDir,
		Name:     name,
		Mode:     int64(info.Mode().Perm()),
		ModTime:  info.ModTime(),
	})
}

func addTarTree(tw *tar.Writer, dir, prefix string) error {
	children, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, child := range children {
		fsPath := filepath.Join(dir, child.Name())
		info, err := child.Info()
		if err != nil {
			return err
		}
		tarPath := prefix + child.Name()
		if child.Type()&os.ModeSymlink != 0 {
			target, err := os.Readlink(fsPath)
			if err != nil {
				return err
			}
			if err := tw.WriteHeader(&tar.Header{
				Typeflag: tar.TypeSymlink,
				Name:     tarPath,
				Linkname: target,
				ModTime:  info.ModTime(),
			}); err != nil {
				return err
			}
			continue
		}
		if child.IsDir() {
			if err := writeTarDir(tw, tarPath+"/", info); err != nil {
				return err
			}
			if err := addTarTree(tw, fsPath, tarPath+"/"); err != nil {
				return err
			}
			continue
		}
		if err := addTarFile(tw, fsPath, tarPath, info); err != nil {
			return err
		}
	}
	return nil
}

func addTarFile(tw *tar.Writer, path, tarPath string, info os.FileInfo) error {
	if err := tw.WriteHeader(&tar.Header{
		Typeflag: tar.TypeReg,
		Name:     tarPath,
		Size:     info.Size(),
		Mode:     int64(info.Mode().Perm()),
		ModTime:  info.ModTime(),
	}); err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(tw, f)
	return err
}
