package platform

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"filterdesk/internal/infrastructure/errors"
)

// prepareCopy checks that src is a regular file and creates dest's parent directory
func prepareCopy(src, dest string) (os.FileInfo, error) {
	info, err := os.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.HandleNotFound(OpCopyFile, src)
		}
		return nil, errors.HandleIOError(OpCopyFile, src, err)
	}
	if info.IsDir() {
		return nil, errors.HandleIOError(OpCopyFile, src, fmt.Errorf("source is a directory"))
	}

	parent := filepath.Dir(dest)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return nil, errors.HandleIOError(OpCopyFile, parent, err)
	}
	return info, nil
}

// copyContents streams src into dest, truncating dest and giving it src's permission bits
func copyContents(src, dest string, info os.FileInfo) (int64, error) {
	if destInfo, err := os.Stat(dest); err == nil && os.SameFile(info, destInfo) {
		return info.Size(), nil
	}

	in, err := os.Open(src)
	if err != nil {
		return 0, errors.HandlePathError(OpCopyFile, src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return 0, errors.HandleIOError(OpCopyFile, dest, err)
	}

	n, err := io.Copy(out, in)
	if err != nil {
		out.Close()
		return n, errors.HandleIOError(OpCopyFile, dest, err)
	}
	if err := out.Close(); err != nil {
		return n, errors.HandleIOError(OpCopyFile, dest, err)
	}
	if err := os.Chmod(dest, info.Mode().Perm()); err != nil {
		return n, errors.HandleIOError(OpCopyFile, dest, err)
	}
	return n, nil
}
