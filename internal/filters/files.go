package filters

import (
	"fmt"
	"os"
	"unicode/utf8"

	"filterdesk/internal/infrastructure/errors"
	"filterdesk/internal/infrastructure/logging"
)

// Operation names for the file-system primitives
const (
	OpReadFile     = "read_file_content"
	OpWriteFile    = "write_file_content"
	OpDeleteFile   = "delete_filter_file"
	OpDeleteFolder = "delete_filter_folder"
	OpCreateFolder = "create_filter_folder"
	OpPathExists   = "path_exists"
	OpRenameFile   = "rename_filter_file"
)

// Files exposes the whole-file primitives used by the filter editor
type Files struct {
	logger logging.Logger
}

// NewFiles creates the file-system primitives
func NewFiles(logger logging.Logger) *Files {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	return &Files{logger: logger}
}

// ReadText returns the whole file as text; content that is not UTF-8 is an error
func (f *Files) ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.HandlePathError(OpReadFile, path, err)
	}
	if !utf8.Valid(data) {
		return "", errors.HandleIOError(OpReadFile, path, fmt.Errorf("stream did not contain valid UTF-8"))
	}
	return string(data), nil
}

// WriteText replaces the file with content, creating it if needed.
// The parent directory must already exist.
func (f *Files) WriteText(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return errors.HandleIOError(OpWriteFile, path, err)
	}
	return nil
}

// RemoveFile deletes a single file; directories are refused
func (f *Files) RemoveFile(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		return errors.HandlePathError(OpDeleteFile, path, err)
	}
	if info.IsDir() {
		return errors.HandleIOError(OpDeleteFile, path, fmt.Errorf("is a directory"))
	}
	if err := os.Remove(path); err != nil {
		return errors.HandlePathError(OpDeleteFile, path, err)
	}
	return nil
}

// RemoveAll deletes a directory and everything below it. The directory must exist.
func (f *Files) RemoveAll(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		return errors.HandlePathError(OpDeleteFolder, path, err)
	}
	if !info.IsDir() {
		return errors.HandleIOError(OpDeleteFolder, path, fmt.Errorf("not a directory"))
	}
	if err := os.RemoveAll(path); err != nil {
		return errors.HandleIOError(OpDeleteFolder, path, err)
	}
	f.logger.Debug("Removed folder", "path", path)
	return nil
}

// MkdirAll creates path and any missing parents; an existing directory is fine
func (f *Files) MkdirAll(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return errors.HandleIOError(OpCreateFolder, path, err)
	}
	return nil
}

// Exists reports whether path resolves to anything. Errors other than absence,
// such as permission failures, also report false.
func (f *Files) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Rename moves oldPath to newPath, refusing to replace an existing destination.
// The check and the rename are separate steps.
func (f *Files) Rename(oldPath, newPath string) error {
	if _, err := os.Lstat(newPath); err == nil {
		return errors.HandleAlreadyExists(OpRenameFile, newPath)
	}
	if err := os.Rename(oldPath, newPath); err != nil {
		return errors.HandlePathError(OpRenameFile, oldPath, err)
	}
	return nil
}
