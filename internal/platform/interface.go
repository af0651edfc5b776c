package platform

import "context"

// Opener reveals, opens and copies paths with the operating system's own tools
type Opener interface {
	// OpenFolder shows path in the platform file manager
	OpenFolder(ctx context.Context, path string) error
	// OpenFile starts path with its registered default application
	OpenFile(ctx context.Context, path string) error
	// CopyFile copies src over dest, creating dest's parent directory first
	CopyFile(ctx context.Context, src, dest string) error
}

// Options names the executables used by the PowerShell opener
type Options struct {
	Interpreter string
	FileManager string
}

// Operation names reported in command errors
const (
	OpOpenFolder = "open_folder"
	OpOpenFile   = "open_file"
	OpCopyFile   = "copy_file"
)
