package app

import (
	"context"
	"os"
	"time"

	"filterdesk/internal/config"
	"filterdesk/internal/filters"
	"filterdesk/internal/infrastructure/errors"
	"filterdesk/internal/infrastructure/logging"
	"filterdesk/internal/overlay"
	"filterdesk/internal/platform"

	"github.com/dustin/go-humanize"
)

// Operation names as the frontend calls them
const (
	opScanFilterFiles     = "scan_filter_files"
	opReadFileContent     = "read_file_content"
	opWriteFileContent    = "write_file_content"
	opDeleteFilterFile    = "delete_filter_file"
	opDeleteFilterFolder  = "delete_filter_folder"
	opCreateFilterFolder  = "create_filter_folder"
	opPathExists          = "path_exists"
	opRenameFilterFile    = "rename_filter_file"
	opOpenFolderCmd       = "open_folder_cmd"
	opOpenFileCmd         = "open_file_cmd"
	opCopySoundFile       = "copy_sound_file"
	opCreateOverlayWindow = "create_overlay_window"
)

// attachable is implemented by window hosts that need the application context
type attachable interface {
	Attach(ctx context.Context)
	Detach()
}

// Dependencies lets callers replace the OS-facing collaborators
type Dependencies struct {
	Opener     platform.Opener
	WindowHost overlay.WindowHost
}

// App is bound to the frontend; each exported method is one command
type App struct {
	ctx         context.Context
	environment string
	logger      logging.Logger
	scanner     *filters.Scanner
	files       *filters.Files
	opener      platform.Opener
	windowHost  overlay.WindowHost
	overlays    *overlay.Manager
}

// NewApp creates the application with the real shell opener and Wails window host
func NewApp(cfg *config.Config, logger logging.Logger) *App {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}

	opener := platform.NewOpener(platform.Options{
		Interpreter: cfg.Shell.Interpreter,
		FileManager: cfg.Shell.FileManager,
	}, platform.NewExecRunner(), logger)

	return NewAppWithDependencies(cfg, logger, Dependencies{
		Opener:     opener,
		WindowHost: overlay.NewWailsHost(cfg.Overlay.OpenTimeout, logger),
	})
}

// NewAppWithDependencies creates the application around the given collaborators
func NewAppWithDependencies(cfg *config.Config, logger logging.Logger, deps Dependencies) *App {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}

	scanner := filters.NewScanner(filters.ScannerOptions{
		Extension:      cfg.Scan.Extension,
		FollowSymlinks: cfg.Scan.FollowSymlinks,
		Exclude:        cfg.Scan.Exclude,
	}, logger)

	overlays := overlay.NewManager(deps.WindowHost, overlay.Options{
		Title:         cfg.Overlay.Title,
		Width:         cfg.Overlay.Width,
		Height:        cfg.Overlay.Height,
		BlockedGlobal: cfg.Overlay.BlockedGlobal,
	}, logger)

	return &App{
		environment: cfg.Environment,
		logger:      logger,
		scanner:     scanner,
		files:       filters.NewFiles(logger),
		opener:      deps.Opener,
		windowHost:  deps.WindowHost,
		overlays:    overlays,
	}
}

// Startup is called at application startup
func (a *App) Startup(ctx context.Context) {
	a.ctx = ctx

	if host, ok := a.windowHost.(attachable); ok {
		host.Attach(ctx)
	}

	a.logger.Info("Application started", "environment", a.environment)
}

// DomReady is called after front-end resources have been loaded
func (a *App) DomReady(ctx context.Context) {
	a.logger.Debug("Frontend ready")
}

// BeforeClose is called when the application is about to quit
func (a *App) BeforeClose(ctx context.Context) (prevent bool) {
	return false
}

// Shutdown is called at application termination
func (a *App) Shutdown(ctx context.Context) {
	if host, ok := a.windowHost.(attachable); ok {
		host.Detach()
	}

	a.logger.Info("Application shutdown completed")
}

// appContext returns the Wails context, or a background context before Startup
func (a *App) appContext() context.Context {
	if a.ctx == nil {
		return context.Background()
	}
	return a.ctx
}

// fail logs a command failure and flattens it to the message the frontend sees
func (a *App) fail(err error, operation string, fields map[string]interface{}) error {
	logging.LogError(a.logger, err, operation, fields)
	return errors.Flatten(err)
}

// ScanFilterFiles lists every filter file below path
func (a *App) ScanFilterFiles(path string) ([]string, error) {
	start := time.Now()
	fields := map[string]interface{}{"path": path}

	found, err := a.scanner.Scan(a.appContext(), path)
	if err != nil {
		return nil, a.fail(err, opScanFilterFiles, fields)
	}

	fields["count"] = len(found)
	logging.LogOperation(a.logger, opScanFilterFiles, time.Since(start), fields)
	return found, nil
}

// ReadFileContent returns the whole file as text
func (a *App) ReadFileContent(path string) (string, error) {
	start := time.Now()
	fields := map[string]interface{}{"path": path}

	content, err := a.files.ReadText(path)
	if err != nil {
		return "", a.fail(err, opReadFileContent, fields)
	}

	fields["bytes"] = len(content)
	logging.LogOperation(a.logger, opReadFileContent, time.Since(start), fields)
	return content, nil
}

// WriteFileContent replaces the file with content
func (a *App) WriteFileContent(path, content string) error {
	start := time.Now()
	fields := map[string]interface{}{"path": path, "bytes": len(content)}

	if err := a.files.WriteText(path, content); err != nil {
		return a.fail(err, opWriteFileContent, fields)
	}

	logging.LogOperation(a.logger, opWriteFileContent, time.Since(start), fields)
	return nil
}

// DeleteFilterFile removes a single file
func (a *App) DeleteFilterFile(path string) error {
	start := time.Now()
	fields := map[string]interface{}{"path": path}

	if err := a.files.RemoveFile(path); err != nil {
		return a.fail(err, opDeleteFilterFile, fields)
	}

	logging.LogOperation(a.logger, opDeleteFilterFile, time.Since(start), fields)
	return nil
}

// DeleteFilterFolder removes a directory recursively
func (a *App) DeleteFilterFolder(path string) error {
	start := time.Now()
	fields := map[string]interface{}{"path": path}

	if err := a.files.RemoveAll(path); err != nil {
		return a.fail(err, opDeleteFilterFolder, fields)
	}

	logging.LogOperation(a.logger, opDeleteFilterFolder, time.Since(start), fields)
	return nil
}

// CreateFilterFolder creates a directory and its missing parents
func (a *App) CreateFilterFolder(path string) error {
	start := time.Now()
	fields := map[string]interface{}{"path": path}

	if err := a.files.MkdirAll(path); err != nil {
		return a.fail(err, opCreateFilterFolder, fields)
	}

	logging.LogOperation(a.logger, opCreateFilterFolder, time.Since(start), fields)
	return nil
}

// PathExists reports whether path exists. It never fails.
func (a *App) PathExists(path string) (bool, error) {
	start := time.Now()

	exists := a.files.Exists(path)

	logging.LogOperation(a.logger, opPathExists, time.Since(start), map[string]interface{}{
		"path":   path,
		"exists": exists,
	})
	return exists, nil
}

// RenameFilterFile renames oldPath to newPath unless newPath already exists
func (a *App) RenameFilterFile(oldPath, newPath string) error {
	start := time.Now()
	fields := map[string]interface{}{"from": oldPath, "to": newPath}

	if err := a.files.Rename(oldPath, newPath); err != nil {
		return a.fail(err, opRenameFilterFile, fields)
	}

	logging.LogOperation(a.logger, opRenameFilterFile, time.Since(start), fields)
	return nil
}

// OpenFolderCmd shows path in the platform file manager
func (a *App) OpenFolderCmd(path string) error {
	start := time.Now()
	fields := map[string]interface{}{"path": path}

	if err := a.opener.OpenFolder(a.appContext(), path); err != nil {
		return a.fail(err, opOpenFolderCmd, fields)
	}

	logging.LogOperation(a.logger, opOpenFolderCmd, time.Since(start), fields)
	return nil
}

// OpenFileCmd opens path with its default application
func (a *App) OpenFileCmd(path string) error {
	start := time.Now()
	fields := map[string]interface{}{"path": path}

	if err := a.opener.OpenFile(a.appContext(), path); err != nil {
		return a.fail(err, opOpenFileCmd, fields)
	}

	logging.LogOperation(a.logger, opOpenFileCmd, time.Since(start), fields)
	return nil
}

// CopySoundFile copies src to dest, creating dest's folder and replacing dest
func (a *App) CopySoundFile(src, dest string) error {
	start := time.Now()
	fields := map[string]interface{}{"src": src, "dest": dest}

	if err := a.opener.CopyFile(a.appContext(), src, dest); err != nil {
		return a.fail(err, opCopySoundFile, fields)
	}
	if info, err := os.Stat(dest); err == nil {
		fields["size"] = humanize.Bytes(uint64(info.Size()))
	}

	logging.LogOperation(a.logger, opCopySoundFile, time.Since(start), fields)
	return nil
}

// CreateOverlayWindow opens the overlay labelled label unless it is already open
func (a *App) CreateOverlayWindow(label, targetURL string) error {
	start := time.Now()
	fields := map[string]interface{}{"label": label, "url": targetURL}

	if err := a.overlays.Create(a.appContext(), label, targetURL); err != nil {
		return a.fail(err, opCreateOverlayWindow, fields)
	}

	logging.LogOperation(a.logger, opCreateOverlayWindow, time.Since(start), fields)
	return nil
}
