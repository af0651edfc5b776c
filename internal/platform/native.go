package platform

import (
	"context"

	"filterdesk/internal/infrastructure/errors"
	"filterdesk/internal/infrastructure/logging"

	"github.com/dustin/go-humanize"
)

// NativeOpener hands paths to the desktop's launcher utility as a plain
// argument vector, with no shell in between
type NativeOpener struct {
	launcher string
	runner   Runner
	logger   logging.Logger
}

// NewNativeOpener creates an opener around launcher ("open", "xdg-open")
func NewNativeOpener(launcher string, runner Runner, logger logging.Logger) *NativeOpener {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	if runner == nil {
		runner = NewExecRunner()
	}
	return &NativeOpener{
		launcher: launcher,
		runner:   runner,
		logger:   logger,
	}
}

func (n *NativeOpener) OpenFolder(ctx context.Context, path string) error {
	return n.launch(ctx, OpOpenFolder, path)
}

func (n *NativeOpener) OpenFile(ctx context.Context, path string) error {
	return n.launch(ctx, OpOpenFile, path)
}

// CopyFile copies with file-system primitives after creating dest's parent directory
func (n *NativeOpener) CopyFile(ctx context.Context, src, dest string) error {
	info, err := prepareCopy(src, dest)
	if err != nil {
		return err
	}

	written, err := copyContents(src, dest, info)
	if err != nil {
		return err
	}

	n.logger.Debug("Copied file",
		"operation", OpCopyFile,
		"src", src,
		"dest", dest,
		"size", humanize.Bytes(uint64(written)),
	)
	return nil
}

func (n *NativeOpener) launch(ctx context.Context, op, path string) error {
	cmd := Command{Name: n.launcher, Args: []string{path}}
	n.logger.Debug("Running launcher", "operation", op, "command", cmd.String())

	if err := n.runner.Run(ctx, cmd); err != nil {
		return errors.HandleProcessError(op, cmd.String(), err)
	}
	return nil
}
