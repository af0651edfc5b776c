package platform

import (
	"context"

	"filterdesk/internal/infrastructure/errors"
	"filterdesk/internal/infrastructure/logging"
)

// PowerShellOpener performs every action through a hidden PowerShell statement
type PowerShellOpener struct {
	options Options
	runner  Runner
	logger  logging.Logger
}

// NewPowerShellOpener creates an opener that shells out to options.Interpreter
func NewPowerShellOpener(options Options, runner Runner, logger logging.Logger) *PowerShellOpener {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	if runner == nil {
		runner = NewExecRunner()
	}
	return &PowerShellOpener{
		options: options,
		runner:  runner,
		logger:  logger,
	}
}

func (p *PowerShellOpener) OpenFolder(ctx context.Context, path string) error {
	return p.run(ctx, OpOpenFolder, OpenFolderStatement(p.options.FileManager, path))
}

func (p *PowerShellOpener) OpenFile(ctx context.Context, path string) error {
	return p.run(ctx, OpOpenFile, OpenFileStatement(path))
}

// CopyFile creates dest's parent directory, then runs Copy-Item. The parent is
// left in place if the copy fails.
func (p *PowerShellOpener) CopyFile(ctx context.Context, src, dest string) error {
	if _, err := prepareCopy(src, dest); err != nil {
		return err
	}
	return p.run(ctx, OpCopyFile, CopyStatement(src, dest))
}

func (p *PowerShellOpener) run(ctx context.Context, op, statement string) error {
	cmd := PowerShellCommand(p.options.Interpreter, statement)
	p.logger.Debug("Running shell command", "operation", op, "command", cmd.String())

	if err := p.runner.Run(ctx, cmd); err != nil {
		return errors.HandleProcessError(op, cmd.String(), err)
	}
	return nil
}
