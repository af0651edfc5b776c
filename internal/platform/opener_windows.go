//go:build windows

package platform

import "filterdesk/internal/infrastructure/logging"

// NewOpener creates the Opener for Windows
func NewOpener(options Options, runner Runner, logger logging.Logger) Opener {
	return NewPowerShellOpener(options, runner, logger)
}
