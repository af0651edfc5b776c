//go:build !windows

package platform

import "filterdesk/internal/infrastructure/logging"

// NewOpener creates the Opener for macOS and other Unix desktops.
// Options only apply on Windows.
func NewOpener(_ Options, runner Runner, logger logging.Logger) Opener {
	return NewNativeOpener(DefaultLauncher, runner, logger)
}
