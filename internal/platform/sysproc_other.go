//go:build !windows

package platform

import "os/exec"

// No console window exists to suppress outside Windows
func hideConsole(*exec.Cmd) {}
