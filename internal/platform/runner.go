package platform

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// Runner starts a command and blocks until it exits
type Runner interface {
	Run(ctx context.Context, cmd Command) error
}

// ExecRunner runs commands as child processes
type ExecRunner struct{}

// NewExecRunner creates a runner backed by os/exec
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run spawns cmd and waits for it. Spawn failures, wait failures and non-zero
// exit statuses are all returned as errors; the exit code is not interpreted.
// The child is not tied to ctx: a shell call runs until the process exits,
// even across application shutdown.
func (r *ExecRunner) Run(_ context.Context, cmd Command) error {
	c := exec.Command(cmd.Name, cmd.Args...)
	if cmd.HideConsole {
		hideConsole(c)
	}

	if err := c.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", cmd.Name, err)
	}

	if err := c.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("process exited with %w", err)
		}
		return fmt.Errorf("failed to wait for %s: %w", cmd.Name, err)
	}
	return nil
}
