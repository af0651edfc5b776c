//go:build !windows

package platform

import (
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecRunner(t *testing.T) {
	for _, name := range []string{"true", "false"} {
		if _, err := exec.LookPath(name); err != nil {
			t.Skipf("%s not available: %v", name, err)
		}
	}

	runner := NewExecRunner()
	ctx := context.Background()

	require.NoError(t, runner.Run(ctx, Command{Name: "true"}))

	err := runner.Run(ctx, Command{Name: "false", HideConsole: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "process exited with exit status 1")

	var exitErr *exec.ExitError
	assert.ErrorAs(t, err, &exitErr)

	err = runner.Run(ctx, Command{Name: "filterdesk-no-such-binary"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to start filterdesk-no-such-binary")
}

func TestExecRunner_IgnoresCancellation(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skipf("sh not available: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewExecRunner().Run(ctx, Command{Name: "sh", Args: []string{"-c", "sleep 0.1"}})

	assert.NoError(t, err, "a cancelled context must not stop the child")
}
