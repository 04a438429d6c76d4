package smcl

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// Runner executes the client binary. ExecRunner is the production implementation.
type Runner interface {
	Run(ctx context.Context, path string, args []string) (*Result, error)
}

// ExecRunner runs the binary as a child process
type ExecRunner struct{}

// Run executes path with args and captures its output.
// A non-zero exit is reported in Result.ExitCode, not as an error.
func (ExecRunner) Run(ctx context.Context, path string, args []string) (*Result, error) {
	startTime := time.Now()

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Env = childEnv(path)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := &Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(startTime),
	}

	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			result.ExitCode = exitError.ExitCode()
			if result.ExitCode < 0 {
				// killed by a signal
				result.ExitCode = 1
			}
			return result, nil
		}
		return nil, errors.Join(ErrToolNotFound, err)
	}

	return result, nil
}

// childEnv points the loader at the client's bundled libraries
func childEnv(path string) []string {
	return append(os.Environ(), "LD_LIBRARY_PATH="+filepath.Dir(path))
}
