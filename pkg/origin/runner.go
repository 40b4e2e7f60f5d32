package origin

import (
	"bytes"
	"context"
	"os/exec"
)

// Result carries the captured output of an external command
type Result struct {
	Stdout string
	Stderr string
}

// Runner invokes an external tool and captures its output. The run blocks
// until the tool exits; cancellation comes from the context.
type Runner interface {
	Run(ctx context.Context, dir string, name string, args ...string) (Result, error)
}

// ExecRunner runs commands with os/exec
type ExecRunner struct{}

// Run executes name with args in dir (empty dir means the current working
// directory) and captures stdout and stderr
func (ExecRunner) Run(ctx context.Context, dir string, name string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return Result{Stdout: stdout.String(), Stderr: stderr.String()}, err
}
