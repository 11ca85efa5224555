package compose

import (
	"bytes"
	"context"
	"io"
	"os/exec"
)

// Runner starts external commands.
type Runner interface {
	// Run executes name with args in dir and captures its output.
	Run(ctx context.Context, dir, name string, args ...string) (stdout, stderr string, err error)

	// Stream executes name with args in dir, copying its output to w.
	Stream(ctx context.Context, dir string, w io.Writer, name string, args ...string) error

	// LookPath reports where name is installed.
	LookPath(name string) (string, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run implements Runner.
func (ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// Stream implements Runner.
func (ExecRunner) Stream(ctx context.Context, dir string, w io.Writer, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = w
	cmd.Stderr = w
	return cmd.Run()
}

// LookPath implements Runner.
func (ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
