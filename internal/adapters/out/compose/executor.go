// Package compose implements the declarative executor by driving a compose CLI.
package compose

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bnema/mediastack/internal/domain"
	"github.com/bnema/mediastack/internal/logging"
)

// Executor implements out.ComposeExecutor.
type Executor struct {
	ec     domain.ExecutionContext
	runner Runner
	// exists reports whether a file is present; swapped in tests.
	exists func(path string) bool
}

// NewExecutor creates an executor bound to the project described by ec.
func NewExecutor(ec domain.ExecutionContext, runner Runner) *Executor {
	return &Executor{
		ec:     ec,
		runner: runner,
		exists: fileExists,
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func adapterCtx(ctx context.Context, action string) context.Context {
	return logging.CtxWithFields(ctx,
		logging.FieldLayer, "adapter",
		logging.FieldAdapter, "compose",
		logging.FieldAction, action,
	)
}

// projectArgs returns the arguments that bind every call to the project.
func (e *Executor) projectArgs() []string {
	args := withArgs(e.ec.ComposeCommand[1:])
	if e.ec.ProjectName != "" {
		args = append(args, "-p", e.ec.ProjectName)
	}
	if e.ec.ComposeFile != "" {
		args = append(args, "-f", e.ec.ComposeFile)
	}
	if e.ec.EnvFile != "" && e.exists(e.ec.EnvFile) {
		args = append(args, "--env-file", e.ec.EnvFile)
	}
	return args
}

func (e *Executor) command(sub ...string) (string, []string) {
	return e.ec.ComposeCommand[0], append(e.projectArgs(), sub...)
}

func (e *Executor) run(ctx context.Context, sub ...string) (string, error) {
	log := logging.FromCtx(ctx)

	name, args := e.command(sub...)
	log.Debug("running compose", "command", name+" "+strings.Join(args, " "))

	stdout, stderr, err := e.runner.Run(ctx, e.ec.ProjectDir, name, args...)
	if err != nil {
		msg := strings.TrimSpace(stderr)
		if msg == "" {
			msg = strings.TrimSpace(stdout)
		}
		return stdout, fmt.Errorf("compose %s failed: %w: %s", sub[0], err, msg)
	}
	return stdout, nil
}

// Version returns the compose release reported by the binary.
func (e *Executor) Version(ctx context.Context) (string, error) {
	ctx = adapterCtx(ctx, "Version")

	name := e.ec.ComposeCommand[0]
	base := e.ec.ComposeCommand[1:]

	out, _, err := e.runner.Run(ctx, "", name, withArgs(base, "version", "--short")...)
	if err != nil || strings.TrimSpace(out) == "" {
		var runErr error
		out, _, runErr = e.runner.Run(ctx, "", name, withArgs(base, "version")...)
		if runErr != nil {
			return "", fmt.Errorf("failed to read compose version: %w", runErr)
		}
	}

	v, err := ParseVersion(out)
	if err != nil {
		return "", err
	}
	return v.Original(), nil
}

// Up creates and starts services in the background.
func (e *Executor) Up(ctx context.Context, services []string) error {
	ctx = adapterCtx(ctx, "Up")
	_, err := e.run(ctx, append([]string{"up", "-d"}, services...)...)
	return err
}

// Down removes the project containers and networks it created. Volumes are kept.
func (e *Executor) Down(ctx context.Context, removeOrphans bool) error {
	ctx = adapterCtx(ctx, "Down")
	args := []string{"down"}
	if removeOrphans {
		args = append(args, "--remove-orphans")
	}
	_, err := e.run(ctx, args...)
	return err
}

// Stop stops services without removing them.
func (e *Executor) Stop(ctx context.Context, services []string) error {
	ctx = adapterCtx(ctx, "Stop")
	_, err := e.run(ctx, append([]string{"stop"}, services...)...)
	return err
}

// Restart restarts services.
func (e *Executor) Restart(ctx context.Context, services []string) error {
	ctx = adapterCtx(ctx, "Restart")
	_, err := e.run(ctx, append([]string{"restart"}, services...)...)
	return err
}

// Remove stops and removes the containers of services.
func (e *Executor) Remove(ctx context.Context, services []string) error {
	ctx = adapterCtx(ctx, "Remove")
	_, err := e.run(ctx, append([]string{"rm", "--stop", "--force"}, services...)...)
	return err
}

// Pull fetches images for services.
func (e *Executor) Pull(ctx context.Context, services []string, ignoreFailures bool) error {
	ctx = adapterCtx(ctx, "Pull")
	args := []string{"pull"}
	if ignoreFailures {
		args = append(args, "--ignore-pull-failures")
	}
	_, err := e.run(ctx, append(args, services...)...)
	return err
}

// Ps returns the project process table.
func (e *Executor) Ps(ctx context.Context, all bool) ([]domain.ServiceContainer, error) {
	ctx = adapterCtx(ctx, "Ps")
	args := []string{"ps", "--format", "json"}
	if all {
		args = append(args, "--all")
	}

	out, err := e.run(ctx, args...)
	if err != nil {
		return nil, err
	}
	return parsePs(out)
}

// Logs streams service logs to w. Cancelling ctx ends the stream without error.
func (e *Executor) Logs(ctx context.Context, services []string, follow bool, tail string, w io.Writer) error {
	ctx = adapterCtx(ctx, "Logs")
	log := logging.FromCtx(ctx)

	sub := []string{"logs"}
	if follow {
		sub = append(sub, "--follow")
	}
	if tail != "" {
		sub = append(sub, "--tail", tail)
	}
	sub = append(sub, services...)

	name, args := e.command(sub...)
	log.Debug("streaming compose logs", "command", name+" "+strings.Join(args, " "))

	err := e.runner.Stream(ctx, e.ec.ProjectDir, w, name, args...)
	if err != nil {
		if ctx.Err() != nil || errors.Is(err, context.Canceled) {
			return nil
		}
		return fmt.Errorf("compose logs failed: %w", err)
	}
	return nil
}

// Services returns the services declared by the compose file.
func (e *Executor) Services(ctx context.Context) ([]string, error) {
	ctx = adapterCtx(ctx, "Services")

	out, err := e.run(ctx, "config", "--services")
	if err != nil {
		return nil, err
	}
	return parseLines(out), nil
}

// withArgs copies base and appends extra.
func withArgs(base []string, extra ...string) []string {
	args := make([]string, 0, len(base)+len(extra))
	args = append(args, base...)
	return append(args, extra...)
}

func parseLines(output string) []string {
	var lines []string
	for _, line := range strings.Split(output, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
