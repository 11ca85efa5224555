package compose

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

type call struct {
	dir  string
	name string
	args []string
}

func (c call) String() string {
	return strings.TrimSpace(c.name + " " + strings.Join(c.args, " "))
}

type response struct {
	stdout string
	stderr string
	err    error
}

// fakeRunner answers commands from a table keyed by the full command line.
type fakeRunner struct {
	calls     []call
	responses map[string]response
	installed map[string]bool
	streamed  string
	streamErr error
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{
		responses: make(map[string]response),
		installed: make(map[string]bool),
	}
}

func (f *fakeRunner) Run(_ context.Context, dir, name string, args ...string) (string, string, error) {
	c := call{dir: dir, name: name, args: args}
	f.calls = append(f.calls, c)
	if resp, ok := f.responses[c.String()]; ok {
		return resp.stdout, resp.stderr, resp.err
	}
	return "", "", nil
}

func (f *fakeRunner) Stream(ctx context.Context, dir string, w io.Writer, name string, args ...string) error {
	f.calls = append(f.calls, call{dir: dir, name: name, args: args})
	if f.streamed != "" {
		_, _ = io.WriteString(w, f.streamed)
	}
	return f.streamErr
}

func (f *fakeRunner) LookPath(name string) (string, error) {
	if f.installed[name] {
		return "/usr/bin/" + name, nil
	}
	return "", fmt.Errorf("%s: %w", name, errors.New("executable file not found in $PATH"))
}

func (f *fakeRunner) lastCall() call {
	if len(f.calls) == 0 {
		return call{}
	}
	return f.calls[len(f.calls)-1]
}
