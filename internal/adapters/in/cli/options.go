package cli

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/bnema/mediastack/internal/adapters/in/cli/ui/components"
	"github.com/bnema/mediastack/internal/app"
	"github.com/bnema/mediastack/internal/logging"
	"github.com/bnema/mediastack/internal/usecase/lifecycle"
)

// rootOptions holds the global flags shared by every command.
type rootOptions struct {
	configPath string
	projectDir string
	logLevel   string
	noColor    bool

	stdout io.Writer
	stderr io.Writer
}

func (o *rootOptions) newApp() (*app.App, error) {
	return app.New(app.Options{
		ConfigPath: o.configPath,
		ProjectDir: o.projectDir,
		LogLevel:   o.logLevel,
		LogOutput:  o.stderr,
	})
}

// withApp builds the application for one command and releases it afterwards.
func (o *rootOptions) withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	a, err := o.newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if !a.Config.UI.Color {
		disableColor()
	}

	ctx := logging.WithLogger(cmd.Context(), a.Log.With(logging.FieldLayer, "cli", "command", cmd.Name()))
	return fn(ctx, a)
}

// withEngine runs the preflight check before fn.
func (o *rootOptions) withEngine(cmd *cobra.Command, fn func(ctx context.Context, a *app.App, e *app.Engine) error) error {
	return o.withApp(cmd, func(ctx context.Context, a *app.App) error {
		e, err := a.Engine(ctx)
		if err != nil {
			return err
		}
		e.Lifecycle.SetSleeper(o.settleSleeper())
		return fn(ctx, a, e)
	})
}

// settleSleeper shows a countdown on interactive terminals.
// It returns nil otherwise so that the plain timer is kept.
func (o *rootOptions) settleSleeper() lifecycle.Sleeper {
	if !isTerminal(o.stderr) {
		return nil
	}
	return func(ctx context.Context, d time.Duration) error {
		return components.Countdown(ctx, o.stderr, "Waiting for services to settle", d)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
