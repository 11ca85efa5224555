package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/bnema/mediastack/internal/app"
	"github.com/bnema/mediastack/internal/domain"
)

func newStatusCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		Aliases: []string{"ps"},
		Short:   "Show the containers of the stack",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withEngine(cmd, func(ctx context.Context, _ *app.App, e *app.Engine) error {
				containers, err := e.Lifecycle.Status(ctx)
				if err != nil {
					return err
				}
				writeServiceTable(opts.stdout, containers)
				return nil
			})
		},
	}
}

func newLogsCmd(opts *rootOptions) *cobra.Command {
	var (
		tail     string
		noFollow bool
	)

	cmd := &cobra.Command{
		Use:     "logs [service...]",
		Aliases: []string{"log"},
		Short:   "Stream service logs",
		Long: `Streams the logs of the requested services, or of the whole stack.
Press Ctrl+C to stop following.`,
		Example: `  mediastack logs
  mediastack logs sonarr --tail 200 --no-follow`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withEngine(cmd, func(ctx context.Context, _ *app.App, e *app.Engine) error {
				err := e.Lifecycle.Logs(ctx, args, !noFollow, tail, opts.stdout)
				if err != nil && ctx.Err() != nil {
					// Interrupted by the operator.
					return nil
				}
				return err
			})
		},
	}

	cmd.Flags().StringVarP(&tail, "tail", "n", "100", `Number of lines to show from the end ("all" for everything)`)
	cmd.Flags().BoolVar(&noFollow, "no-follow", false, "Print the current logs and exit")

	return cmd
}

func newHealthCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "health",
		Aliases: []string{"check"},
		Short:   "Evaluate container health",
		Long: `Evaluates every running container of the stack. The command exits with
status 1 when a container is unhealthy or when nothing is running.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withEngine(cmd, func(ctx context.Context, _ *app.App, e *app.Engine) error {
				report, err := e.Health.Check(ctx)
				if errors.Is(err, domain.ErrNothingRunning) {
					writeHealthReport(opts.stdout, nil)
					return &exitError{code: 1}
				}
				if err != nil {
					return err
				}

				writeHealthReport(opts.stdout, report)
				if !report.Passed() {
					return &exitError{code: 1}
				}
				return nil
			})
		},
	}
}
