package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/mediastack/internal/app"
)

const servicesUsageHint = `
Services are named as in the compose file. Without arguments, or with
"all", the whole stack is selected and brought up in dependency order.`

func newStartCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "start [service...]",
		Short: "Provision the environment and start services",
		Long: `Creates missing networks, host directories and the .env file, removes
orphaned containers, then brings the requested services up. After the
settle delay a health report and the service URLs are printed.` + servicesUsageHint,
		Example: `  mediastack start
  mediastack start sonarr radarr`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withEngine(cmd, func(ctx context.Context, _ *app.App, e *app.Engine) error {
				report, err := e.Lifecycle.Start(ctx, args)
				if report != nil {
					writeLifecycleReport(opts.stdout, report)
				}
				return err
			})
		},
	}
}

func newStopCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stop [service...]",
		Short: "Stop services or tear the stack down",
		Long: `Stops the requested services. When the whole stack is selected, its
containers are removed and the stack networks are reclaimed.` + servicesUsageHint,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withEngine(cmd, func(ctx context.Context, _ *app.App, e *app.Engine) error {
				report, err := e.Lifecycle.Stop(ctx, args)
				if err != nil {
					return err
				}
				writeStopReport(opts.stdout, report)
				return nil
			})
		},
	}
}

func newRestartCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "restart [service...]",
		Short: "Restart running services",
		Long: `Restarts the requested services without provisioning anything and
prints a health report after the restart settle delay.` + servicesUsageHint,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withEngine(cmd, func(ctx context.Context, _ *app.App, e *app.Engine) error {
				report, err := e.Lifecycle.Restart(ctx, args)
				if report != nil {
					writeLifecycleReport(opts.stdout, report)
				}
				return err
			})
		},
	}
}

func newRebuildCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rebuild [service...]",
		Short: "Recreate services from freshly pulled images",
		Long: `Removes the requested services (or tears the stack down), reclaims
orphaned containers and unused images, pulls fresh images and starts
the services again.` + servicesUsageHint,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withEngine(cmd, func(ctx context.Context, _ *app.App, e *app.Engine) error {
				report, err := e.Lifecycle.Rebuild(ctx, args)
				if report != nil {
					writeLifecycleReport(opts.stdout, report)
				}
				return err
			})
		},
	}
}

func newPullCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "pull [service...]",
		Short: "Pull images without restarting anything",
		Long:  `Pulls the images of the requested services. Failures are reported as warnings.` + servicesUsageHint,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withEngine(cmd, func(ctx context.Context, _ *app.App, e *app.Engine) error {
				warnings := e.Lifecycle.Pull(ctx, args)
				if len(warnings) == 0 {
					return cliWriteLine(opts.stdout, cliRenderSuccess("Images pulled"))
				}
				writeWarnings(opts.stdout, warnings)
				return cliWriteLine(opts.stdout, cliRenderInfo(fmt.Sprintf("Pull finished with %d warning(s)", len(warnings))))
			})
		},
	}
}
