package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/bnema/mediastack/internal/adapters/in/cli/ui/components"
	"github.com/bnema/mediastack/internal/app"
	"github.com/bnema/mediastack/internal/domain"
)

func newInfoCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show project, engine and configuration diagnostics",
		Long: `Prints the execution context, engine and compose versions, disk usage
and the .env values with credentials masked. An unreachable engine is
reported, not treated as an error.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(ctx context.Context, a *app.App) error {
				writeDiagnostics(opts.stdout, a.Diagnose(ctx))
				return nil
			})
		},
	}
}

func writeDiagnostics(w io.Writer, d *app.Diagnostics) {
	ec := d.Context
	_ = cliWriteLine(w, cliRenderTitle("Project"))
	_ = cliWriteLine(w, components.KeyValueTable([][]string{
		{"Name", ec.ProjectName},
		{"Directory", ec.ProjectDir},
		{"Compose file", ec.ComposeFile},
		{"Env file", ec.EnvFile},
		{"Start settle", ec.StartSettle.String()},
		{"Restart settle", ec.RestartSettle.String()},
	}))

	_ = cliWriteLine(w, "")
	_ = cliWriteLine(w, cliRenderTitle("Engine"))
	if d.Engine == nil {
		_ = cliWriteLine(w, cliRenderError(fmt.Sprintf("unavailable: %v", d.EngineErr)))
	} else {
		info := d.Engine
		_ = cliWriteLine(w, components.KeyValueTable([][]string{
			{"Server version", info.ServerVersion},
			{"API version", info.APIVersion},
			{"Operating system", info.OperatingSystem},
			{"Kernel", info.KernelVersion},
			{"Architecture", info.Architecture},
			{"Containers", fmt.Sprintf("%d (%d running, %d stopped)", info.Containers, info.ContainersRunning, info.ContainersStopped)},
			{"Images", fmt.Sprintf("%d", info.Images)},
			{"Storage driver", info.StorageDriver},
			{"Root dir", info.DockerRootDir},
		}))
	}

	_ = cliWriteLine(w, "")
	_ = cliWriteLine(w, cliRenderTitle("Compose"))
	switch {
	case d.ComposeVersion == "" && d.ComposeErr != nil:
		_ = cliWriteLine(w, cliRenderError(fmt.Sprintf("unavailable: %v", d.ComposeErr)))
	case d.ComposeErr != nil:
		_ = cliWritef(w, "%s %s\n", cliRenderMeta("Command:", ec.ComposeCommandString()), cliRenderMeta("Version:", d.ComposeVersion))
		_ = cliWriteLine(w, cliRenderWarning(d.ComposeErr.Error()))
	default:
		_ = cliWritef(w, "%s %s\n", cliRenderMeta("Command:", ec.ComposeCommandString()), cliRenderMeta("Version:", d.ComposeVersion))
	}

	_ = cliWriteLine(w, "")
	_ = cliWriteLine(w, cliRenderTitle("Disk usage"))
	if d.DiskUsage == nil {
		_ = cliWriteLine(w, cliRenderWarning(fmt.Sprintf("unavailable: %v", d.DiskUsageErr)))
	} else {
		writeDiskUsage(w, *d.DiskUsage)
	}

	_ = cliWriteLine(w, "")
	_ = cliWriteLine(w, cliRenderTitle("Configuration"))
	switch {
	case d.ValuesErr != nil:
		_ = cliWriteLine(w, cliRenderWarning(d.ValuesErr.Error()))
	case len(d.Values) == 0:
		_ = cliWriteLine(w, cliRenderEmptyState("No .env file yet, run 'mediastack secrets' to create it"))
	default:
		_ = cliWriteLine(w, components.KeyValueTable(sortedRows(d.Values)))
	}
}

func newEndpointsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "endpoints [service...]",
		Aliases: []string{"urls"},
		Short:   "List the expected service URLs",
		Long:    `Lists the local URL of every service with a web interface. URLs are not probed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(_ context.Context, a *app.App) error {
				endpoints := a.Endpoints.Endpoints()
				if !domain.IsAllRequest(args) {
					endpoints = a.Endpoints.For(args)
				}
				if len(endpoints) == 0 {
					return cliWriteLine(opts.stdout, cliRenderEmptyState("No endpoints for the selected services"))
				}
				writeEndpoints(opts.stdout, endpoints)
				return nil
			})
		},
	}
}
