package cli

import (
	"context"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/bnema/mediastack/internal/app"
)

func newCleanupCmd(opts *rootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "cleanup",
		Aliases: []string{"clean"},
		Short:   "Reclaim orphaned containers, networks, volumes and images",
		Long: `Runs every reclamation phase, then an engine-wide prune, and reports
the remaining disk usage. Database volumes are never removed.

Failures are reported per phase and never abort the cleanup.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes && isTerminal(opts.stdout) {
				proceed, err := confirmCleanup()
				if err != nil {
					return err
				}
				if !proceed {
					return cliWriteLine(opts.stdout, cliRenderMuted("Cleanup cancelled"))
				}
			}

			return opts.withEngine(cmd, func(ctx context.Context, _ *app.App, e *app.Engine) error {
				report := e.Cleanup.FullCleanup(ctx)
				writeCleanupReport(opts.stdout, report)
				if !report.Ok() {
					return cliWriteLine(opts.stdout, cliRenderWarning("Some resources could not be reclaimed"))
				}
				return cliWriteLine(opts.stdout, cliRenderSuccess("Cleanup complete"))
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

var confirmCleanup = func() (bool, error) {
	var proceed bool
	prompt := &survey.Confirm{
		Message: "Remove unused containers, networks, volumes and images?",
		Default: false,
	}
	if err := survey.AskOne(prompt, &proceed); err != nil {
		return false, fmt.Errorf("confirmation failed: %w", err)
	}
	return proceed, nil
}
