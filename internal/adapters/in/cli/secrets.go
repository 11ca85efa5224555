package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/mediastack/internal/app"
)

func newSecretsCmd(opts *rootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "secrets",
		Short: "Generate credentials in the .env file",
		Long: `Creates the .env file when missing and fills every credential key that
still holds a placeholder. Use --force to rotate existing credentials.

Services must be restarted to pick up rotated credentials.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(ctx context.Context, a *app.App) error {
				keys, err := a.Settings.RegenerateSecrets(ctx, force)
				if err != nil {
					return err
				}

				_ = cliWriteLine(opts.stdout, cliRenderMeta("File:", a.Settings.Path()))
				if len(keys) == 0 {
					return cliWriteLine(opts.stdout, cliRenderEmptyState("All credentials are already set"))
				}
				for _, key := range keys {
					_ = cliWriteLine(opts.stdout, cliRenderListItem(key))
				}
				return cliWriteLine(opts.stdout, cliRenderSuccess(fmt.Sprintf("Generated %d credential(s)", len(keys))))
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Regenerate credentials that are already set")

	return cmd
}
