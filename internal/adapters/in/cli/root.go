// Package cli implements the CLI adapter for mediastack.
// This package provides Cobra commands that delegate to the app layer.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/bnema/mediastack/internal/adapters/in/cli/ui/styles"
	"github.com/bnema/mediastack/internal/domain"
)

var (
	// Version information (set at build time)
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// SetVersionInfo sets the version information for the CLI.
func SetVersionInfo(version, commit, date string) {
	Version = version
	Commit = commit
	BuildDate = date
}

// exitError carries an exit code for failures whose report was already printed.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// usageError marks command line mistakes that are answered with the usage text.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }

func (e *usageError) Unwrap() error { return e.err }

func (e *usageError) Is(target error) bool { return target == domain.ErrUsage }

// Execute runs the command line and returns the process exit code.
// SIGINT and SIGTERM cancel the running command.
func Execute(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := NewRootCmd(stdout, stderr)
	root.SetArgs(args)

	cmd, err := root.ExecuteContextC(ctx)
	if err == nil {
		return 0
	}
	if cmd == nil {
		cmd = root
	}
	return reportError(cmd, err, stderr)
}

func reportError(cmd *cobra.Command, err error, stderr io.Writer) int {
	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}

	showUsage := errors.Is(err, domain.ErrUsage) ||
		strings.HasPrefix(err.Error(), domain.ErrUnknownCommand.Error())

	// A bare usage request only prints the usage text.
	if err != domain.ErrUsage {
		_, _ = color.New(color.FgRed, color.Bold).Fprint(stderr, "Error: ")
		_, _ = fmt.Fprintln(stderr, err)
	}
	if showUsage {
		_, _ = fmt.Fprint(stderr, cmd.UsageString())
	}
	return 1
}

// NewRootCmd creates the root command for the mediastack CLI.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{stdout: stdout, stderr: stderr}

	rootCmd := &cobra.Command{
		Use:   "mediastack",
		Short: "mediastack - lifecycle controller for a self-hosted media stack",
		Long: `mediastack drives a compose-managed media stack: databases, download
clients, library managers, media servers and monitoring.

It provisions networks and host directories, brings services up in
dependency order, evaluates container health and reclaims leftovers.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.noColor {
				disableColor()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return domain.ErrUsage
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Path to config file")
	flags.StringVarP(&opts.projectDir, "project-dir", "C", "", "Directory holding the compose file and .env")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(newStartCmd(opts))
	rootCmd.AddCommand(newStopCmd(opts))
	rootCmd.AddCommand(newRestartCmd(opts))
	rootCmd.AddCommand(newRebuildCmd(opts))
	rootCmd.AddCommand(newPullCmd(opts))
	rootCmd.AddCommand(newStatusCmd(opts))
	rootCmd.AddCommand(newLogsCmd(opts))
	rootCmd.AddCommand(newHealthCmd(opts))
	rootCmd.AddCommand(newCleanupCmd(opts))
	rootCmd.AddCommand(newSecretsCmd(opts))
	rootCmd.AddCommand(newInfoCmd(opts))
	rootCmd.AddCommand(newEndpointsCmd(opts))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// newVersionCmd creates the version command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("mediastack %s\n", Version)
			cmd.Printf("Commit: %s\n", Commit)
			cmd.Printf("Build Date: %s\n", BuildDate)
		},
	}
}

func disableColor() {
	styles.DisableColor()
	color.NoColor = true
}
