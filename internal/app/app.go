// Package app provides the application initialization and wiring.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/bnema/mediastack/internal/adapters/out/compose"
	"github.com/bnema/mediastack/internal/adapters/out/docker"
	"github.com/bnema/mediastack/internal/adapters/out/envfile"
	"github.com/bnema/mediastack/internal/adapters/out/filesystem"
	"github.com/bnema/mediastack/internal/config"
	"github.com/bnema/mediastack/internal/domain"
	"github.com/bnema/mediastack/internal/logging"
	configuc "github.com/bnema/mediastack/internal/usecase/config"
	"github.com/bnema/mediastack/internal/usecase/endpoints"
	"github.com/bnema/mediastack/internal/usecase/registry"
)

// Options are the command line overrides applied on top of the settings.
type Options struct {
	ConfigPath string
	ProjectDir string
	LogLevel   string
	// LogOutput receives console logs, usually stderr.
	LogOutput io.Writer
}

// App holds the services that work without a container engine.
// Engine-backed services are built by Engine after the preflight check.
type App struct {
	Config    config.Config
	Context   domain.ExecutionContext
	Log       *log.Logger
	RunID     string
	Registry  *registry.Service
	Endpoints *endpoints.Service
	Settings  *configuc.Service

	fs      afero.Fs
	runtime *docker.Runtime
	runner  compose.Runner
	closers []func()
}

// New loads the settings and builds the engine-independent services.
func New(opts Options) (*App, error) {
	cfg, err := config.Load(opts.ConfigPath, opts.ProjectDir)
	if err != nil {
		return nil, err
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
	cfg.Log.File.Path = resolveLogFilePath(cfg)

	output := opts.LogOutput
	if output == nil {
		output = os.Stderr
	}
	logger, cleanup, err := logging.New(cfg.Log, output)
	if err != nil {
		return nil, err
	}
	runID := uuid.NewString()
	logger = logger.With(logging.FieldRun, runID[:8])

	a := &App{
		Config:  cfg,
		Context: newExecutionContext(cfg),
		Log:     logger,
		RunID:   runID,
		fs:      afero.NewOsFs(),
		runner:  compose.ExecRunner{},
	}
	a.closers = append(a.closers, cleanup)

	if err := a.createServices(); err != nil {
		a.Close()
		return nil, err
	}

	logger.Debug("application initialized",
		"project", a.Context.ProjectName,
		"dir", a.Context.ProjectDir,
		"compose_file", a.Context.ComposeFile,
	)
	return a, nil
}

func newExecutionContext(cfg config.Config) domain.ExecutionContext {
	return domain.ExecutionContext{
		ProjectName:   cfg.Project.Name,
		ProjectDir:    cfg.Project.Dir,
		ComposeFile:   cfg.Project.ComposeFile,
		EnvFile:       cfg.Project.EnvFile,
		StartSettle:   cfg.Lifecycle.StartSettle,
		RestartSettle: cfg.Lifecycle.RestartSettle,
	}
}

// resolveLogFilePath returns the configured log file path or a default
// inside the project directory.
func resolveLogFilePath(cfg config.Config) string {
	if cfg.Log.File.Path != "" || !cfg.Log.File.Enabled {
		return cfg.Log.File.Path
	}
	return filepath.Join(cfg.Project.Dir, "logs", "mediastack.log")
}

func (a *App) createServices() error {
	reg, err := registry.NewDefaultService(a.fs)
	if err != nil {
		return fmt.Errorf("failed to build service registry: %w", err)
	}
	a.Registry = reg

	eps, err := endpoints.NewService(reg.All(), endpoints.DefaultHost)
	if err != nil {
		return fmt.Errorf("failed to build endpoint directory: %w", err)
	}
	a.Endpoints = eps

	store := envfile.NewStore(a.fs, a.Context.EnvFile)
	a.Settings = configuc.NewService(store, ConfigKeys(), a.Log)
	return nil
}

// ConfigKeys returns the keys of the .env resource the controller interprets.
func ConfigKeys() domain.ConfigKeys {
	dirs := make([]string, 0, len(envfile.MediaKeys)+len(envfile.DownloadKeys))
	dirs = append(dirs, envfile.MediaKeys...)
	dirs = append(dirs, envfile.DownloadKeys...)
	return domain.ConfigKeys{
		Directories: dirs,
		Secrets:     envfile.SecretKeys(),
	}
}

// Runtime returns the engine client, creating it on first use.
// Creating the client does not contact the engine.
func (a *App) Runtime() (*docker.Runtime, error) {
	if a.runtime != nil {
		return a.runtime, nil
	}

	rt, err := docker.NewRuntime(a.Config.Docker.Host)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEngineUnavailable, err)
	}
	a.runtime = rt
	a.closers = append(a.closers, func() {
		if err := rt.Close(); err != nil {
			a.Log.Debug("failed to close engine client", "error", err)
		}
	})
	return rt, nil
}

// DetectCompose resolves the compose invocation form from the settings.
func (a *App) DetectCompose(ctx context.Context) ([]string, error) {
	return compose.Detect(ctx, a.runner, a.Config.Compose.Command)
}

// DirMaker returns the host directory provisioner, rooted at the project dir.
func (a *App) DirMaker() *filesystem.DirMaker {
	return filesystem.NewDirMaker(a.fs, a.Context.ProjectDir)
}

// Close releases every resource opened by the application.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
