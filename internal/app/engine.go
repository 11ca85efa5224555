package app

import (
	"context"
	"errors"

	"github.com/bnema/mediastack/internal/adapters/out/compose"
	"github.com/bnema/mediastack/internal/adapters/out/docker"
	"github.com/bnema/mediastack/internal/domain"
	"github.com/bnema/mediastack/internal/logging"
	"github.com/bnema/mediastack/internal/usecase/cleanup"
	"github.com/bnema/mediastack/internal/usecase/health"
	"github.com/bnema/mediastack/internal/usecase/lifecycle"
)

// Engine holds the services that need a reachable container engine.
type Engine struct {
	// Context is the immutable execution context, compose form included.
	Context        domain.ExecutionContext
	Runtime        *docker.Runtime
	Compose        *compose.Executor
	ComposeVersion string
	Lifecycle      *lifecycle.Service
	Health         *health.Service
	Cleanup        *cleanup.Service
}

// Engine runs the once-per-invocation preflight (engine ping, compose
// detection and version gate) and wires the engine-backed services.
func (a *App) Engine(ctx context.Context) (*Engine, error) {
	ctx = logging.WithLogger(ctx, a.Log.With(logging.FieldLayer, "app"))
	log := logging.FromCtx(ctx)

	rt, err := a.Runtime()
	if err != nil {
		return nil, err
	}
	if err := rt.Ping(ctx); err != nil {
		return nil, err
	}

	form, err := a.DetectCompose(ctx)
	if err != nil {
		return nil, err
	}

	ec := a.Context
	ec.ComposeCommand = form
	executor := compose.NewExecutor(ec, a.runner)

	version, err := executor.Version(ctx)
	switch {
	case err != nil:
		log.Warn("failed to read compose version", "error", err)
	default:
		if err := compose.CheckVersion(form, version); err != nil {
			if errors.Is(err, domain.ErrComposeTooOld) {
				return nil, err
			}
			log.Warn("failed to check compose version", "version", version, "error", err)
		}
	}
	log.Debug("preflight passed", "compose", ec.ComposeCommandString(), "version", version)

	networks := a.Registry.Networks()
	healthSvc := health.NewService(rt, ec, a.Log)
	cleanupSvc := cleanup.NewService(rt, executor, networks, ec, a.Log)
	lifecycleSvc := lifecycle.NewService(lifecycle.Dependencies{
		Runtime:   rt,
		Compose:   executor,
		Dirs:      a.DirMaker(),
		Registry:  a.Registry,
		Config:    a.Settings,
		Health:    healthSvc,
		Cleanup:   cleanupSvc,
		Endpoints: a.Endpoints,
	}, ec, a.Log)

	return &Engine{
		Context:        ec,
		Runtime:        rt,
		Compose:        executor,
		ComposeVersion: version,
		Lifecycle:      lifecycleSvc,
		Health:         healthSvc,
		Cleanup:        cleanupSvc,
	}, nil
}

// Diagnostics is everything the info command renders.
// Failures are kept per section so that a partial report can still be shown.
type Diagnostics struct {
	Context        domain.ExecutionContext
	Values         map[string]string
	ValuesErr      error
	Engine         *domain.EngineInfo
	EngineErr      error
	ComposeVersion string
	ComposeErr     error
	DiskUsage      *domain.DiskUsage
	DiskUsageErr   error
}

// Diagnose collects diagnostics without failing on an unreachable engine.
func (a *App) Diagnose(ctx context.Context) *Diagnostics {
	d := &Diagnostics{Context: a.Context}
	d.Values, d.ValuesErr = a.Settings.MaskedValues(ctx)

	rt, err := a.Runtime()
	if err == nil {
		err = rt.Ping(ctx)
	}
	if err != nil {
		d.EngineErr = err
		d.DiskUsageErr = err
	} else {
		if info, err := rt.Info(ctx); err != nil {
			d.EngineErr = err
		} else {
			d.Engine = &info
		}
		if usage, err := rt.DiskUsage(ctx); err != nil {
			d.DiskUsageErr = err
		} else {
			d.DiskUsage = &usage
		}
	}

	form, err := a.DetectCompose(ctx)
	if err != nil {
		d.ComposeErr = err
		return d
	}
	d.Context.ComposeCommand = form

	version, err := compose.NewExecutor(d.Context, a.runner).Version(ctx)
	if err != nil {
		d.ComposeErr = err
		return d
	}
	d.ComposeVersion = version
	d.ComposeErr = compose.CheckVersion(form, version)
	return d
}
