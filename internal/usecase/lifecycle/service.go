// Package lifecycle implements the stack lifecycle controller.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/bnema/mediastack/internal/boundaries/in"
	"github.com/bnema/mediastack/internal/boundaries/out"
	"github.com/bnema/mediastack/internal/domain"
	"github.com/bnema/mediastack/internal/logging"
)

// Warning steps reported by lifecycle operations.
const (
	StepConfig      = "config"
	StepCompose     = "compose"
	StepNetworks    = "networks"
	StepDirectories = "directories"
	StepOrphans     = "orphans"
	StepCleanup     = "cleanup"
	StepPull        = "pull"
	StepHealth      = "health"
	StepServices    = "services"
)

// Sleeper blocks for the settle delay. It returns early when ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// Dependencies holds the ports the controller drives.
type Dependencies struct {
	Runtime   out.ContainerRuntime
	Compose   out.ComposeExecutor
	Dirs      out.DirectoryMaker
	Registry  in.RegistryService
	Config    in.ConfigService
	Health    in.HealthService
	Cleanup   in.CleanupService
	Endpoints in.EndpointService
}

// Service implements the LifecycleService interface.
type Service struct {
	deps  Dependencies
	ec    domain.ExecutionContext
	sleep Sleeper
	log   *log.Logger
}

// NewService creates a new lifecycle controller.
func NewService(deps Dependencies, ec domain.ExecutionContext, log *log.Logger) *Service {
	return &Service{
		deps:  deps,
		ec:    ec,
		sleep: sleepCtx,
		log:   log,
	}
}

// SetSleeper replaces the settle delay implementation.
func (s *Service) SetSleeper(sleep Sleeper) {
	if sleep != nil {
		s.sleep = sleep
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *Service) ctx(ctx context.Context, usecase string) context.Context {
	return logging.WithLogger(ctx, s.log.With(
		logging.FieldLayer, "usecase",
		logging.FieldUseCase, usecase,
	))
}

// Start provisions the environment and brings the plan up.
// Provisioning failures are warnings; a failed bring-up aborts the operation.
func (s *Service) Start(ctx context.Context, requested []string) (*domain.LifecycleReport, error) {
	ctx = s.ctx(ctx, "Start")
	log := logging.FromCtx(ctx)

	report := &domain.LifecycleReport{Operation: "start", Stage: domain.StageRequested}

	s.ensureConfig(ctx, report)
	s.checkCompose(ctx, report)
	s.ensureNetworks(ctx, report)
	s.ensureDirectories(ctx, report)
	s.reclaimOrphans(ctx, report)
	report.Stage = domain.StagePrechecked

	s.plan(report, requested)
	log.Info("starting services", logging.FieldCount, report.Plan.Len(), "all", report.Plan.All)

	if err := s.up(ctx, report); err != nil {
		return report, err
	}

	if err := s.settleAndReport(ctx, report, s.ec.StartSettle); err != nil {
		return report, err
	}
	return report, nil
}

// Stop tears the whole stack down and reclaims its networks, or only stops
// the requested subset.
func (s *Service) Stop(ctx context.Context, requested []string) (*domain.StopReport, error) {
	ctx = s.ctx(ctx, "Stop")
	log := logging.FromCtx(ctx)

	plan, warnings := s.deps.Registry.ResolvePlan(requested)
	for _, w := range warnings {
		log.Warn(w.Message, "step", w.Step)
	}
	report := &domain.StopReport{Plan: plan}

	if !plan.All {
		log.Info("stopping services", "services", plan.Names())
		if err := s.deps.Compose.Stop(ctx, plan.Names()); err != nil {
			return report, logging.WrapErr(log, err, "failed to stop services")
		}
		return report, nil
	}

	log.Info("tearing down stack", "project", s.ec.ProjectName)
	if err := s.deps.Compose.Down(ctx, true); err != nil {
		return report, logging.WrapErr(log, err, "failed to tear down stack")
	}
	report.Teardown = true

	networks := s.deps.Cleanup.ReclaimNetworks(ctx)
	report.Networks = &networks
	return report, nil
}

// Restart restarts the plan and reports status after the restart settle delay.
// It assumes a previous start provisioned the environment.
func (s *Service) Restart(ctx context.Context, requested []string) (*domain.LifecycleReport, error) {
	ctx = s.ctx(ctx, "Restart")
	log := logging.FromCtx(ctx)

	report := &domain.LifecycleReport{Operation: "restart", Stage: domain.StagePrechecked}
	s.plan(report, requested)

	services := s.composeServices(ctx, report)
	if err := s.deps.Compose.Restart(ctx, services); err != nil {
		return report, logging.WrapErr(log, err, "failed to restart services")
	}
	report.Stage = domain.StageApplied

	if err := s.settleAndReport(ctx, report, s.ec.RestartSettle); err != nil {
		return report, err
	}
	return report, nil
}

// Rebuild tears the plan down, reclaims orphans and images, re-provisions
// networks, pulls fresh images and starts again.
func (s *Service) Rebuild(ctx context.Context, requested []string) (*domain.LifecycleReport, error) {
	ctx = s.ctx(ctx, "Rebuild")
	log := logging.FromCtx(ctx)

	report := &domain.LifecycleReport{Operation: "rebuild", Stage: domain.StageRequested}
	s.plan(report, requested)

	if report.Plan.All {
		log.Info("tearing down stack", "project", s.ec.ProjectName)
		if err := s.deps.Compose.Down(ctx, true); err != nil {
			return report, logging.WrapErr(log, err, "failed to tear down stack")
		}
	} else {
		log.Info("removing services", "services", report.Plan.Names())
		if err := s.deps.Compose.Remove(ctx, report.Plan.Names()); err != nil {
			return report, logging.WrapErr(log, err, "failed to remove services")
		}
	}

	for _, phase := range []domain.PhaseResult{
		s.deps.Cleanup.ReclaimOrphans(ctx),
		s.deps.Cleanup.ReclaimImages(ctx),
	} {
		report.Cleanup = append(report.Cleanup, phase)
		if !phase.Ok() {
			report.Warn(StepCleanup, fmt.Sprintf("%s: %s", phase.Phase, strings.Join(phase.Errors, "; ")))
		}
	}

	s.ensureNetworks(ctx, report)

	services := s.composeServices(ctx, report)
	log.Info("pulling images", logging.FieldCount, report.Plan.Len())
	if err := s.deps.Compose.Pull(ctx, services, false); err != nil {
		return report, logging.WrapErr(log, err, "failed to pull images")
	}

	if err := s.upServices(ctx, report, services); err != nil {
		return report, err
	}

	if err := s.settleAndReport(ctx, report, s.ec.StartSettle); err != nil {
		return report, err
	}
	return report, nil
}

// Pull fetches images for the plan. Nothing here is fatal.
func (s *Service) Pull(ctx context.Context, requested []string) []domain.Warning {
	ctx = s.ctx(ctx, "Pull")
	log := logging.FromCtx(ctx)

	report := &domain.LifecycleReport{Operation: "pull"}
	s.plan(report, requested)

	services := s.composeServices(ctx, report)
	if err := s.deps.Compose.Pull(ctx, services, true); err != nil {
		log.Warn("image pull failed", "error", err)
		report.Warn(StepPull, err.Error())
	}
	return report.Warnings
}

// Status returns the compose process table, stopped containers included.
func (s *Service) Status(ctx context.Context) ([]domain.ServiceContainer, error) {
	ctx = s.ctx(ctx, "Status")
	log := logging.FromCtx(ctx)

	rows, err := s.deps.Compose.Ps(ctx, true)
	if err != nil {
		return nil, logging.WrapErr(log, err, "failed to list services")
	}
	return rows, nil
}

// Logs streams the logs of the requested services until ctx is cancelled.
func (s *Service) Logs(ctx context.Context, requested []string, follow bool, tail string, w io.Writer) error {
	ctx = s.ctx(ctx, "Logs")
	log := logging.FromCtx(ctx)

	var services []string
	if !domain.IsAllRequest(requested) {
		services = requested
	}

	if err := s.deps.Compose.Logs(ctx, services, follow, tail, w); err != nil {
		return logging.WrapErr(log, err, "failed to stream logs")
	}
	return nil
}

func (s *Service) plan(report *domain.LifecycleReport, requested []string) {
	plan, warnings := s.deps.Registry.ResolvePlan(requested)
	report.Plan = plan
	report.Warnings = append(report.Warnings, warnings...)
	report.Stage = domain.StagePlanned
}

func (s *Service) up(ctx context.Context, report *domain.LifecycleReport) error {
	return s.upServices(ctx, report, s.composeServices(ctx, report))
}

func (s *Service) upServices(ctx context.Context, report *domain.LifecycleReport, services []string) error {
	log := logging.FromCtx(ctx)

	if err := s.deps.Compose.Up(ctx, services); err != nil {
		return logging.WrapErr(log, err, "failed to bring services up")
	}
	report.Stage = domain.StageApplied
	return nil
}

// composeServices maps the plan to compose arguments. A full plan keeps the
// tier order but drops catalog entries the compose file does not declare,
// since compose rejects unknown services.
func (s *Service) composeServices(ctx context.Context, report *domain.LifecycleReport) []string {
	log := logging.FromCtx(ctx)

	if !report.Plan.All {
		return report.Plan.Names()
	}

	declared, err := s.deps.Compose.Services(ctx)
	if err != nil {
		log.Warn("failed to list compose services, acting on the whole file", "error", err)
		report.Warn(StepServices, fmt.Sprintf("could not list compose services: %v", err))
		return nil
	}

	known := make(map[string]struct{}, len(declared))
	for _, name := range declared {
		known[name] = struct{}{}
	}

	services := make([]string, 0, report.Plan.Len())
	for _, name := range report.Plan.Names() {
		if _, ok := known[name]; ok {
			services = append(services, name)
		}
	}
	if len(services) == 0 {
		return nil
	}
	return services
}

func (s *Service) settleAndReport(ctx context.Context, report *domain.LifecycleReport, delay time.Duration) error {
	log := logging.FromCtx(ctx)

	report.Stage = domain.StageSettling
	log.Debug("waiting for services to settle", "delay", delay)
	if err := s.sleep(ctx, delay); err != nil {
		return logging.WrapErr(log, err, "interrupted while waiting for services")
	}

	health, err := s.deps.Health.Check(ctx)
	switch {
	case errors.Is(err, domain.ErrNothingRunning):
		log.Warn("no container is running after settle delay")
	case err != nil:
		log.Warn("failed to evaluate health", "error", err)
		report.Warn(StepHealth, err.Error())
	default:
		report.Health = health
	}

	if report.Operation != "restart" {
		if report.Plan.All {
			report.Endpoints = s.deps.Endpoints.Endpoints()
		} else {
			report.Endpoints = s.deps.Endpoints.For(report.Plan.Names())
		}
	}

	report.Stage = domain.StageReported
	return nil
}

func (s *Service) ensureConfig(ctx context.Context, report *domain.LifecycleReport) {
	log := logging.FromCtx(ctx)

	created, err := s.deps.Config.EnsureConfig(ctx)
	if err != nil {
		log.Warn("failed to ensure configuration", "error", err)
		report.Warn(StepConfig, err.Error())
		return
	}
	if created {
		log.Info("configuration created", "path", s.deps.Config.Path())
	}
}

func (s *Service) checkCompose(ctx context.Context, report *domain.LifecycleReport) {
	log := logging.FromCtx(ctx)

	warnings, err := s.deps.Registry.CheckCompose(ctx, s.ec.ComposeFile)
	if err != nil {
		log.Warn("failed to check compose file", "error", err)
		report.Warn(StepCompose, err.Error())
		return
	}
	report.Warnings = append(report.Warnings, warnings...)
}

// ensureNetworks creates every declared network. Existing networks are fine.
func (s *Service) ensureNetworks(ctx context.Context, report *domain.LifecycleReport) {
	log := logging.FromCtx(ctx)

	for _, desc := range s.deps.Registry.Networks() {
		err := s.deps.Runtime.CreateNetwork(ctx, desc)
		switch {
		case errors.Is(err, domain.ErrNetworkExists):
			log.Debug("network already exists", logging.FieldNetwork, desc.Name)
		case err != nil:
			log.Warn("failed to create network", logging.FieldNetwork, desc.Name, "error", err)
			report.Warn(StepNetworks, fmt.Sprintf("%s: %v", desc.Name, err))
		default:
			log.Info("network created", logging.FieldNetwork, desc.Name)
		}
	}
}

// ensureDirectories creates the media and download paths. Paths that cannot
// be created are assumed to be mounted by the operator.
func (s *Service) ensureDirectories(ctx context.Context, report *domain.LifecycleReport) {
	log := logging.FromCtx(ctx)

	dirs, err := s.deps.Config.Directories(ctx)
	if err != nil {
		log.Warn("failed to read directory settings", "error", err)
		report.Warn(StepDirectories, err.Error())
		return
	}

	for _, dir := range dirs {
		if err := s.deps.Dirs.EnsureDir(ctx, dir); err != nil {
			log.Warn("failed to create directory", "path", dir, "error", err)
			report.Warn(StepDirectories, fmt.Sprintf("%s: %v", dir, err))
		}
	}
}

func (s *Service) reclaimOrphans(ctx context.Context, report *domain.LifecycleReport) {
	result := s.deps.Cleanup.ReclaimOrphans(ctx)
	if !result.Ok() {
		report.Warn(StepOrphans, strings.Join(result.Errors, "; "))
	}
}
