// Package cleanup implements the best-effort resource reclamation use case.
package cleanup

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/bnema/mediastack/internal/boundaries/out"
	"github.com/bnema/mediastack/internal/domain"
	"github.com/bnema/mediastack/internal/logging"
)

// Service implements the CleanupService interface.
type Service struct {
	runtime  out.ContainerRuntime
	compose  out.ComposeExecutor
	networks []domain.NetworkDescriptor
	project  string
	log      *log.Logger
}

// NewService creates a new cleanup service.
// networks are the declared networks evaluated by the network phase.
func NewService(
	runtime out.ContainerRuntime,
	compose out.ComposeExecutor,
	networks []domain.NetworkDescriptor,
	ec domain.ExecutionContext,
	log *log.Logger,
) *Service {
	return &Service{
		runtime:  runtime,
		compose:  compose,
		networks: networks,
		project:  ec.ProjectName,
		log:      log,
	}
}

func (s *Service) ctx(ctx context.Context, usecase string) context.Context {
	return logging.WithLogger(ctx, s.log.With(
		logging.FieldLayer, "usecase",
		logging.FieldUseCase, usecase,
	))
}

// ReclaimOrphans removes exited or dead project containers that the current
// compose file no longer tracks. One-off containers are always orphans.
func (s *Service) ReclaimOrphans(ctx context.Context) domain.PhaseResult {
	ctx = s.ctx(ctx, "ReclaimOrphans")
	log := logging.FromCtx(ctx)
	result := domain.NewPhaseResult(domain.PhaseOrphans)

	containers, err := s.runtime.ListContainers(ctx, domain.ContainerFilter{Project: s.project, All: true})
	if err != nil {
		log.Warn("failed to list containers", "error", err)
		result.Fail(fmt.Sprintf("list containers: %v", err))
		return result
	}

	tracked, err := s.trackedServices(ctx)
	if err != nil {
		log.Warn("failed to read compose services", "error", err)
		result.Fail(fmt.Sprintf("compose services: %v", err))
		return result
	}

	for _, c := range containers {
		if !c.IsDead() {
			continue
		}
		if _, ok := tracked[c.Service()]; ok && !isOneOff(c) {
			continue
		}

		if err := s.runtime.RemoveContainer(ctx, c.ID); err != nil {
			log.Warn("failed to remove orphan", "container", c.Name, "error", err)
			result.Fail(fmt.Sprintf("%s: %v", c.Name, err))
			continue
		}
		result.Removed = append(result.Removed, c.Name)
	}

	log.Debug("orphans reclaimed", logging.FieldCount, len(result.Removed))
	return result
}

func (s *Service) trackedServices(ctx context.Context) (map[string]struct{}, error) {
	services, err := s.compose.Services(ctx)
	if err != nil {
		return nil, err
	}

	tracked := make(map[string]struct{}, len(services))
	for _, name := range services {
		tracked[name] = struct{}{}
	}
	return tracked, nil
}

func isOneOff(c domain.Container) bool {
	return strings.EqualFold(c.Labels[domain.LabelComposeOneOff], "true")
}

// ReclaimNetworks removes every declared network with no attached container,
// then prunes unused networks engine-wide.
func (s *Service) ReclaimNetworks(ctx context.Context) domain.PhaseResult {
	ctx = s.ctx(ctx, "ReclaimNetworks")
	log := logging.FromCtx(ctx)
	result := domain.NewPhaseResult(domain.PhaseNetworks)

	for _, desc := range s.networks {
		info, err := s.runtime.InspectNetwork(ctx, desc.Name)
		if errors.Is(err, domain.ErrNetworkNotFound) {
			continue
		}
		if err != nil {
			log.Warn("failed to inspect network", logging.FieldNetwork, desc.Name, "error", err)
			result.Fail(fmt.Sprintf("%s: %v", desc.Name, err))
			continue
		}

		if info.InUse() {
			log.Info("network in use, keeping it", logging.FieldNetwork, desc.Name, "containers", info.Containers)
			result.Kept = append(result.Kept, desc.Name)
			continue
		}

		err = s.runtime.RemoveNetwork(ctx, desc.Name)
		switch {
		case errors.Is(err, domain.ErrNetworkInUse):
			log.Info("network in use, keeping it", logging.FieldNetwork, desc.Name)
			result.Kept = append(result.Kept, desc.Name)
		case err != nil:
			log.Warn("failed to remove network", logging.FieldNetwork, desc.Name, "error", err)
			result.Fail(fmt.Sprintf("%s: %v", desc.Name, err))
		default:
			result.Removed = append(result.Removed, desc.Name)
		}
	}

	pruned, err := s.runtime.PruneNetworks(ctx)
	if err != nil {
		log.Warn("failed to prune networks", "error", err)
		result.Fail(fmt.Sprintf("prune networks: %v", err))
		return result
	}
	result.Removed = appendMissing(result.Removed, pruned.Deleted)

	log.Debug("networks reclaimed", logging.FieldCount, len(result.Removed))
	return result
}

// ReclaimVolumes removes dangling volumes. Protected database volumes are kept
// even when nothing references them.
func (s *Service) ReclaimVolumes(ctx context.Context) domain.PhaseResult {
	ctx = s.ctx(ctx, "ReclaimVolumes")
	log := logging.FromCtx(ctx)
	result := domain.NewPhaseResult(domain.PhaseVolumes)

	volumes, err := s.runtime.ListVolumes(ctx, true)
	if err != nil {
		log.Warn("failed to list volumes", "error", err)
		result.Fail(fmt.Sprintf("list volumes: %v", err))
		return result
	}

	for _, v := range volumes {
		if domain.IsProtectedVolume(v.Name) {
			log.Debug("keeping protected volume", logging.FieldResource, v.Name)
			result.Kept = append(result.Kept, v.Name)
			continue
		}

		if err := s.runtime.RemoveVolume(ctx, v.Name); err != nil {
			log.Warn("failed to remove volume", logging.FieldResource, v.Name, "error", err)
			result.Fail(fmt.Sprintf("%s: %v", v.Name, err))
			continue
		}
		result.Removed = append(result.Removed, v.Name)
	}

	log.Debug("volumes reclaimed", logging.FieldCount, len(result.Removed))
	return result
}

// ReclaimImages prunes every image no container references.
func (s *Service) ReclaimImages(ctx context.Context) domain.PhaseResult {
	ctx = s.ctx(ctx, "ReclaimImages")
	log := logging.FromCtx(ctx)
	result := domain.NewPhaseResult(domain.PhaseImages)

	pruned, err := s.runtime.PruneImages(ctx, false)
	if err != nil {
		log.Warn("failed to prune images", "error", err)
		result.Fail(fmt.Sprintf("prune images: %v", err))
		return result
	}

	result.Removed = pruned.Deleted
	result.SpaceReclaimed = pruned.SpaceReclaimed
	log.Debug("images reclaimed", logging.FieldCount, len(result.Removed), "bytes", pruned.SpaceReclaimed)
	return result
}

// FullCleanup runs the four phases in order, sweeps the engine and reports
// disk usage. Orphans go first so that freed networks can be removed.
func (s *Service) FullCleanup(ctx context.Context) domain.CleanupReport {
	ctx = s.ctx(ctx, "FullCleanup")
	log := logging.FromCtx(ctx)

	report := domain.CleanupReport{
		Phases: []domain.PhaseResult{
			s.ReclaimOrphans(ctx),
			s.ReclaimNetworks(ctx),
			s.ReclaimVolumes(ctx),
			s.ReclaimImages(ctx),
			s.sweep(ctx),
		},
	}

	usage, err := s.runtime.DiskUsage(ctx)
	if err != nil {
		log.Warn("failed to read disk usage", "error", err)
	} else {
		report.DiskUsage = &usage
	}

	log.Info("cleanup finished", "ok", report.Ok(), "reclaimed", report.SpaceReclaimed())
	return report
}

// sweep is the engine-wide prune closing a full cleanup.
func (s *Service) sweep(ctx context.Context) domain.PhaseResult {
	log := logging.FromCtx(ctx)
	result := domain.NewPhaseResult(domain.PhaseSystem)

	steps := []struct {
		name  string
		prune func(context.Context) (domain.PruneReport, error)
	}{
		{name: "containers", prune: s.runtime.PruneContainers},
		{name: "networks", prune: s.runtime.PruneNetworks},
		{name: "images", prune: func(ctx context.Context) (domain.PruneReport, error) {
			return s.runtime.PruneImages(ctx, true)
		}},
		{name: "build cache", prune: s.runtime.PruneBuildCache},
	}

	for _, step := range steps {
		pruned, err := step.prune(ctx)
		if err != nil {
			log.Warn("system prune step failed", "step", step.name, "error", err)
			result.Fail(fmt.Sprintf("prune %s: %v", step.name, err))
			continue
		}
		result.Removed = append(result.Removed, pruned.Deleted...)
		result.SpaceReclaimed += pruned.SpaceReclaimed
	}

	return result
}

func appendMissing(dst, src []string) []string {
	seen := make(map[string]struct{}, len(dst))
	for _, name := range dst {
		seen[name] = struct{}{}
	}
	for _, name := range src {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		dst = append(dst, name)
	}
	return dst
}
