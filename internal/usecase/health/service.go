// Package health implements the container health evaluation use case.
package health

import (
	"context"
	"fmt"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/bnema/mediastack/internal/boundaries/out"
	"github.com/bnema/mediastack/internal/domain"
	"github.com/bnema/mediastack/internal/logging"
)

// Service implements the HealthService interface.
type Service struct {
	runtime out.ContainerRuntime
	project string
	log     *log.Logger
}

// NewService creates a new health service.
func NewService(runtime out.ContainerRuntime, ec domain.ExecutionContext, log *log.Logger) *Service {
	return &Service{
		runtime: runtime,
		project: ec.ProjectName,
		log:     log,
	}
}

func (s *Service) ctx(ctx context.Context, usecase string) context.Context {
	return logging.WithLogger(ctx, s.log.With(
		logging.FieldLayer, "usecase",
		logging.FieldUseCase, usecase,
	))
}

// Evaluate classifies the given containers, one engine inspection each.
// An empty set returns domain.ErrNothingRunning rather than an empty report.
func (s *Service) Evaluate(ctx context.Context, containers []domain.Container) (*domain.HealthReport, error) {
	ctx = s.ctx(ctx, "Evaluate")
	log := logging.FromCtx(ctx)

	if len(containers) == 0 {
		return nil, domain.ErrNothingRunning
	}

	records := make([]domain.ContainerHealthRecord, 0, len(containers))
	for _, c := range containers {
		health, err := s.runtime.InspectHealth(ctx, c.ID)
		if err != nil {
			log.Warn("failed to inspect container", "container", c.Name, "error", err)
			records = append(records, domain.ContainerHealthRecord{
				Name:   c.Name,
				Raw:    domain.RawUnknown,
				Class:  domain.HealthClassUnknown,
				State:  c.State,
				Detail: fmt.Sprintf("inspect failed: %v", err),
			})
			continue
		}

		if health.Name == "" || health.Name == c.ID {
			health.Name = c.Name
		}
		records = append(records, domain.NewContainerHealthRecord(health))
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Name < records[j].Name
	})

	report := domain.NewHealthReport(records)
	log.Debug("health evaluated",
		"healthy", report.Summary.Healthy,
		"unhealthy", report.Summary.Unhealthy,
		"other", report.Summary.Other,
	)
	return &report, nil
}

// Check evaluates every running container of the project.
func (s *Service) Check(ctx context.Context) (*domain.HealthReport, error) {
	ctx = s.ctx(ctx, "Check")
	log := logging.FromCtx(ctx)

	containers, err := s.runtime.ListContainers(ctx, domain.ContainerFilter{Project: s.project})
	if err != nil {
		return nil, logging.WrapErr(log, err, "failed to list containers")
	}

	return s.Evaluate(ctx, containers)
}
