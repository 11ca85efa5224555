// Package out defines output ports (interfaces) for infrastructure.
// These interfaces define the contract between use cases and driven adapters
// (Docker, compose, filesystem, etc.).
package out

import (
	"context"
	"io"

	"github.com/bnema/mediastack/internal/domain"
)

// ContainerRuntime defines the contract for container engine operations.
// The engine is the source of truth for container, network and volume state.
type ContainerRuntime interface {
	// Runtime information
	Ping(ctx context.Context) error
	Info(ctx context.Context) (domain.EngineInfo, error)
	DiskUsage(ctx context.Context) (domain.DiskUsage, error)

	// Network management
	CreateNetwork(ctx context.Context, desc domain.NetworkDescriptor) error
	ListNetworks(ctx context.Context) ([]domain.NetworkInfo, error)
	InspectNetwork(ctx context.Context, name string) (domain.NetworkInfo, error)
	RemoveNetwork(ctx context.Context, name string) error

	// Container inspection
	ListContainers(ctx context.Context, filter domain.ContainerFilter) ([]domain.Container, error)
	InspectHealth(ctx context.Context, containerID string) (domain.EngineHealth, error)
	RemoveContainer(ctx context.Context, containerID string) error

	// Volume management
	ListVolumes(ctx context.Context, danglingOnly bool) ([]domain.Volume, error)
	RemoveVolume(ctx context.Context, name string) error

	// Reclamation
	PruneContainers(ctx context.Context) (domain.PruneReport, error)
	PruneNetworks(ctx context.Context) (domain.PruneReport, error)
	PruneImages(ctx context.Context, danglingOnly bool) (domain.PruneReport, error)
	PruneBuildCache(ctx context.Context) (domain.PruneReport, error)
}

// ComposeExecutor defines the contract for the compose-style declarative executor.
// Every call acts on the project described by the execution context.
type ComposeExecutor interface {
	Version(ctx context.Context) (string, error)

	// Lifecycle
	Up(ctx context.Context, services []string) error
	Down(ctx context.Context, removeOrphans bool) error
	Stop(ctx context.Context, services []string) error
	Restart(ctx context.Context, services []string) error
	Remove(ctx context.Context, services []string) error
	Pull(ctx context.Context, services []string, ignoreFailures bool) error

	// Inspection
	Ps(ctx context.Context, all bool) ([]domain.ServiceContainer, error)
	Logs(ctx context.Context, services []string, follow bool, tail string, w io.Writer) error
	Services(ctx context.Context) ([]string, error)
}
