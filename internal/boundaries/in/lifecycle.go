// Package in defines input ports (interfaces) for use cases.
// These interfaces define the contract between driving adapters (CLI)
// and the business logic (use cases).
package in

import (
	"context"
	"io"

	"github.com/bnema/mediastack/internal/domain"
)

// LifecycleService defines the contract for stack lifecycle operations.
// Every operation is safe to invoke repeatedly.
type LifecycleService interface {
	// Start provisions networks and directories, then brings the plan up.
	Start(ctx context.Context, requested []string) (*domain.LifecycleReport, error)

	// Stop tears the stack down when all services are requested,
	// otherwise it only stops the requested services.
	Stop(ctx context.Context, requested []string) (*domain.StopReport, error)

	// Restart restarts the plan without any provisioning.
	Restart(ctx context.Context, requested []string) (*domain.LifecycleReport, error)

	// Rebuild tears down, reclaims, pulls fresh images and starts again.
	Rebuild(ctx context.Context, requested []string) (*domain.LifecycleReport, error)

	// Pull fetches images for the plan. Failures are reported as warnings.
	Pull(ctx context.Context, requested []string) []domain.Warning

	// Status returns the compose process table.
	Status(ctx context.Context) ([]domain.ServiceContainer, error)

	// Logs streams logs until ctx is cancelled.
	Logs(ctx context.Context, requested []string, follow bool, tail string, w io.Writer) error
}
