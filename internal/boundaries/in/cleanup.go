package in

import (
	"context"

	"github.com/bnema/mediastack/internal/domain"
)

// CleanupService defines the contract for best-effort resource reclamation.
// No method returns an error: failures are reported inside the results.
type CleanupService interface {
	ReclaimOrphans(ctx context.Context) domain.PhaseResult
	ReclaimNetworks(ctx context.Context) domain.PhaseResult
	ReclaimVolumes(ctx context.Context) domain.PhaseResult
	ReclaimImages(ctx context.Context) domain.PhaseResult

	// FullCleanup runs every phase in order, then an engine-wide prune,
	// and reports disk usage afterwards.
	FullCleanup(ctx context.Context) domain.CleanupReport
}
