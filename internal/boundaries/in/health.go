package in

import (
	"context"

	"github.com/bnema/mediastack/internal/domain"
)

// HealthService defines the contract for container health evaluation.
type HealthService interface {
	// Evaluate classifies the given containers.
	// Returns domain.ErrNothingRunning when the set is empty.
	Evaluate(ctx context.Context, containers []domain.Container) (*domain.HealthReport, error)

	// Check evaluates every running container of the project.
	Check(ctx context.Context) (*domain.HealthReport, error)
}
