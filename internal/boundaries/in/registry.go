package in

import (
	"context"

	"github.com/bnema/mediastack/internal/domain"
)

// RegistryService defines the contract for the static service catalog.
type RegistryService interface {
	// All returns every service in declared order.
	All() []domain.ServiceDescriptor

	// Lookup returns the descriptor for name.
	Lookup(name string) (domain.ServiceDescriptor, bool)

	// Networks returns the networks the stack requires.
	Networks() []domain.NetworkDescriptor

	// ResolvePlan expands a request into an execution plan.
	// Names absent from the catalog are kept and reported as warnings.
	ResolvePlan(requested []string) (domain.ExecutionPlan, []domain.Warning)

	// CheckCompose reports drift between the catalog and a compose file.
	CheckCompose(ctx context.Context, path string) ([]domain.Warning, error)
}

// EndpointService defines the contract for the informational URL directory.
type EndpointService interface {
	// Endpoints returns the expected URL of every service with a web port.
	Endpoints() []domain.Endpoint

	// For returns the endpoints of the named services in the order given.
	For(names []string) []domain.Endpoint
}
