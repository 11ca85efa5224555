// Package registry implements the static service catalog.
package registry

import (
	"fmt"
	"sort"

	"github.com/spf13/afero"

	"github.com/bnema/mediastack/internal/domain"
)

// Service implements the RegistryService interface.
type Service struct {
	services []domain.ServiceDescriptor
	networks []domain.NetworkDescriptor
	index    map[string]int
	fs       afero.Fs
}

// NewService creates a registry over services and networks after validating them.
func NewService(fs afero.Fs, services []domain.ServiceDescriptor, networks []domain.NetworkDescriptor) (*Service, error) {
	if err := Validate(services, networks); err != nil {
		return nil, err
	}

	index := make(map[string]int, len(services))
	for i, svc := range services {
		index[svc.Name] = i
	}

	return &Service{
		services: services,
		networks: networks,
		index:    index,
		fs:       fs,
	}, nil
}

// NewDefaultService creates a registry over the built-in catalog.
func NewDefaultService(fs afero.Fs) (*Service, error) {
	return NewService(fs, DefaultCatalog(), DefaultNetworks())
}

// Validate checks that names are unique, tiers never decrease in declared
// order and every referenced network is declared.
func Validate(services []domain.ServiceDescriptor, networks []domain.NetworkDescriptor) error {
	declared := make(map[string]bool, len(networks))
	for _, n := range networks {
		if n.Name == "" {
			return fmt.Errorf("%w: network without a name", domain.ErrInvalidCatalog)
		}
		if declared[n.Name] {
			return fmt.Errorf("%w: network %q declared twice", domain.ErrInvalidCatalog, n.Name)
		}
		declared[n.Name] = true
	}

	seen := make(map[string]bool, len(services))
	for i, svc := range services {
		if svc.Name == "" || svc.Name == domain.AllServices {
			return fmt.Errorf("%w: invalid service name %q", domain.ErrInvalidCatalog, svc.Name)
		}
		if seen[svc.Name] {
			return fmt.Errorf("%w: service %q declared twice", domain.ErrInvalidCatalog, svc.Name)
		}
		seen[svc.Name] = true

		if svc.Tier < domain.TierDatabase || svc.Tier > domain.TierMonitoring {
			return fmt.Errorf("%w: service %q has unknown tier %d", domain.ErrInvalidCatalog, svc.Name, svc.Tier)
		}
		if i > 0 && svc.Tier < services[i-1].Tier {
			return fmt.Errorf("%w: service %q (%s) declared after %q (%s)",
				domain.ErrInvalidCatalog, svc.Name, svc.Tier, services[i-1].Name, services[i-1].Tier)
		}

		for _, n := range svc.Networks {
			if !declared[n] {
				return fmt.Errorf("%w: service %q uses undeclared network %q", domain.ErrInvalidCatalog, svc.Name, n)
			}
		}
	}

	return nil
}

// All returns every service in declared order.
func (s *Service) All() []domain.ServiceDescriptor {
	out := make([]domain.ServiceDescriptor, len(s.services))
	copy(out, s.services)
	return out
}

// Lookup returns the descriptor for name.
func (s *Service) Lookup(name string) (domain.ServiceDescriptor, bool) {
	i, ok := s.index[name]
	if !ok {
		return domain.ServiceDescriptor{}, false
	}
	return s.services[i], true
}

// Networks returns the networks the stack requires.
func (s *Service) Networks() []domain.NetworkDescriptor {
	out := make([]domain.NetworkDescriptor, len(s.networks))
	copy(out, s.networks)
	return out
}

// ResolvePlan expands a request into an execution plan.
//
// An empty request or one containing "all" yields the whole catalog ordered
// by tier. Any other request is kept verbatim: the compose executor resolves
// dependencies inside ad-hoc subsets. Unknown names are kept and reported.
func (s *Service) ResolvePlan(requested []string) (domain.ExecutionPlan, []domain.Warning) {
	if domain.IsAllRequest(requested) {
		services := s.All()
		sort.SliceStable(services, func(i, j int) bool {
			return services[i].Tier < services[j].Tier
		})
		return domain.ExecutionPlan{Services: services, All: true}, nil
	}

	var warnings []domain.Warning
	plan := domain.ExecutionPlan{Services: make([]domain.ServiceDescriptor, 0, len(requested))}
	seen := make(map[string]bool, len(requested))

	for _, name := range requested {
		if seen[name] {
			warnings = append(warnings, domain.Warning{
				Step:    "plan",
				Message: fmt.Sprintf("service %q requested more than once", name),
			})
			continue
		}
		seen[name] = true

		desc, ok := s.Lookup(name)
		if !ok {
			warnings = append(warnings, domain.Warning{
				Step:    "plan",
				Message: fmt.Sprintf("service %q is not in the registry, passing it to compose as-is", name),
			})
			desc = domain.ServiceDescriptor{Name: name}
		}
		plan.Services = append(plan.Services, desc)
	}

	return plan, warnings
}
