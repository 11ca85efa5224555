// Package domain contains pure business types without external dependencies.
// These types are used throughout the application and have no tags or framework dependencies.
package domain

import "fmt"

// AllServices is the argument that expands to the full registry.
const AllServices = "all"

// Tier is the dependency rank of a service. Lower tiers are brought up first
// when the whole stack is started.
type Tier int

const (
	TierDatabase Tier = iota
	TierDownload
	TierManagement
	TierPostProcessing
	TierFrontend
	TierUtility
	TierMonitoring
)

var tierNames = map[Tier]string{
	TierDatabase:       "database",
	TierDownload:       "download",
	TierManagement:     "management",
	TierPostProcessing: "post-processing",
	TierFrontend:       "frontend",
	TierUtility:        "utility",
	TierMonitoring:     "monitoring",
}

// String returns the human name of the tier.
func (t Tier) String() string {
	if name, ok := tierNames[t]; ok {
		return name
	}
	return fmt.Sprintf("tier(%d)", int(t))
}

// ServiceDescriptor describes one managed container workload.
// Descriptors are defined once at startup and never mutated.
type ServiceDescriptor struct {
	Name string
	Tier Tier
	// HealthChecked reports whether the compose file is expected to define a
	// health check for the service.
	HealthChecked bool
	// Networks lists the declared networks the service attaches to.
	Networks []string
	// Port is the published web port, zero when the service has no UI.
	Port int
	// Path is appended to the endpoint URL (for example "/web").
	Path string
}

// NetworkDescriptor describes a network the stack requires.
type NetworkDescriptor struct {
	Name   string
	Driver string
}

// DefaultNetworkDriver is the only driver used by the stack.
const DefaultNetworkDriver = "bridge"

// ExecutionPlan is the ordered list of services an operation acts upon.
type ExecutionPlan struct {
	Services []ServiceDescriptor
	// All is true when the plan was expanded from the "all" sentinel.
	All bool
}

// Names returns the service names of the plan in order.
func (p ExecutionPlan) Names() []string {
	names := make([]string, 0, len(p.Services))
	for _, svc := range p.Services {
		names = append(names, svc.Name)
	}
	return names
}

// Len returns the number of services in the plan.
func (p ExecutionPlan) Len() int {
	return len(p.Services)
}

// IsAllRequest reports whether the requested services select the whole stack.
func IsAllRequest(requested []string) bool {
	if len(requested) == 0 {
		return true
	}
	for _, name := range requested {
		if name == AllServices {
			return true
		}
	}
	return false
}
