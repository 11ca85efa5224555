package domain

import "fmt"

// RawHealth is the engine-reported health state of a container.
type RawHealth string

const (
	RawHealthy     RawHealth = "healthy"
	RawUnhealthy   RawHealth = "unhealthy"
	RawStarting    RawHealth = "starting"
	RawNoneRunning RawHealth = "none-running"
	RawNoneStopped RawHealth = "none-stopped"
	RawUnknown     RawHealth = "unknown"
)

// HealthClass is the evaluated category of a container.
type HealthClass string

const (
	HealthClassHealthy       HealthClass = "healthy"
	HealthClassUnhealthy     HealthClass = "unhealthy"
	HealthClassPending       HealthClass = "pending"
	HealthClassInformational HealthClass = "informational"
	HealthClassUnknown       HealthClass = "unknown"
)

// EngineHealth is what the engine reports about a single container.
type EngineHealth struct {
	Name string
	// Status is the health check status, empty when no probe is configured.
	Status string
	// State is the coarse container state (running, exited, ...).
	State    string
	HasProbe bool
}

// Raw maps the engine report onto the closed RawHealth set.
func (h EngineHealth) Raw() RawHealth {
	if !h.HasProbe || h.Status == "" || h.Status == "none" {
		if h.State == string(ContainerStatusRunning) {
			return RawNoneRunning
		}
		return RawNoneStopped
	}

	switch h.Status {
	case string(RawHealthy):
		return RawHealthy
	case string(RawUnhealthy):
		return RawUnhealthy
	case string(RawStarting):
		return RawStarting
	default:
		return RawUnknown
	}
}

// Classify returns the category a raw state falls into.
func Classify(raw RawHealth) HealthClass {
	switch raw {
	case RawHealthy:
		return HealthClassHealthy
	case RawUnhealthy:
		return HealthClassUnhealthy
	case RawStarting:
		return HealthClassPending
	case RawNoneRunning, RawNoneStopped:
		return HealthClassInformational
	default:
		return HealthClassUnknown
	}
}

// ContainerHealthRecord is the evaluation of one container.
type ContainerHealthRecord struct {
	Name   string
	Raw    RawHealth
	Class  HealthClass
	State  string
	Detail string
}

// NewContainerHealthRecord classifies an engine report.
func NewContainerHealthRecord(h EngineHealth) ContainerHealthRecord {
	raw := h.Raw()
	record := ContainerHealthRecord{
		Name:  h.Name,
		Raw:   raw,
		Class: Classify(raw),
		State: h.State,
	}

	switch raw {
	case RawHealthy:
		record.Detail = "healthy"
	case RawUnhealthy:
		record.Detail = "unhealthy"
	case RawStarting:
		record.Detail = "starting"
	case RawNoneRunning:
		record.Detail = "running, no health probe"
	case RawNoneStopped:
		record.Detail = fmt.Sprintf("%s, no health probe", h.State)
	default:
		record.Detail = fmt.Sprintf("unknown health status %q", h.Status)
	}

	return record
}

// HealthSummary aggregates health records.
type HealthSummary struct {
	Healthy   int
	Unhealthy int
	Other     int
}

// Total returns the number of evaluated containers.
func (s HealthSummary) Total() int {
	return s.Healthy + s.Unhealthy + s.Other
}

// HealthReport is the result of one health evaluation.
type HealthReport struct {
	Containers []ContainerHealthRecord
	Summary    HealthSummary
}

// NewHealthReport builds a report and its summary from records.
func NewHealthReport(records []ContainerHealthRecord) HealthReport {
	report := HealthReport{Containers: records}
	for _, r := range records {
		switch r.Class {
		case HealthClassHealthy:
			report.Summary.Healthy++
		case HealthClassUnhealthy:
			report.Summary.Unhealthy++
		default:
			report.Summary.Other++
		}
	}
	return report
}

// Passed reports whether no container is unhealthy.
// Pending and informational containers do not fail the aggregate.
func (r HealthReport) Passed() bool {
	return r.Summary.Unhealthy == 0
}
