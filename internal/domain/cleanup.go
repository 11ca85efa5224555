package domain

import "strings"

// CleanupPhase identifies one reclamation pass.
type CleanupPhase string

const (
	PhaseOrphans  CleanupPhase = "orphans"
	PhaseNetworks CleanupPhase = "networks"
	PhaseVolumes  CleanupPhase = "volumes"
	PhaseImages   CleanupPhase = "images"
	PhaseSystem   CleanupPhase = "system"
)

// PhaseStatus is the outcome of a phase. Phases never fail hard.
type PhaseStatus string

const (
	PhaseSucceeded   PhaseStatus = "ok"
	PhaseSoftFailure PhaseStatus = "soft-failure"
)

// PhaseResult reports what one phase removed and what it left in place.
type PhaseResult struct {
	Phase   CleanupPhase
	Status  PhaseStatus
	Removed []string
	// Kept lists resources deliberately left in place.
	Kept []string
	// Errors holds per-resource failures that were swallowed.
	Errors []string
	// SpaceReclaimed is reported in bytes.
	SpaceReclaimed uint64
}

// Fail records a swallowed error and marks the phase as a soft failure.
func (r *PhaseResult) Fail(msg string) {
	r.Errors = append(r.Errors, msg)
	r.Status = PhaseSoftFailure
}

// Ok reports whether the phase completed without swallowed errors.
func (r PhaseResult) Ok() bool {
	return r.Status == PhaseSucceeded
}

// NewPhaseResult returns a successful, empty result for phase.
func NewPhaseResult(phase CleanupPhase) PhaseResult {
	return PhaseResult{Phase: phase, Status: PhaseSucceeded}
}

// CleanupReport aggregates the phases of a full cleanup.
type CleanupReport struct {
	Phases    []PhaseResult
	DiskUsage *DiskUsage
}

// Ok reports whether every phase succeeded.
func (r CleanupReport) Ok() bool {
	for _, p := range r.Phases {
		if !p.Ok() {
			return false
		}
	}
	return true
}

// SpaceReclaimed sums the reclaimed bytes of every phase.
func (r CleanupReport) SpaceReclaimed() uint64 {
	var total uint64
	for _, p := range r.Phases {
		total += p.SpaceReclaimed
	}
	return total
}

// PruneReport is the engine answer to a prune request.
type PruneReport struct {
	Deleted []string
	// SpaceReclaimed is reported in bytes.
	SpaceReclaimed uint64
}

// DiskUsage summarizes engine disk consumption in bytes.
type DiskUsage struct {
	Images     int64
	Containers int64
	Volumes    int64
	BuildCache int64
}

// Total returns the sum of all categories.
func (d DiskUsage) Total() int64 {
	return d.Images + d.Containers + d.Volumes + d.BuildCache
}

// VolumeClass tells the cleanup engine how to treat a volume.
type VolumeClass string

const (
	VolumeProtected VolumeClass = "protected"
	VolumeCache     VolumeClass = "cache"
	VolumeOther     VolumeClass = "other"
)

var protectedVolumeMarkers = []string{"postgres", "mariadb", "mysql", "redis", "database", "_db", "-db"}

var cacheVolumeSuffixes = []string{"cache", "-tmp", "_tmp"}

// ClassifyVolume applies the naming convention for database and cache volumes.
func ClassifyVolume(name string) VolumeClass {
	lower := strings.ToLower(name)
	for _, marker := range protectedVolumeMarkers {
		if strings.Contains(lower, marker) {
			return VolumeProtected
		}
	}
	for _, suffix := range cacheVolumeSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return VolumeCache
		}
	}
	return VolumeOther
}

// IsProtectedVolume reports whether a volume must never be removed.
func IsProtectedVolume(name string) bool {
	return ClassifyVolume(name) == VolumeProtected
}
