package domain

// Warning is a soft failure surfaced to the operator. It never aborts an operation.
type Warning struct {
	Step    string
	Message string
}

// Endpoint is the expected local URL of a service. It is never verified.
type Endpoint struct {
	Service string
	URL     string
}

// LifecycleStage is the per-invocation state of a lifecycle operation.
type LifecycleStage string

const (
	StageRequested  LifecycleStage = "requested"
	StagePrechecked LifecycleStage = "prechecked"
	StagePlanned    LifecycleStage = "planned"
	StageApplied    LifecycleStage = "applied"
	StageSettling   LifecycleStage = "settling"
	StageReported   LifecycleStage = "reported"
)

// LifecycleReport is returned by start, restart and rebuild.
type LifecycleReport struct {
	Operation string
	Plan      ExecutionPlan
	Stage     LifecycleStage
	Warnings  []Warning
	// Health is nil when nothing was running after the settle delay.
	Health    *HealthReport
	Endpoints []Endpoint
	// Cleanup holds the reclamation phases run by rebuild.
	Cleanup []PhaseResult
}

// Warn appends a soft failure to the report.
func (r *LifecycleReport) Warn(step, msg string) {
	r.Warnings = append(r.Warnings, Warning{Step: step, Message: msg})
}

// StopReport is returned by stop.
type StopReport struct {
	Plan ExecutionPlan
	// Teardown is true when containers were removed rather than stopped.
	Teardown bool
	Networks *PhaseResult
}
