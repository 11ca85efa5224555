package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/mediastack/internal/domain"
)

func TestWriteHealthReport_Nil(t *testing.T) {
	var out bytes.Buffer
	writeHealthReport(&out, nil)

	assert.Contains(t, out.String(), "No running containers to evaluate")
}

func TestWriteHealthReport_Summary(t *testing.T) {
	report := domain.NewHealthReport([]domain.ContainerHealthRecord{
		domain.NewContainerHealthRecord(domain.EngineHealth{Name: "postgres", Status: "healthy", State: "running", HasProbe: true}),
		domain.NewContainerHealthRecord(domain.EngineHealth{Name: "sonarr", State: "running"}),
		domain.NewContainerHealthRecord(domain.EngineHealth{Name: "jellyfin", Status: "unhealthy", State: "running", HasProbe: true}),
	})

	var out bytes.Buffer
	writeHealthReport(&out, &report)

	assert.Contains(t, out.String(), "postgres")
	assert.Contains(t, out.String(), "1 healthy, 1 unhealthy, 1 other (3 total)")
}

func TestWriteLifecycleReport_StopsBeforeHealthWhenNotReported(t *testing.T) {
	report := &domain.LifecycleReport{
		Operation: "start",
		Plan:      domain.ExecutionPlan{Services: []domain.ServiceDescriptor{{Name: "sonarr"}}},
		Stage:     domain.StageApplied,
	}
	report.Warn("networks", "failed to create network media")

	var out bytes.Buffer
	writeLifecycleReport(&out, report)

	assert.Contains(t, out.String(), "Start: sonarr")
	assert.Contains(t, out.String(), "[networks] failed to create network media")
	assert.NotContains(t, out.String(), "No running containers")
}

func TestWriteLifecycleReport_Reported(t *testing.T) {
	report := &domain.LifecycleReport{
		Operation: "start",
		Plan:      domain.ExecutionPlan{Services: []domain.ServiceDescriptor{{Name: "a"}, {Name: "b"}}, All: true},
		Stage:     domain.StageReported,
		Endpoints: []domain.Endpoint{{Service: "sonarr", URL: "http://localhost:8989"}},
	}

	var out bytes.Buffer
	writeLifecycleReport(&out, report)

	assert.Contains(t, out.String(), "Start: all 2 services")
	assert.Contains(t, out.String(), "No running containers to evaluate")
	assert.Contains(t, out.String(), "http://localhost:8989")
}

func TestWritePhases(t *testing.T) {
	phase := domain.NewPhaseResult(domain.PhaseVolumes)
	phase.Removed = []string{"sonarr_cache"}
	phase.Kept = []string{"mediastack_postgres_data"}
	phase.Fail("failed to remove volume tmp: in use")
	phase.SpaceReclaimed = 2048

	var out bytes.Buffer
	writePhases(&out, []domain.PhaseResult{phase})

	assert.Contains(t, out.String(), "volumes: 1 removed, 1 kept, 2KiB reclaimed")
	assert.Contains(t, out.String(), "mediastack_postgres_data")
	assert.Contains(t, out.String(), "in use")
}

func TestWriteStopReport(t *testing.T) {
	var out bytes.Buffer
	writeStopReport(&out, &domain.StopReport{
		Plan: domain.ExecutionPlan{Services: []domain.ServiceDescriptor{{Name: "sonarr"}, {Name: "radarr"}}},
	})
	assert.Contains(t, out.String(), "Stopped sonarr, radarr")

	out.Reset()
	networks := domain.NewPhaseResult(domain.PhaseNetworks)
	networks.Removed = []string{"media"}
	writeStopReport(&out, &domain.StopReport{Teardown: true, Networks: &networks})
	assert.Contains(t, out.String(), "Stack torn down")
	assert.Contains(t, out.String(), "networks: 1 removed")
}

func TestSortedRows(t *testing.T) {
	rows := sortedRows(map[string]string{"TZ": "UTC", "PUID": "1000", "MEDIA_ROOT": "/srv"})

	assert.Equal(t, [][]string{{"MEDIA_ROOT", "/srv"}, {"PUID", "1000"}, {"TZ", "UTC"}}, rows)
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Rebuild", capitalize("rebuild"))
	assert.Equal(t, "", capitalize(""))
}
