package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/mediastack/internal/domain"
)

func TestEngineHealth_Raw(t *testing.T) {
	tests := []struct {
		name   string
		health domain.EngineHealth
		want   domain.RawHealth
	}{
		{"healthy", domain.EngineHealth{Status: "healthy", State: "running", HasProbe: true}, domain.RawHealthy},
		{"unhealthy", domain.EngineHealth{Status: "unhealthy", State: "running", HasProbe: true}, domain.RawUnhealthy},
		{"starting", domain.EngineHealth{Status: "starting", State: "running", HasProbe: true}, domain.RawStarting},
		{"no probe running", domain.EngineHealth{State: "running"}, domain.RawNoneRunning},
		{"no probe exited", domain.EngineHealth{State: "exited"}, domain.RawNoneStopped},
		{"probe reporting none", domain.EngineHealth{Status: "none", State: "running", HasProbe: true}, domain.RawNoneRunning},
		{"unexpected status", domain.EngineHealth{Status: "degraded", State: "running", HasProbe: true}, domain.RawUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.health.Raw())
		})
	}
}

func TestClassify(t *testing.T) {
	assert.Equal(t, domain.HealthClassHealthy, domain.Classify(domain.RawHealthy))
	assert.Equal(t, domain.HealthClassUnhealthy, domain.Classify(domain.RawUnhealthy))
	assert.Equal(t, domain.HealthClassPending, domain.Classify(domain.RawStarting))
	assert.Equal(t, domain.HealthClassInformational, domain.Classify(domain.RawNoneRunning))
	assert.Equal(t, domain.HealthClassInformational, domain.Classify(domain.RawNoneStopped))
	assert.Equal(t, domain.HealthClassUnknown, domain.Classify(domain.RawUnknown))
}

func TestNewContainerHealthRecord_Detail(t *testing.T) {
	record := domain.NewContainerHealthRecord(domain.EngineHealth{Name: "unpackerr", State: "exited"})

	assert.Equal(t, "unpackerr", record.Name)
	assert.Equal(t, domain.RawNoneStopped, record.Raw)
	assert.Equal(t, "exited, no health probe", record.Detail)
}

func TestHealthReport_PendingDoesNotFail(t *testing.T) {
	report := domain.NewHealthReport([]domain.ContainerHealthRecord{
		domain.NewContainerHealthRecord(domain.EngineHealth{Name: "postgres", Status: "healthy", State: "running", HasProbe: true}),
		domain.NewContainerHealthRecord(domain.EngineHealth{Name: "jellyfin", Status: "starting", State: "running", HasProbe: true}),
		domain.NewContainerHealthRecord(domain.EngineHealth{Name: "sonarr", State: "running"}),
	})

	assert.True(t, report.Passed())
	assert.Equal(t, domain.HealthSummary{Healthy: 1, Other: 2}, report.Summary)
	assert.Equal(t, 3, report.Summary.Total())
}

func TestHealthReport_UnhealthyFails(t *testing.T) {
	report := domain.NewHealthReport([]domain.ContainerHealthRecord{
		domain.NewContainerHealthRecord(domain.EngineHealth{Name: "wikijs", Status: "unhealthy", State: "running", HasProbe: true}),
	})

	assert.False(t, report.Passed())
	assert.Equal(t, 1, report.Summary.Unhealthy)
}
