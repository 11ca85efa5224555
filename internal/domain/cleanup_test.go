package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/mediastack/internal/domain"
)

func TestClassifyVolume(t *testing.T) {
	tests := []struct {
		name string
		want domain.VolumeClass
	}{
		{"mediastack_postgres_data", domain.VolumeProtected},
		{"mediastack_redis", domain.VolumeProtected},
		{"wiki_DB", domain.VolumeProtected},
		{"app-db", domain.VolumeProtected},
		{"mariadb_config", domain.VolumeProtected},
		{"jellyfin_cache", domain.VolumeCache},
		{"tdarr-tmp", domain.VolumeCache},
		{"sonarr_config", domain.VolumeOther},
		{"3f2a9c1b0d", domain.VolumeOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ClassifyVolume(tt.name))
		})
	}
}

func TestIsProtectedVolume(t *testing.T) {
	assert.True(t, domain.IsProtectedVolume("postgres_data"))
	assert.False(t, domain.IsProtectedVolume("jellyfin_cache"))
}

func TestPhaseResult_Fail(t *testing.T) {
	result := domain.NewPhaseResult(domain.PhaseNetworks)
	assert.True(t, result.Ok())

	result.Fail("network media: in use")

	assert.False(t, result.Ok())
	assert.Equal(t, domain.PhaseSoftFailure, result.Status)
	assert.Equal(t, []string{"network media: in use"}, result.Errors)
}

func TestCleanupReport(t *testing.T) {
	orphans := domain.NewPhaseResult(domain.PhaseOrphans)
	images := domain.NewPhaseResult(domain.PhaseImages)
	images.SpaceReclaimed = 1500
	system := domain.NewPhaseResult(domain.PhaseSystem)
	system.SpaceReclaimed = 500

	report := domain.CleanupReport{Phases: []domain.PhaseResult{orphans, images, system}}
	assert.True(t, report.Ok())
	assert.Equal(t, uint64(2000), report.SpaceReclaimed())

	system.Fail("prune failed")
	report.Phases[2] = system
	assert.False(t, report.Ok())
}

func TestDiskUsage_Total(t *testing.T) {
	usage := domain.DiskUsage{Images: 10, Containers: 20, Volumes: 30, BuildCache: 40}
	assert.Equal(t, int64(100), usage.Total())
}
