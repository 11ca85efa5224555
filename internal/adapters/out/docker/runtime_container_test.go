package docker

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/docker/docker/api/types/filters"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/mediastack/internal/domain"
)

func TestRuntime_Ping_EngineUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"daemon is shutting down"}`))
	}))
	defer server.Close()

	runtime := newRuntimeForHTTPServer(t, server)
	err := runtime.Ping(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEngineUnavailable)
}

func TestRuntime_ListContainers_FiltersByProject(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1.41/containers/json", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("all"))

		parsedFilters, err := filters.FromJSON(r.URL.Query().Get("filters"))
		require.NoError(t, err)
		assert.Equal(t, []string{"com.docker.compose.project=mediastack"}, parsedFilters.Get("label"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{
			"Id":"c1",
			"Names":["/mediastack-sonarr-1"],
			"Image":"lscr.io/linuxserver/sonarr",
			"State":"exited",
			"Status":"Exited (0) 2 hours ago",
			"Labels":{"com.docker.compose.project":"mediastack","com.docker.compose.service":"sonarr"}
		}]`))
	}))
	defer server.Close()

	runtime := newRuntimeForHTTPServer(t, server)
	containers, err := runtime.ListContainers(context.Background(), domain.ContainerFilter{Project: "mediastack", All: true})

	require.NoError(t, err)
	require.Len(t, containers, 1)
	assert.Equal(t, "mediastack-sonarr-1", containers[0].Name)
	assert.Equal(t, "sonarr", containers[0].Service())
	assert.Equal(t, "mediastack", containers[0].Project())
	assert.True(t, containers[0].IsDead())
}

func TestRuntime_ListContainers_NoProjectFilter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.Query().Get("filters"))
		assert.Empty(t, r.URL.Query().Get("all"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	runtime := newRuntimeForHTTPServer(t, server)
	containers, err := runtime.ListContainers(context.Background(), domain.ContainerFilter{})

	require.NoError(t, err)
	assert.Empty(t, containers)
}

func TestRuntime_InspectHealth_ConfiguredHealthcheck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1.41/containers/c1/json", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"Id":"c1",
			"Name":"/mediastack-postgres-1",
			"State":{"Status":"running","Health":{"Status":"unhealthy","FailingStreak":3,"Log":[]}},
			"Config":{"Healthcheck":{"Test":["CMD-SHELL","pg_isready"]}}
		}`))
	}))
	defer server.Close()

	runtime := newRuntimeForHTTPServer(t, server)
	health, err := runtime.InspectHealth(context.Background(), "c1")

	require.NoError(t, err)
	assert.Equal(t, "mediastack-postgres-1", health.Name)
	assert.True(t, health.HasProbe)
	assert.Equal(t, "unhealthy", health.Status)
	assert.Equal(t, domain.RawUnhealthy, health.Raw())
}

func TestRuntime_InspectHealth_DisabledHealthcheck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"Id":"c2",
			"Name":"/mediastack-dozzle-1",
			"State":{"Status":"running","Health":{"Status":"starting","FailingStreak":0,"Log":[]}},
			"Config":{"Healthcheck":{"Test":["NONE"]}}
		}`))
	}))
	defer server.Close()

	runtime := newRuntimeForHTTPServer(t, server)
	health, err := runtime.InspectHealth(context.Background(), "c2")

	require.NoError(t, err)
	assert.False(t, health.HasProbe)
	assert.Empty(t, health.Status)
	assert.Equal(t, domain.RawNoneRunning, health.Raw())
}

func TestRuntime_InspectHealth_NoHealthcheckStopped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"Id":"c3",
			"Name":"/mediastack-recyclarr-1",
			"State":{"Status":"exited"},
			"Config":{"Healthcheck":null}
		}`))
	}))
	defer server.Close()

	runtime := newRuntimeForHTTPServer(t, server)
	health, err := runtime.InspectHealth(context.Background(), "c3")

	require.NoError(t, err)
	assert.Equal(t, "exited", health.State)
	assert.Equal(t, domain.RawNoneStopped, health.Raw())
}

func TestRuntime_RemoveContainer_Forces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/v1.41/containers/c1", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("force"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	runtime := newRuntimeForHTTPServer(t, server)

	assert.NoError(t, runtime.RemoveContainer(context.Background(), "c1"))
}

func TestRuntime_ListVolumes_DanglingFilter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1.41/volumes", r.URL.Path)

		parsedFilters, err := filters.FromJSON(r.URL.Query().Get("filters"))
		require.NoError(t, err)
		assert.Equal(t, []string{"true"}, parsedFilters.Get("dangling"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"Volumes":[
			{"Name":"mediastack_postgres_data","Driver":"local"},
			{"Name":"mediastack_tdarr_cache","Driver":"local"}
		],"Warnings":[]}`))
	}))
	defer server.Close()

	runtime := newRuntimeForHTTPServer(t, server)
	volumes, err := runtime.ListVolumes(context.Background(), true)

	require.NoError(t, err)
	require.Len(t, volumes, 2)
	assert.Equal(t, "mediastack_postgres_data", volumes[0].Name)
	assert.Equal(t, "local", volumes[1].Driver)
}

func TestRuntime_DiskUsage_SumsCategories(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1.41/system/df", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"LayersSize":1000,
			"Containers":[{"Id":"c1","SizeRw":20},{"Id":"c2","SizeRw":5}],
			"Volumes":[{"Name":"v1","UsageData":{"Size":300,"RefCount":1}},{"Name":"v2","UsageData":{"Size":-1,"RefCount":-1}}],
			"BuildCache":[{"ID":"b1","Size":7}]
		}`))
	}))
	defer server.Close()

	runtime := newRuntimeForHTTPServer(t, server)
	usage, err := runtime.DiskUsage(context.Background())

	require.NoError(t, err)
	assert.EqualValues(t, 1000, usage.Images)
	assert.EqualValues(t, 25, usage.Containers)
	assert.EqualValues(t, 300, usage.Volumes)
	assert.EqualValues(t, 7, usage.BuildCache)
	assert.EqualValues(t, 1332, usage.Total())
}
