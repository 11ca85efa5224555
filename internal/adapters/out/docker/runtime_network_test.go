package docker

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/docker/docker/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/mediastack/internal/domain"
)

func TestRuntime_CreateNetwork(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1.41/networks/create", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "media", body["Name"])
		assert.Equal(t, "bridge", body["Driver"])
		assert.Equal(t, map[string]any{domain.LabelManaged: "true"}, body["Labels"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"Id":"net1","Warning":""}`))
	}))
	defer server.Close()

	runtime := newRuntimeForHTTPServer(t, server)
	err := runtime.CreateNetwork(context.Background(), domain.NetworkDescriptor{Name: "media"})

	assert.NoError(t, err)
}

func TestRuntime_CreateNetwork_AlreadyExists(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"network with name media already exists"}`))
	}))
	defer server.Close()

	runtime := newRuntimeForHTTPServer(t, server)
	err := runtime.CreateNetwork(context.Background(), domain.NetworkDescriptor{Name: "media", Driver: "bridge"})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNetworkExists)
}

func TestRuntime_CreateNetwork_EngineFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"boom"}`))
	}))
	defer server.Close()

	runtime := newRuntimeForHTTPServer(t, server)
	err := runtime.CreateNetwork(context.Background(), domain.NetworkDescriptor{Name: "media"})

	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNetworkExists)
}

func TestRuntime_InspectNetwork_ListsAttachedContainers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1.41/networks/media", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"Id":"net1",
			"Name":"media",
			"Driver":"bridge",
			"Containers":{
				"c2":{"Name":"sonarr"},
				"c1":{"Name":"jellyfin"},
				"c3":{}
			}
		}`))
	}))
	defer server.Close()

	runtime := newRuntimeForHTTPServer(t, server)
	info, err := runtime.InspectNetwork(context.Background(), "media")

	require.NoError(t, err)
	assert.Equal(t, "media", info.Name)
	assert.Equal(t, "bridge", info.Driver)
	assert.Equal(t, []string{"c3", "jellyfin", "sonarr"}, info.Containers)
	assert.True(t, info.InUse())
}

func TestRuntime_InspectNetwork_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"network media not found"}`))
	}))
	defer server.Close()

	runtime := newRuntimeForHTTPServer(t, server)
	_, err := runtime.InspectNetwork(context.Background(), "media")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNetworkNotFound)
}

func TestRuntime_ListNetworks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1.41/networks", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"Id":"n1","Name":"media","Driver":"bridge","Labels":{"mediastack.managed":"true"}},
			{"Id":"n2","Name":"bridge","Driver":"bridge"}
		]`))
	}))
	defer server.Close()

	runtime := newRuntimeForHTTPServer(t, server)
	networks, err := runtime.ListNetworks(context.Background())

	require.NoError(t, err)
	require.Len(t, networks, 2)
	assert.Equal(t, "media", networks[0].Name)
	assert.Equal(t, "true", networks[0].Labels[domain.LabelManaged])
	assert.False(t, networks[1].InUse())
}

func TestRuntime_RemoveNetwork(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/v1.41/networks/downloads", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	runtime := newRuntimeForHTTPServer(t, server)

	assert.NoError(t, runtime.RemoveNetwork(context.Background(), "downloads"))
}

func TestRuntime_RemoveNetwork_MissingIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"network downloads not found"}`))
	}))
	defer server.Close()

	runtime := newRuntimeForHTTPServer(t, server)

	assert.NoError(t, runtime.RemoveNetwork(context.Background(), "downloads"))
}

func newRuntimeForHTTPServer(t *testing.T, server *httptest.Server) *Runtime {
	t.Helper()

	host := strings.TrimPrefix(server.URL, "http://")
	cli, err := client.NewClientWithOpts(client.WithHost("tcp://"+host), client.WithVersion("1.41"), client.WithHTTPClient(server.Client()))
	require.NoError(t, err)

	return NewRuntimeWithClient(cli)
}
