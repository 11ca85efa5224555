// Package docker implements the container runtime adapter using Docker API.
package docker

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	cerrdefs "github.com/containerd/errdefs"
	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/api/types/volume"
	"github.com/docker/docker/client"

	"github.com/bnema/mediastack/internal/domain"
	"github.com/bnema/mediastack/internal/logging"
)

// Runtime implements the ContainerRuntime interface using Docker API.
type Runtime struct {
	client *client.Client
}

// NewRuntime creates a new Docker runtime instance.
// An empty host falls back to DOCKER_HOST and the platform default socket.
func NewRuntime(host string) (*Runtime, error) {
	opts := []client.Opt{client.FromEnv, client.WithAPIVersionNegotiation()}
	if host != "" {
		opts = append(opts, client.WithHost(host))
	}

	cli, err := client.NewClientWithOpts(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Docker client: %w", err)
	}

	return &Runtime{
		client: cli,
	}, nil
}

// NewRuntimeWithClient creates a new Docker runtime instance with a custom client (for testing).
func NewRuntimeWithClient(cli *client.Client) *Runtime {
	return &Runtime{
		client: cli,
	}
}

// Close releases the underlying client.
func (r *Runtime) Close() error {
	return r.client.Close()
}

func adapterCtx(ctx context.Context, action string, keyvals ...any) context.Context {
	fields := append([]any{
		logging.FieldLayer, "adapter",
		logging.FieldAdapter, "docker",
		logging.FieldAction, action,
	}, keyvals...)
	return logging.CtxWithFields(ctx, fields...)
}

// Ping checks that the engine answers.
func (r *Runtime) Ping(ctx context.Context) error {
	ctx = adapterCtx(ctx, "Ping")
	log := logging.FromCtx(ctx)

	if _, err := r.client.Ping(ctx); err != nil {
		log.Debug("engine ping failed", "error", err)
		return fmt.Errorf("%w: %v", domain.ErrEngineUnavailable, err)
	}
	return nil
}

// Info returns engine diagnostics.
func (r *Runtime) Info(ctx context.Context) (domain.EngineInfo, error) {
	ctx = adapterCtx(ctx, "Info")
	log := logging.FromCtx(ctx)

	info, err := r.client.Info(ctx)
	if err != nil {
		return domain.EngineInfo{}, logging.WrapErr(log, err, "failed to get engine info")
	}

	return domain.EngineInfo{
		ServerVersion:     info.ServerVersion,
		APIVersion:        r.client.ClientVersion(),
		OperatingSystem:   info.OperatingSystem,
		KernelVersion:     info.KernelVersion,
		Architecture:      info.Architecture,
		Containers:        info.Containers,
		ContainersRunning: info.ContainersRunning,
		ContainersStopped: info.ContainersStopped,
		Images:            info.Images,
		StorageDriver:     info.Driver,
		DockerRootDir:     info.DockerRootDir,
	}, nil
}

// DiskUsage summarizes the space used by the engine.
func (r *Runtime) DiskUsage(ctx context.Context) (domain.DiskUsage, error) {
	ctx = adapterCtx(ctx, "DiskUsage")
	log := logging.FromCtx(ctx)

	du, err := r.client.DiskUsage(ctx, types.DiskUsageOptions{})
	if err != nil {
		return domain.DiskUsage{}, logging.WrapErr(log, err, "failed to get disk usage")
	}

	usage := domain.DiskUsage{Images: du.LayersSize}
	for _, c := range du.Containers {
		if c != nil {
			usage.Containers += c.SizeRw
		}
	}
	for _, v := range du.Volumes {
		if v != nil && v.UsageData != nil && v.UsageData.Size > 0 {
			usage.Volumes += v.UsageData.Size
		}
	}
	for _, b := range du.BuildCache {
		if b != nil {
			usage.BuildCache += b.Size
		}
	}

	return usage, nil
}

// CreateNetwork creates a new Docker network.
// It returns domain.ErrNetworkExists when the name is taken.
func (r *Runtime) CreateNetwork(ctx context.Context, desc domain.NetworkDescriptor) error {
	ctx = adapterCtx(ctx, "CreateNetwork", logging.FieldNetwork, desc.Name)
	log := logging.FromCtx(ctx)

	driver := desc.Driver
	if driver == "" {
		driver = domain.DefaultNetworkDriver
	}

	_, err := r.client.NetworkCreate(ctx, desc.Name, network.CreateOptions{
		Driver: driver,
		Labels: map[string]string{
			domain.LabelManaged: "true",
		},
	})
	if err != nil {
		if cerrdefs.IsConflict(err) {
			return fmt.Errorf("%w: %s", domain.ErrNetworkExists, desc.Name)
		}
		return logging.WrapErr(log, err, "failed to create network")
	}

	log.Info("network created", "driver", driver)
	return nil
}

// ListNetworks lists all Docker networks.
func (r *Runtime) ListNetworks(ctx context.Context) ([]domain.NetworkInfo, error) {
	ctx = adapterCtx(ctx, "ListNetworks")
	log := logging.FromCtx(ctx)

	networks, err := r.client.NetworkList(ctx, network.ListOptions{})
	if err != nil {
		return nil, logging.WrapErr(log, err, "failed to list networks")
	}

	result := make([]domain.NetworkInfo, 0, len(networks))
	for _, net := range networks {
		result = append(result, domain.NetworkInfo{
			ID:         net.ID,
			Name:       net.Name,
			Driver:     net.Driver,
			Containers: endpointNames(net.Containers),
			Labels:     net.Labels,
		})
	}

	return result, nil
}

// InspectNetwork returns a network and the containers attached to it.
func (r *Runtime) InspectNetwork(ctx context.Context, name string) (domain.NetworkInfo, error) {
	ctx = adapterCtx(ctx, "InspectNetwork", logging.FieldNetwork, name)
	log := logging.FromCtx(ctx)

	net, err := r.client.NetworkInspect(ctx, name, network.InspectOptions{})
	if err != nil {
		if cerrdefs.IsNotFound(err) {
			return domain.NetworkInfo{}, fmt.Errorf("%w: %s", domain.ErrNetworkNotFound, name)
		}
		return domain.NetworkInfo{}, logging.WrapErr(log, err, "failed to inspect network")
	}

	return domain.NetworkInfo{
		ID:         net.ID,
		Name:       net.Name,
		Driver:     net.Driver,
		Containers: endpointNames(net.Containers),
		Labels:     net.Labels,
	}, nil
}

func endpointNames(endpoints map[string]network.EndpointResource) []string {
	names := make([]string, 0, len(endpoints))
	for id, ep := range endpoints {
		if ep.Name != "" {
			names = append(names, ep.Name)
			continue
		}
		names = append(names, id)
	}
	sort.Strings(names)
	return names
}

// RemoveNetwork removes a Docker network.
func (r *Runtime) RemoveNetwork(ctx context.Context, name string) error {
	ctx = adapterCtx(ctx, "RemoveNetwork", logging.FieldNetwork, name)
	log := logging.FromCtx(ctx)

	err := r.client.NetworkRemove(ctx, name)
	if err != nil {
		if cerrdefs.IsNotFound(err) {
			log.Debug("network not found, already removed")
			return nil
		}
		if cerrdefs.IsConflict(err) || cerrdefs.IsPermissionDenied(err) {
			return fmt.Errorf("%w: %s", domain.ErrNetworkInUse, name)
		}
		return logging.WrapErr(log, err, "failed to remove network")
	}

	log.Info("network removed")
	return nil
}

// ListContainers lists containers, optionally restricted to one compose project.
func (r *Runtime) ListContainers(ctx context.Context, filter domain.ContainerFilter) ([]domain.Container, error) {
	ctx = adapterCtx(ctx, "ListContainers", "project", filter.Project, "all", filter.All)
	log := logging.FromCtx(ctx)

	opts := container.ListOptions{All: filter.All}
	if filter.Project != "" {
		opts.Filters = filters.NewArgs(filters.Arg("label", domain.LabelComposeProject+"="+filter.Project))
	}

	containers, err := r.client.ContainerList(ctx, opts)
	if err != nil {
		return nil, logging.WrapErr(log, err, "failed to list containers")
	}

	result := make([]domain.Container, 0, len(containers))
	for _, c := range containers {
		// Get the primary name (remove leading slash)
		name := ""
		if len(c.Names) > 0 {
			name = strings.TrimPrefix(c.Names[0], "/")
		}

		result = append(result, domain.Container{
			ID:     c.ID,
			Name:   name,
			Image:  c.Image,
			State:  c.State,
			Status: c.Status,
			Labels: c.Labels,
		})
	}

	return result, nil
}

// InspectHealth reports the health check status and coarse state of a container.
func (r *Runtime) InspectHealth(ctx context.Context, containerID string) (domain.EngineHealth, error) {
	ctx = adapterCtx(ctx, "InspectHealth", "container", containerID)
	log := logging.FromCtx(ctx)

	resp, err := r.client.ContainerInspect(ctx, containerID)
	if err != nil {
		return domain.EngineHealth{}, logging.WrapErr(log, err, "failed to inspect container")
	}

	health := domain.EngineHealth{Name: containerID}
	if resp.ContainerJSONBase == nil {
		return health, nil
	}

	health.Name = strings.TrimPrefix(resp.Name, "/")
	if resp.State != nil {
		health.State = resp.State.Status
		if resp.State.Health != nil {
			health.Status = resp.State.Health.Status
		}
	}
	health.HasProbe = hasHealthcheck(resp.Config)
	if !health.HasProbe {
		health.Status = ""
	}

	return health, nil
}

func hasHealthcheck(cfg *container.Config) bool {
	if cfg == nil || cfg.Healthcheck == nil || len(cfg.Healthcheck.Test) == 0 {
		return false
	}
	return cfg.Healthcheck.Test[0] != "NONE"
}

// RemoveContainer force-removes a container.
func (r *Runtime) RemoveContainer(ctx context.Context, containerID string) error {
	ctx = adapterCtx(ctx, "RemoveContainer", "container", containerID)
	log := logging.FromCtx(ctx)

	err := r.client.ContainerRemove(ctx, containerID, container.RemoveOptions{Force: true})
	if err != nil {
		if cerrdefs.IsNotFound(err) {
			log.Debug("container not found, already removed")
			return nil
		}
		return logging.WrapErr(log, err, "failed to remove container")
	}

	log.Info("container removed")
	return nil
}

// ListVolumes lists volumes. danglingOnly keeps volumes no container references.
func (r *Runtime) ListVolumes(ctx context.Context, danglingOnly bool) ([]domain.Volume, error) {
	ctx = adapterCtx(ctx, "ListVolumes", "dangling", danglingOnly)
	log := logging.FromCtx(ctx)

	opts := volume.ListOptions{}
	if danglingOnly {
		opts.Filters = filters.NewArgs(filters.Arg("dangling", "true"))
	}

	resp, err := r.client.VolumeList(ctx, opts)
	if err != nil {
		return nil, logging.WrapErr(log, err, "failed to list volumes")
	}

	result := make([]domain.Volume, 0, len(resp.Volumes))
	for _, v := range resp.Volumes {
		if v == nil {
			continue
		}
		result = append(result, domain.Volume{
			Name:   v.Name,
			Driver: v.Driver,
			Labels: v.Labels,
		})
	}

	return result, nil
}

// RemoveVolume removes a volume. The engine refuses volumes still in use
// and protected volumes are never sent to the engine.
func (r *Runtime) RemoveVolume(ctx context.Context, name string) error {
	ctx = adapterCtx(ctx, "RemoveVolume", logging.FieldResource, name)
	log := logging.FromCtx(ctx)

	if domain.IsProtectedVolume(name) {
		return logging.WrapErr(log, fmt.Errorf("%w: %s", domain.ErrVolumeProtected, name), "refusing to remove volume")
	}

	if err := r.client.VolumeRemove(ctx, name, false); err != nil {
		if cerrdefs.IsNotFound(err) {
			log.Debug("volume not found, already removed")
			return nil
		}
		return logging.WrapErr(log, err, "failed to remove volume")
	}

	log.Info("volume removed")
	return nil
}

// PruneContainers removes every stopped container.
func (r *Runtime) PruneContainers(ctx context.Context) (domain.PruneReport, error) {
	ctx = adapterCtx(ctx, "PruneContainers")
	log := logging.FromCtx(ctx)

	report, err := r.client.ContainersPrune(ctx, filters.NewArgs())
	if err != nil {
		return domain.PruneReport{}, logging.WrapErr(log, err, "failed to prune containers")
	}
	if err := checkSpaceReclaimed(report.SpaceReclaimed); err != nil {
		return domain.PruneReport{}, logging.WrapErr(log, err, "invalid prune report")
	}

	log.Debug("containers pruned", logging.FieldCount, len(report.ContainersDeleted))
	return domain.PruneReport{
		Deleted:        report.ContainersDeleted,
		SpaceReclaimed: report.SpaceReclaimed,
	}, nil
}

// PruneNetworks removes every network without attached containers.
func (r *Runtime) PruneNetworks(ctx context.Context) (domain.PruneReport, error) {
	ctx = adapterCtx(ctx, "PruneNetworks")
	log := logging.FromCtx(ctx)

	report, err := r.client.NetworksPrune(ctx, filters.NewArgs())
	if err != nil {
		return domain.PruneReport{}, logging.WrapErr(log, err, "failed to prune networks")
	}

	log.Debug("networks pruned", logging.FieldCount, len(report.NetworksDeleted))
	return domain.PruneReport{Deleted: report.NetworksDeleted}, nil
}

// PruneImages removes images no container uses.
// danglingOnly restricts the prune to untagged images.
func (r *Runtime) PruneImages(ctx context.Context, danglingOnly bool) (domain.PruneReport, error) {
	ctx = adapterCtx(ctx, "PruneImages", "dangling", danglingOnly)
	log := logging.FromCtx(ctx)

	args := filters.NewArgs(filters.Arg("dangling", fmt.Sprintf("%t", danglingOnly)))
	report, err := r.client.ImagesPrune(ctx, args)
	if err != nil {
		return domain.PruneReport{}, logging.WrapErr(log, err, "failed to prune images")
	}
	if err := checkSpaceReclaimed(report.SpaceReclaimed); err != nil {
		return domain.PruneReport{}, logging.WrapErr(log, err, "invalid prune report")
	}

	deleted := make([]string, 0, len(report.ImagesDeleted))
	for _, item := range report.ImagesDeleted {
		if item.Deleted != "" {
			deleted = append(deleted, item.Deleted)
			continue
		}
		if item.Untagged != "" {
			deleted = append(deleted, item.Untagged)
		}
	}

	log.Debug("images pruned", logging.FieldCount, len(deleted))
	return domain.PruneReport{
		Deleted:        deleted,
		SpaceReclaimed: report.SpaceReclaimed,
	}, nil
}

// PruneBuildCache removes dangling build cache records.
func (r *Runtime) PruneBuildCache(ctx context.Context) (domain.PruneReport, error) {
	ctx = adapterCtx(ctx, "PruneBuildCache")
	log := logging.FromCtx(ctx)

	report, err := r.client.BuildCachePrune(ctx, types.BuildCachePruneOptions{})
	if err != nil {
		return domain.PruneReport{}, logging.WrapErr(log, err, "failed to prune build cache")
	}
	if err := checkSpaceReclaimed(report.SpaceReclaimed); err != nil {
		return domain.PruneReport{}, logging.WrapErr(log, err, "invalid prune report")
	}

	log.Debug("build cache pruned", logging.FieldCount, len(report.CachesDeleted))
	return domain.PruneReport{
		Deleted:        report.CachesDeleted,
		SpaceReclaimed: report.SpaceReclaimed,
	}, nil
}

// checkSpaceReclaimed rejects values the presentation layer cannot render.
func checkSpaceReclaimed(v uint64) error {
	if v > math.MaxInt64 {
		return fmt.Errorf("space reclaimed %d overflows int64", v)
	}
	return nil
}
