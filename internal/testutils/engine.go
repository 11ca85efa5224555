package testutils

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/bnema/mediastack/internal/domain"
)

// FakeEngine is an in-memory out.ContainerRuntime.
// Networks remember their attached containers; volumes remember their users.
type FakeEngine struct {
	mu sync.Mutex

	networks    map[string]domain.NetworkDescriptor
	attachments map[string]map[string]bool
	containers  map[string]domain.Container
	volumes     map[string]map[string]bool
	health      map[string]domain.EngineHealth
	images      map[string]bool

	// PingErr is returned by Ping when set.
	PingErr error
	// Errors forces a failure for "Method:name" keys, e.g. "RemoveVolume:cache".
	Errors map[string]error
	// Calls records every call as "Method:arg".
	Calls []string
}

// NewFakeEngine returns an empty engine.
func NewFakeEngine() *FakeEngine {
	return &FakeEngine{
		networks:    make(map[string]domain.NetworkDescriptor),
		attachments: make(map[string]map[string]bool),
		containers:  make(map[string]domain.Container),
		volumes:     make(map[string]map[string]bool),
		health:      make(map[string]domain.EngineHealth),
		images:      make(map[string]bool),
		Errors:      make(map[string]error),
	}
}

func (f *FakeEngine) record(method, arg string) error {
	key := method + ":" + arg
	f.Calls = append(f.Calls, key)
	return f.Errors[key]
}

// AddNetwork declares a network.
func (f *FakeEngine) AddNetwork(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.networks[name] = domain.NetworkDescriptor{Name: name, Driver: domain.DefaultNetworkDriver}
	if f.attachments[name] == nil {
		f.attachments[name] = make(map[string]bool)
	}
}

// AddContainer registers a container attached to networks and using volumes.
func (f *FakeEngine) AddContainer(c domain.Container, networks []string, volumes []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.containers[c.ID] = c
	for _, n := range networks {
		if f.attachments[n] == nil {
			f.attachments[n] = make(map[string]bool)
		}
		f.attachments[n][c.ID] = true
	}
	for _, v := range volumes {
		if f.volumes[v] == nil {
			f.volumes[v] = make(map[string]bool)
		}
		f.volumes[v][c.ID] = true
	}
}

// SetHealth sets what InspectHealth reports for a container.
func (f *FakeEngine) SetHealth(id string, h domain.EngineHealth) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.health[id] = h
}

// AddVolume registers an unreferenced volume.
func (f *FakeEngine) AddVolume(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.volumes[name] == nil {
		f.volumes[name] = make(map[string]bool)
	}
}

// AddImage registers an image no container uses.
func (f *FakeEngine) AddImage(ref string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.images[ref] = true
}

// HasNetwork reports whether a network exists.
func (f *FakeEngine) HasNetwork(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.networks[name]
	return ok
}

// HasVolume reports whether a volume exists.
func (f *FakeEngine) HasVolume(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.volumes[name]
	return ok
}

// HasContainer reports whether a container exists.
func (f *FakeEngine) HasContainer(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.containers[id]
	return ok
}

// Ping implements out.ContainerRuntime.
func (f *FakeEngine) Ping(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, "Ping:")
	if f.PingErr != nil {
		return fmt.Errorf("%w: %v", domain.ErrEngineUnavailable, f.PingErr)
	}
	return nil
}

// Info implements out.ContainerRuntime.
func (f *FakeEngine) Info(context.Context) (domain.EngineInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	info := domain.EngineInfo{ServerVersion: "28.0.1", APIVersion: "1.48", Images: len(f.images)}
	for _, c := range f.containers {
		info.Containers++
		if c.State == string(domain.ContainerStatusRunning) {
			info.ContainersRunning++
		} else {
			info.ContainersStopped++
		}
	}
	return info, nil
}

// DiskUsage implements out.ContainerRuntime.
func (f *FakeEngine) DiskUsage(context.Context) (domain.DiskUsage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("DiskUsage", ""); err != nil {
		return domain.DiskUsage{}, err
	}
	return domain.DiskUsage{Images: int64(len(f.images)) * 1024, Volumes: int64(len(f.volumes)) * 512}, nil
}

// CreateNetwork implements out.ContainerRuntime.
func (f *FakeEngine) CreateNetwork(_ context.Context, desc domain.NetworkDescriptor) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("CreateNetwork", desc.Name); err != nil {
		return err
	}
	if _, ok := f.networks[desc.Name]; ok {
		return fmt.Errorf("%w: %s", domain.ErrNetworkExists, desc.Name)
	}
	f.networks[desc.Name] = desc
	f.attachments[desc.Name] = make(map[string]bool)
	return nil
}

func (f *FakeEngine) networkInfo(name string) domain.NetworkInfo {
	attached := make([]string, 0, len(f.attachments[name]))
	for id := range f.attachments[name] {
		attached = append(attached, f.containers[id].Name)
	}
	sort.Strings(attached)
	return domain.NetworkInfo{ID: name, Name: name, Driver: f.networks[name].Driver, Containers: attached}
}

// ListNetworks implements out.ContainerRuntime.
func (f *FakeEngine) ListNetworks(context.Context) ([]domain.NetworkInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	names := make([]string, 0, len(f.networks))
	for name := range f.networks {
		names = append(names, name)
	}
	sort.Strings(names)

	result := make([]domain.NetworkInfo, 0, len(names))
	for _, name := range names {
		result = append(result, f.networkInfo(name))
	}
	return result, nil
}

// InspectNetwork implements out.ContainerRuntime.
func (f *FakeEngine) InspectNetwork(_ context.Context, name string) (domain.NetworkInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("InspectNetwork", name); err != nil {
		return domain.NetworkInfo{}, err
	}
	if _, ok := f.networks[name]; !ok {
		return domain.NetworkInfo{}, fmt.Errorf("%w: %s", domain.ErrNetworkNotFound, name)
	}
	return f.networkInfo(name), nil
}

// RemoveNetwork implements out.ContainerRuntime.
func (f *FakeEngine) RemoveNetwork(_ context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("RemoveNetwork", name); err != nil {
		return err
	}
	if len(f.attachments[name]) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrNetworkInUse, name)
	}
	delete(f.networks, name)
	delete(f.attachments, name)
	return nil
}

// ListContainers implements out.ContainerRuntime.
func (f *FakeEngine) ListContainers(_ context.Context, filter domain.ContainerFilter) ([]domain.Container, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("ListContainers", filter.Project); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(f.containers))
	for id := range f.containers {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	result := make([]domain.Container, 0, len(ids))
	for _, id := range ids {
		c := f.containers[id]
		if filter.Project != "" && c.Project() != filter.Project {
			continue
		}
		if !filter.All && c.State != string(domain.ContainerStatusRunning) {
			continue
		}
		result = append(result, c)
	}
	return result, nil
}

// InspectHealth implements out.ContainerRuntime.
func (f *FakeEngine) InspectHealth(_ context.Context, id string) (domain.EngineHealth, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("InspectHealth", id); err != nil {
		return domain.EngineHealth{}, err
	}
	c, ok := f.containers[id]
	if !ok {
		return domain.EngineHealth{}, fmt.Errorf("no such container: %s", id)
	}
	if h, ok := f.health[id]; ok {
		return h, nil
	}
	return domain.EngineHealth{Name: c.Name, State: c.State}, nil
}

// RemoveContainer implements out.ContainerRuntime.
func (f *FakeEngine) RemoveContainer(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("RemoveContainer", id); err != nil {
		return err
	}
	f.removeContainerLocked(id)
	return nil
}

func (f *FakeEngine) removeContainerLocked(id string) {
	delete(f.containers, id)
	delete(f.health, id)
	for _, attached := range f.attachments {
		delete(attached, id)
	}
	for _, users := range f.volumes {
		delete(users, id)
	}
}

// ListVolumes implements out.ContainerRuntime.
func (f *FakeEngine) ListVolumes(_ context.Context, danglingOnly bool) ([]domain.Volume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("ListVolumes", ""); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(f.volumes))
	for name, users := range f.volumes {
		if danglingOnly && len(users) > 0 {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	result := make([]domain.Volume, 0, len(names))
	for _, name := range names {
		result = append(result, domain.Volume{Name: name, Driver: "local"})
	}
	return result, nil
}

// RemoveVolume implements out.ContainerRuntime.
func (f *FakeEngine) RemoveVolume(_ context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("RemoveVolume", name); err != nil {
		return err
	}
	if domain.IsProtectedVolume(name) {
		return fmt.Errorf("%w: %s", domain.ErrVolumeProtected, name)
	}
	if len(f.volumes[name]) > 0 {
		return fmt.Errorf("volume %s is in use", name)
	}
	delete(f.volumes, name)
	return nil
}

// PruneContainers implements out.ContainerRuntime.
func (f *FakeEngine) PruneContainers(context.Context) (domain.PruneReport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("PruneContainers", ""); err != nil {
		return domain.PruneReport{}, err
	}

	var report domain.PruneReport
	for id, c := range f.containers {
		if c.State == string(domain.ContainerStatusRunning) {
			continue
		}
		f.removeContainerLocked(id)
		report.Deleted = append(report.Deleted, id)
	}
	sort.Strings(report.Deleted)
	return report, nil
}

// PruneNetworks implements out.ContainerRuntime.
func (f *FakeEngine) PruneNetworks(context.Context) (domain.PruneReport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("PruneNetworks", ""); err != nil {
		return domain.PruneReport{}, err
	}

	var report domain.PruneReport
	for name := range f.networks {
		if len(f.attachments[name]) > 0 {
			continue
		}
		delete(f.networks, name)
		delete(f.attachments, name)
		report.Deleted = append(report.Deleted, name)
	}
	sort.Strings(report.Deleted)
	return report, nil
}

// PruneImages implements out.ContainerRuntime.
func (f *FakeEngine) PruneImages(_ context.Context, danglingOnly bool) (domain.PruneReport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("PruneImages", fmt.Sprintf("%t", danglingOnly)); err != nil {
		return domain.PruneReport{}, err
	}

	var report domain.PruneReport
	for ref := range f.images {
		delete(f.images, ref)
		report.Deleted = append(report.Deleted, ref)
		report.SpaceReclaimed += 1024
	}
	sort.Strings(report.Deleted)
	return report, nil
}

// PruneBuildCache implements out.ContainerRuntime. The fake keeps no build cache.
func (f *FakeEngine) PruneBuildCache(context.Context) (domain.PruneReport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("PruneBuildCache", ""); err != nil {
		return domain.PruneReport{}, err
	}
	return domain.PruneReport{}, nil
}
