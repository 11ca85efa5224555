package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/bnema/mediastack/internal/domain"
)

// MockContainerRuntime is a mock implementation of out.ContainerRuntime
type MockContainerRuntime struct {
	mock.Mock
}

// Runtime information
func (m *MockContainerRuntime) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockContainerRuntime) Info(ctx context.Context) (domain.EngineInfo, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.EngineInfo), args.Error(1)
}

func (m *MockContainerRuntime) DiskUsage(ctx context.Context) (domain.DiskUsage, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.DiskUsage), args.Error(1)
}

// Network management
func (m *MockContainerRuntime) CreateNetwork(ctx context.Context, desc domain.NetworkDescriptor) error {
	args := m.Called(ctx, desc)
	return args.Error(0)
}

func (m *MockContainerRuntime) ListNetworks(ctx context.Context) ([]domain.NetworkInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.NetworkInfo), args.Error(1)
}

func (m *MockContainerRuntime) InspectNetwork(ctx context.Context, name string) (domain.NetworkInfo, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(domain.NetworkInfo), args.Error(1)
}

func (m *MockContainerRuntime) RemoveNetwork(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

// Container inspection
func (m *MockContainerRuntime) ListContainers(ctx context.Context, filter domain.ContainerFilter) ([]domain.Container, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Container), args.Error(1)
}

func (m *MockContainerRuntime) InspectHealth(ctx context.Context, containerID string) (domain.EngineHealth, error) {
	args := m.Called(ctx, containerID)
	return args.Get(0).(domain.EngineHealth), args.Error(1)
}

func (m *MockContainerRuntime) RemoveContainer(ctx context.Context, containerID string) error {
	args := m.Called(ctx, containerID)
	return args.Error(0)
}

// Volume management
func (m *MockContainerRuntime) ListVolumes(ctx context.Context, danglingOnly bool) ([]domain.Volume, error) {
	args := m.Called(ctx, danglingOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Volume), args.Error(1)
}

func (m *MockContainerRuntime) RemoveVolume(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

// Reclamation
func (m *MockContainerRuntime) PruneContainers(ctx context.Context) (domain.PruneReport, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.PruneReport), args.Error(1)
}

func (m *MockContainerRuntime) PruneNetworks(ctx context.Context) (domain.PruneReport, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.PruneReport), args.Error(1)
}

func (m *MockContainerRuntime) PruneImages(ctx context.Context, danglingOnly bool) (domain.PruneReport, error) {
	args := m.Called(ctx, danglingOnly)
	return args.Get(0).(domain.PruneReport), args.Error(1)
}

func (m *MockContainerRuntime) PruneBuildCache(ctx context.Context) (domain.PruneReport, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.PruneReport), args.Error(1)
}
