package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/bnema/mediastack/internal/domain"
)

// MockComposeExecutor is a mock implementation of out.ComposeExecutor
type MockComposeExecutor struct {
	mock.Mock
}

func (m *MockComposeExecutor) Version(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// Lifecycle
func (m *MockComposeExecutor) Up(ctx context.Context, services []string) error {
	args := m.Called(ctx, services)
	return args.Error(0)
}

func (m *MockComposeExecutor) Down(ctx context.Context, removeOrphans bool) error {
	args := m.Called(ctx, removeOrphans)
	return args.Error(0)
}

func (m *MockComposeExecutor) Stop(ctx context.Context, services []string) error {
	args := m.Called(ctx, services)
	return args.Error(0)
}

func (m *MockComposeExecutor) Restart(ctx context.Context, services []string) error {
	args := m.Called(ctx, services)
	return args.Error(0)
}

func (m *MockComposeExecutor) Remove(ctx context.Context, services []string) error {
	args := m.Called(ctx, services)
	return args.Error(0)
}

func (m *MockComposeExecutor) Pull(ctx context.Context, services []string, ignoreFailures bool) error {
	args := m.Called(ctx, services, ignoreFailures)
	return args.Error(0)
}

// Inspection
func (m *MockComposeExecutor) Ps(ctx context.Context, all bool) ([]domain.ServiceContainer, error) {
	args := m.Called(ctx, all)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ServiceContainer), args.Error(1)
}

func (m *MockComposeExecutor) Logs(ctx context.Context, services []string, follow bool, tail string, w io.Writer) error {
	args := m.Called(ctx, services, follow, tail, w)
	return args.Error(0)
}

func (m *MockComposeExecutor) Services(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
