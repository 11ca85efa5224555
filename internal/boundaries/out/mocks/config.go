package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockConfigStore is a mock implementation of out.ConfigStore
type MockConfigStore struct {
	mock.Mock
}

func (m *MockConfigStore) Ensure(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *MockConfigStore) Load(ctx context.Context) (map[string]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockConfigStore) GenerateSecrets(ctx context.Context, force bool) ([]string, error) {
	args := m.Called(ctx, force)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockConfigStore) Path() string {
	args := m.Called()
	return args.String(0)
}

// MockDirectoryMaker is a mock implementation of out.DirectoryMaker
type MockDirectoryMaker struct {
	mock.Mock
}

func (m *MockDirectoryMaker) EnsureDir(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}
