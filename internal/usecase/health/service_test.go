package health

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/mediastack/internal/boundaries/out/mocks"
	"github.com/bnema/mediastack/internal/domain"
	"github.com/bnema/mediastack/internal/logging"
)

func newTestService(rt *mocks.MockContainerRuntime) *Service {
	return NewService(rt, domain.ExecutionContext{ProjectName: "mediastack"}, logging.Discard())
}

func TestService_Evaluate_Classification(t *testing.T) {
	rt := new(mocks.MockContainerRuntime)
	rt.On("InspectHealth", mock.Anything, "c1").Return(domain.EngineHealth{Name: "postgres", Status: "healthy", State: "running", HasProbe: true}, nil)
	rt.On("InspectHealth", mock.Anything, "c2").Return(domain.EngineHealth{Name: "sonarr", State: "running"}, nil)
	rt.On("InspectHealth", mock.Anything, "c3").Return(domain.EngineHealth{Name: "jellyfin", Status: "starting", State: "running", HasProbe: true}, nil)

	svc := newTestService(rt)
	report, err := svc.Evaluate(context.Background(), []domain.Container{
		{ID: "c1", Name: "postgres"},
		{ID: "c2", Name: "sonarr"},
		{ID: "c3", Name: "jellyfin"},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, report.Summary.Healthy)
	assert.Equal(t, 0, report.Summary.Unhealthy)
	assert.Equal(t, 2, report.Summary.Other)
	assert.True(t, report.Passed())

	require.Len(t, report.Containers, 3)
	assert.Equal(t, "jellyfin", report.Containers[0].Name)
	assert.Equal(t, domain.HealthClassPending, report.Containers[0].Class)
	assert.Equal(t, domain.HealthClassHealthy, report.Containers[1].Class)
	assert.Equal(t, domain.HealthClassInformational, report.Containers[2].Class)
	assert.Equal(t, "running, no health probe", report.Containers[2].Detail)
	rt.AssertExpectations(t)
}

func TestService_Evaluate_UnhealthyFailsAggregate(t *testing.T) {
	rt := new(mocks.MockContainerRuntime)
	rt.On("InspectHealth", mock.Anything, "c1").Return(domain.EngineHealth{Name: "gluetun", Status: "unhealthy", State: "running", HasProbe: true}, nil)

	svc := newTestService(rt)
	report, err := svc.Evaluate(context.Background(), []domain.Container{{ID: "c1", Name: "gluetun"}})

	require.NoError(t, err)
	assert.Equal(t, 1, report.Summary.Unhealthy)
	assert.False(t, report.Passed())
}

func TestService_Evaluate_NothingRunning(t *testing.T) {
	svc := newTestService(new(mocks.MockContainerRuntime))

	report, err := svc.Evaluate(context.Background(), nil)

	assert.Nil(t, report)
	assert.ErrorIs(t, err, domain.ErrNothingRunning)
}

func TestService_Evaluate_InspectFailureIsUnknown(t *testing.T) {
	rt := new(mocks.MockContainerRuntime)
	rt.On("InspectHealth", mock.Anything, "c1").Return(domain.EngineHealth{}, errors.New("no such container"))

	svc := newTestService(rt)
	report, err := svc.Evaluate(context.Background(), []domain.Container{{ID: "c1", Name: "bazarr", State: "running"}})

	require.NoError(t, err)
	require.Len(t, report.Containers, 1)
	assert.Equal(t, domain.HealthClassUnknown, report.Containers[0].Class)
	assert.Equal(t, "bazarr", report.Containers[0].Name)
	assert.Equal(t, 1, report.Summary.Other)
	assert.True(t, report.Passed())
}

func TestService_Check_ListsRunningProjectContainers(t *testing.T) {
	rt := new(mocks.MockContainerRuntime)
	rt.On("ListContainers", mock.Anything, domain.ContainerFilter{Project: "mediastack"}).
		Return([]domain.Container{{ID: "c1", Name: "mediastack-radarr-1"}}, nil)
	rt.On("InspectHealth", mock.Anything, "c1").
		Return(domain.EngineHealth{Name: "c1", Status: "weird", State: "running", HasProbe: true}, nil)

	svc := newTestService(rt)
	report, err := svc.Check(context.Background())

	require.NoError(t, err)
	require.Len(t, report.Containers, 1)
	assert.Equal(t, "mediastack-radarr-1", report.Containers[0].Name)
	assert.Equal(t, domain.RawUnknown, report.Containers[0].Raw)
	rt.AssertExpectations(t)
}

func TestService_Check_NothingRunningIsDistinct(t *testing.T) {
	rt := new(mocks.MockContainerRuntime)
	rt.On("ListContainers", mock.Anything, mock.Anything).Return([]domain.Container{}, nil)

	svc := newTestService(rt)
	_, err := svc.Check(context.Background())

	assert.ErrorIs(t, err, domain.ErrNothingRunning)
}

func TestService_Check_EngineFailure(t *testing.T) {
	rt := new(mocks.MockContainerRuntime)
	rt.On("ListContainers", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))

	svc := newTestService(rt)
	_, err := svc.Check(context.Background())

	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNothingRunning)
}
