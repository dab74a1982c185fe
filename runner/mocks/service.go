package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/vertex-ml/sagemaker-training/runner"
	"github.com/vertex-ml/sagemaker-training/training"
)

// Service is a mock implementation of the runner.Service interface.
type Service struct {
	mock.Mock
}

func (m *Service) Run(ctx context.Context, spec training.Spec, opts runner.RunOptions) (runner.RunResult, error) {
	args := m.Called(ctx, spec, opts)

	return args.Get(0).(runner.RunResult), args.Error(1)
}

func (m *Service) Status(ctx context.Context, jobName string) (training.Job, error) {
	args := m.Called(ctx, jobName)

	return args.Get(0).(training.Job), args.Error(1)
}

func (m *Service) Stop(ctx context.Context, jobName string) error {
	args := m.Called(ctx, jobName)

	return args.Error(0)
}

func (m *Service) List(ctx context.Context, nameContains string, status training.Status, maxResults int32) (training.JobPage, error) {
	args := m.Called(ctx, nameContains, status, maxResults)

	return args.Get(0).(training.JobPage), args.Error(1)
}

func (m *Service) Logs(ctx context.Context, jobName string) (string, error) {
	args := m.Called(ctx, jobName)

	return args.String(0), args.Error(1)
}
