package mocks

import (
	"context"
	"time"

	awssagemaker "github.com/aws/aws-sdk-go-v2/service/sagemaker"
	"github.com/stretchr/testify/mock"

	"github.com/vertex-ml/sagemaker-training/training"
)

// Client is a mock implementation of the sagemaker.Client interface.
type Client struct {
	mock.Mock
}

func (m *Client) Submit(ctx context.Context, req *awssagemaker.CreateTrainingJobInput) (string, error) {
	args := m.Called(ctx, req)

	return args.String(0), args.Error(1)
}

func (m *Client) Describe(ctx context.Context, jobName string) (training.Job, error) {
	args := m.Called(ctx, jobName)

	return args.Get(0).(training.Job), args.Error(1)
}

func (m *Client) AwaitCompletion(ctx context.Context, jobName string, interval, maxWait time.Duration) (training.Status, error) {
	args := m.Called(ctx, jobName, interval, maxWait)

	return args.Get(0).(training.Status), args.Error(1)
}

func (m *Client) Stop(ctx context.Context, jobName string) error {
	args := m.Called(ctx, jobName)

	return args.Error(0)
}

func (m *Client) List(ctx context.Context, nameContains string, status training.Status, maxResults int32) (training.JobPage, error) {
	args := m.Called(ctx, nameContains, status, maxResults)

	return args.Get(0).(training.JobPage), args.Error(1)
}

func (m *Client) Logs(ctx context.Context, jobName string) (string, error) {
	args := m.Called(ctx, jobName)

	return args.String(0), args.Error(1)
}
