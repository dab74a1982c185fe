package runner_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vertex-ml/sagemaker-training/pkg/errors"
	"github.com/vertex-ml/sagemaker-training/pkg/sagemaker/mocks"
	"github.com/vertex-ml/sagemaker-training/runner"
	"github.com/vertex-ml/sagemaker-training/training"
)

const testARN = "arn:aws:sagemaker:us-east-1:123456789012:training-job/test-job-123"

type recordedOutputs struct {
	values map[string]string
}

func newRecordedOutputs() *recordedOutputs {
	return &recordedOutputs{values: make(map[string]string)}
}

func (r *recordedOutputs) Set(name, value string) error {
	r.values[name] = value

	return nil
}

func validSpec() training.Spec {
	return training.Spec{
		JobName:       "test-job-123",
		TrainingImage: "123456789012.dkr.ecr.us-east-1.amazonaws.com/my-algorithm:latest",
		RoleARN:       "arn:aws:iam::123456789012:role/SageMakerExecutionRole",
		InputDataConfig: `[{
			"ChannelName": "training",
			"DataSource": {"S3DataSource": {"S3DataType": "S3Prefix", "S3Uri": "s3://my-bucket/training-data/"}}
		}]`,
		OutputDataConfig: `{"S3OutputPath": "s3://my-bucket/output/"}`,
	}
}

func setupService(t *testing.T) (*mocks.Client, *recordedOutputs, runner.Service) {
	t.Helper()
	client := new(mocks.Client)
	outputs := newRecordedOutputs()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return client, outputs, runner.NewService(client, outputs, logger)
}

func TestRunAbortsOnInvalidSpec(t *testing.T) {
	t.Parallel()
	client, _, svc := setupService(t)

	_, err := svc.Run(context.Background(), training.Spec{}, runner.RunOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrValidation)

	var validationErr *errors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Len(t, validationErr.Violations, 5)

	client.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}

func TestRunSubmitWithoutWait(t *testing.T) {
	t.Parallel()
	client, outputs, svc := setupService(t)

	client.On("Submit", mock.Anything, mock.AnythingOfType("*sagemaker.CreateTrainingJobInput")).
		Return(testARN, nil)

	result, err := svc.Run(context.Background(), validSpec(), runner.RunOptions{Wait: false})
	require.NoError(t, err)

	assert.Equal(t, "test-job-123", result.JobName)
	assert.Equal(t, testARN, result.JobARN)
	assert.Equal(t, training.StatusInProgress, result.Status)
	assert.NotEmpty(t, result.Definition)

	assert.Equal(t, "test-job-123", outputs.values["job-name"])
	assert.Equal(t, testARN, outputs.values["job-arn"])
	assert.Equal(t, "InProgress", outputs.values["job-status"])
	assert.Contains(t, outputs.values["training-job-definition"], "test-job-123")

	client.AssertNotCalled(t, "AwaitCompletion", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRunWaitsForCompletion(t *testing.T) {
	t.Parallel()
	client, outputs, svc := setupService(t)

	client.On("Submit", mock.Anything, mock.Anything).Return(testARN, nil)
	client.On("AwaitCompletion", mock.Anything, "test-job-123", time.Minute, 24*time.Hour).
		Return(training.StatusCompleted, nil)
	client.On("Describe", mock.Anything, "test-job-123").Return(training.Job{
		Name:           "test-job-123",
		Status:         training.StatusCompleted,
		ModelArtifacts: "s3://my-bucket/output/test-job-123/model.tar.gz",
	}, nil)

	result, err := svc.Run(context.Background(), validSpec(), runner.RunOptions{
		Wait:          true,
		CheckInterval: time.Minute,
		MaxWait:       24 * time.Hour,
	})
	require.NoError(t, err)

	assert.Equal(t, training.StatusCompleted, result.Status)
	assert.Equal(t, "s3://my-bucket/output/test-job-123/model.tar.gz", result.ModelArtifacts)
	assert.Equal(t, "Completed", outputs.values["job-status"])
	assert.Equal(t, "s3://my-bucket/output/test-job-123/model.tar.gz", outputs.values["model-artifacts"])
}

func TestRunFailedTerminalStateIsAnError(t *testing.T) {
	t.Parallel()
	client, outputs, svc := setupService(t)

	client.On("Submit", mock.Anything, mock.Anything).Return(testARN, nil)
	client.On("AwaitCompletion", mock.Anything, "test-job-123", mock.Anything, mock.Anything).
		Return(training.StatusFailed, nil)
	client.On("Describe", mock.Anything, "test-job-123").Return(training.Job{
		Name:          "test-job-123",
		Status:        training.StatusFailed,
		FailureReason: "AlgorithmError: exit code 137",
	}, nil)

	result, err := svc.Run(context.Background(), validSpec(), runner.RunOptions{Wait: true, CheckInterval: time.Minute, MaxWait: time.Hour})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed")
	assert.Contains(t, err.Error(), "AlgorithmError")

	assert.Equal(t, training.StatusFailed, result.Status)
	assert.Equal(t, "Failed", outputs.values["job-status"])
}

func TestRunSubmissionErrorPropagates(t *testing.T) {
	t.Parallel()
	client, _, svc := setupService(t)

	client.On("Submit", mock.Anything, mock.Anything).Return("", errors.ErrSubmission)

	_, err := svc.Run(context.Background(), validSpec(), runner.RunOptions{})
	assert.ErrorIs(t, err, errors.ErrSubmission)
}

func TestRunTimeoutPropagates(t *testing.T) {
	t.Parallel()
	client, _, svc := setupService(t)

	client.On("Submit", mock.Anything, mock.Anything).Return(testARN, nil)
	client.On("AwaitCompletion", mock.Anything, "test-job-123", mock.Anything, mock.Anything).
		Return(training.Status(""), &errors.TimeoutError{JobName: "test-job-123", MaxWait: time.Hour})

	_, err := svc.Run(context.Background(), validSpec(), runner.RunOptions{Wait: true, CheckInterval: time.Minute, MaxWait: time.Hour})
	require.Error(t, err)

	var timeoutErr *errors.TimeoutError
	assert.ErrorAs(t, err, &timeoutErr)

	client.AssertNotCalled(t, "Describe", mock.Anything, mock.Anything)
}

func TestServicePassthroughs(t *testing.T) {
	t.Parallel()
	client, _, svc := setupService(t)

	client.On("Describe", mock.Anything, "job-a").Return(training.Job{Name: "job-a"}, nil)
	client.On("Stop", mock.Anything, "job-a").Return(nil)
	client.On("List", mock.Anything, "job", training.StatusInProgress, int32(10)).
		Return(training.JobPage{Jobs: []training.Job{{Name: "job-a"}}}, nil)
	client.On("Logs", mock.Anything, "job-a").Return("epoch 1", nil)

	job, err := svc.Status(context.Background(), "job-a")
	require.NoError(t, err)
	assert.Equal(t, "job-a", job.Name)

	require.NoError(t, svc.Stop(context.Background(), "job-a"))

	page, err := svc.List(context.Background(), "job", training.StatusInProgress, 10)
	require.NoError(t, err)
	assert.Len(t, page.Jobs, 1)

	logs, err := svc.Logs(context.Background(), "job-a")
	require.NoError(t, err)
	assert.Equal(t, "epoch 1", logs)
}
