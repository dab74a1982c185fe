package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/vertex-ml/sagemaker-training/pkg/errors"
	"github.com/vertex-ml/sagemaker-training/pkg/sagemaker"
	"github.com/vertex-ml/sagemaker-training/training"
)

type service struct {
	client  sagemaker.Client
	outputs Outputs
	logger  *slog.Logger
}

func NewService(client sagemaker.Client, outputs Outputs, logger *slog.Logger) Service {
	return &service{
		client:  client,
		outputs: outputs,
		logger:  logger,
	}
}

func (svc *service) Run(ctx context.Context, spec training.Spec, opts RunOptions) (RunResult, error) {
	validation := training.Validate(spec)
	for _, warning := range validation.Warnings {
		svc.logger.Warn(warning)
	}
	if !validation.Valid {
		return RunResult{}, &errors.ValidationError{Violations: validation.Errors}
	}
	svc.logger.Info("Input validation passed", slog.Int("warnings", len(validation.Warnings)))

	req, err := training.BuildRequest(spec)
	if err != nil {
		return RunResult{}, fmt.Errorf("%w: %w", errors.ErrUnknown, err)
	}

	definition, err := json.Marshal(req)
	if err != nil {
		return RunResult{}, fmt.Errorf("%w: %w", errors.ErrUnknown, err)
	}

	arn, err := svc.client.Submit(ctx, req)
	if err != nil {
		return RunResult{}, err
	}

	result := RunResult{
		JobName:       spec.JobName,
		JobARN:        arn,
		TrainingImage: spec.TrainingImage,
		Definition:    string(definition),
		Status:        training.StatusInProgress,
	}

	if err := svc.emit(map[string]string{
		"job-name":                spec.JobName,
		"job-arn":                 arn,
		"training-image":          spec.TrainingImage,
		"training-job-definition": string(definition),
	}); err != nil {
		return result, err
	}

	if !opts.Wait {
		if err := svc.outputs.Set("job-status", training.StatusInProgress.String()); err != nil {
			return result, err
		}
		svc.logger.Info("Training job submitted. Not waiting for completion.",
			slog.String("job_name", spec.JobName),
		)

		return result, nil
	}

	start := time.Now()
	status, err := svc.client.AwaitCompletion(ctx, spec.JobName, opts.CheckInterval, opts.MaxWait)
	if err != nil {
		return result, err
	}
	result.Status = status
	result.Elapsed = time.Since(start)

	// One final describe for the artifact location and failure reason.
	job, err := svc.client.Describe(ctx, spec.JobName)
	if err != nil {
		return result, err
	}
	result.ModelArtifacts = job.ModelArtifacts
	result.FailureReason = job.FailureReason

	if err := svc.outputs.Set("job-status", status.String()); err != nil {
		return result, err
	}
	if job.ModelArtifacts != "" {
		if err := svc.outputs.Set("model-artifacts", job.ModelArtifacts); err != nil {
			return result, err
		}
	}

	if status != training.StatusCompleted {
		reason := job.FailureReason
		if reason == "" {
			reason = "Unknown"
		}

		return result, fmt.Errorf("training job %s finished with status %s: %s", spec.JobName, status, reason)
	}

	return result, nil
}

func (svc *service) Status(ctx context.Context, jobName string) (training.Job, error) {
	return svc.client.Describe(ctx, jobName)
}

func (svc *service) Stop(ctx context.Context, jobName string) error {
	return svc.client.Stop(ctx, jobName)
}

func (svc *service) List(ctx context.Context, nameContains string, status training.Status, maxResults int32) (training.JobPage, error) {
	return svc.client.List(ctx, nameContains, status, maxResults)
}

func (svc *service) Logs(ctx context.Context, jobName string) (string, error) {
	return svc.client.Logs(ctx, jobName)
}

func (svc *service) emit(outputs map[string]string) error {
	for name, value := range outputs {
		if err := svc.outputs.Set(name, value); err != nil {
			return err
		}
	}

	return nil
}
