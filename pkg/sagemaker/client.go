// Package sagemaker wraps the SageMaker training-job API surface used by the
// action: create, describe, stop, list, completion polling and CloudWatch log
// retrieval.
package sagemaker

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/sagemaker"
	"github.com/aws/aws-sdk-go-v2/service/sagemaker/types"
	"github.com/aws/smithy-go"

	"github.com/vertex-ml/sagemaker-training/pkg/errors"
	"github.com/vertex-ml/sagemaker-training/training"
)

// Training jobs log to a fixed CloudWatch group, one stream per instance
// prefixed with the job name.
const (
	logGroupName  = "/aws/sagemaker/TrainingJobs"
	logEventLimit = 100
)

// API is the subset of the SageMaker service client the job client depends on.
type API interface {
	CreateTrainingJob(ctx context.Context, params *sagemaker.CreateTrainingJobInput, optFns ...func(*sagemaker.Options)) (*sagemaker.CreateTrainingJobOutput, error)
	DescribeTrainingJob(ctx context.Context, params *sagemaker.DescribeTrainingJobInput, optFns ...func(*sagemaker.Options)) (*sagemaker.DescribeTrainingJobOutput, error)
	StopTrainingJob(ctx context.Context, params *sagemaker.StopTrainingJobInput, optFns ...func(*sagemaker.Options)) (*sagemaker.StopTrainingJobOutput, error)
	ListTrainingJobs(ctx context.Context, params *sagemaker.ListTrainingJobsInput, optFns ...func(*sagemaker.Options)) (*sagemaker.ListTrainingJobsOutput, error)
}

// LogsAPI is the subset of the CloudWatch Logs client used for log retrieval.
type LogsAPI interface {
	DescribeLogStreams(ctx context.Context, params *cloudwatchlogs.DescribeLogStreamsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.DescribeLogStreamsOutput, error)
	GetLogEvents(ctx context.Context, params *cloudwatchlogs.GetLogEventsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.GetLogEventsOutput, error)
}

type Client interface {
	// Submit issues the create call and returns the training job ARN.
	// Rejections propagate verbatim, no retry.
	Submit(ctx context.Context, req *sagemaker.CreateTrainingJobInput) (string, error)

	// Describe fetches the current status and metadata of a job.
	Describe(ctx context.Context, jobName string) (training.Job, error)

	// AwaitCompletion polls the job at a fixed interval until a terminal
	// status is observed, returning that status. Once elapsed time reaches
	// maxWait without a terminal status it fails with a TimeoutError.
	// Describe failures during the loop propagate immediately.
	AwaitCompletion(ctx context.Context, jobName string, interval, maxWait time.Duration) (training.Status, error)

	// Stop issues a stop request without waiting for the job to transition.
	Stop(ctx context.Context, jobName string) error

	// List returns a single page of jobs sorted by creation time, newest
	// first, optionally filtered by name substring and status.
	List(ctx context.Context, nameContains string, status training.Status, maxResults int32) (training.JobPage, error)

	// Logs fetches recent CloudWatch log events for the job's first stream.
	Logs(ctx context.Context, jobName string) (string, error)
}

type client struct {
	api    API
	logs   LogsAPI
	logger *slog.Logger

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

func NewClient(cfg aws.Config, logger *slog.Logger) Client {
	return New(sagemaker.NewFromConfig(cfg), cloudwatchlogs.NewFromConfig(cfg), logger)
}

func New(api API, logs LogsAPI, logger *slog.Logger) Client {
	return &client{
		api:    api,
		logs:   logs,
		logger: logger,
		now:    time.Now,
		sleep:  sleepContext,
	}
}

func (c *client) Submit(ctx context.Context, req *sagemaker.CreateTrainingJobInput) (string, error) {
	jobName := aws.ToString(req.TrainingJobName)
	c.logger.Info("Creating SageMaker training job", slog.String("job_name", jobName))

	resp, err := c.api.CreateTrainingJob(ctx, req)
	if err != nil {
		var apiErr smithy.APIError
		if stderrors.As(err, &apiErr) {
			c.logger.Error("SageMaker rejected the training job",
				slog.String("job_name", jobName),
				slog.String("code", apiErr.ErrorCode()),
				slog.String("message", apiErr.ErrorMessage()),
			)
		}

		return "", fmt.Errorf("%w: %w", errors.ErrSubmission, err)
	}

	arn := aws.ToString(resp.TrainingJobArn)
	c.logger.Info("Training job created successfully",
		slog.String("job_name", jobName),
		slog.String("job_arn", arn),
	)

	return arn, nil
}

func (c *client) Describe(ctx context.Context, jobName string) (training.Job, error) {
	resp, err := c.api.DescribeTrainingJob(ctx, &sagemaker.DescribeTrainingJobInput{
		TrainingJobName: aws.String(jobName),
	})
	if err != nil {
		return training.Job{}, fmt.Errorf("%w: %s: %w", errors.ErrDescribe, jobName, err)
	}

	return jobFromDescribe(resp), nil
}

func (c *client) AwaitCompletion(ctx context.Context, jobName string, interval, maxWait time.Duration) (training.Status, error) {
	c.logger.Info("Waiting for training job completion",
		slog.String("job_name", jobName),
		slog.String("check_interval", interval.String()),
	)

	start := c.now()
	for c.now().Sub(start) < maxWait {
		job, err := c.Describe(ctx, jobName)
		if err != nil {
			return "", err
		}

		elapsed := c.now().Sub(start)
		c.logger.Info("Training job status check",
			slog.String("job_name", jobName),
			slog.String("status", job.Status.String()),
			slog.Int64("elapsed_seconds", int64(elapsed.Seconds())),
		)

		if job.Status.Terminal() {
			if job.Status == training.StatusCompleted {
				c.logger.Info("Training job completed successfully",
					slog.String("job_name", jobName),
					slog.Int64("total_seconds", int64(elapsed.Seconds())),
				)
			} else {
				reason := job.FailureReason
				if reason == "" {
					reason = "Unknown"
				}
				c.logger.Error("Training job finished without completing",
					slog.String("job_name", jobName),
					slog.String("status", job.Status.String()),
					slog.String("failure_reason", reason),
				)
			}

			return job.Status, nil
		}

		if job.SecondaryStatus != "" {
			c.logger.Debug("Training job secondary status",
				slog.String("job_name", jobName),
				slog.String("secondary_status", job.SecondaryStatus),
			)
		}

		if err := c.sleep(ctx, interval); err != nil {
			return "", err
		}
	}

	c.logger.Error("Timeout waiting for training job completion",
		slog.String("job_name", jobName),
		slog.String("max_wait", maxWait.String()),
	)

	return "", &errors.TimeoutError{JobName: jobName, MaxWait: maxWait}
}

func (c *client) Stop(ctx context.Context, jobName string) error {
	c.logger.Info("Stopping training job", slog.String("job_name", jobName))

	if _, err := c.api.StopTrainingJob(ctx, &sagemaker.StopTrainingJobInput{
		TrainingJobName: aws.String(jobName),
	}); err != nil {
		return fmt.Errorf("%w: %s: %w", errors.ErrStop, jobName, err)
	}

	c.logger.Info("Stop request sent for training job", slog.String("job_name", jobName))

	return nil
}

func (c *client) List(ctx context.Context, nameContains string, status training.Status, maxResults int32) (training.JobPage, error) {
	params := &sagemaker.ListTrainingJobsInput{
		MaxResults: aws.Int32(maxResults),
		SortBy:     types.SortByCreationTime,
		SortOrder:  types.SortOrderDescending,
	}
	if nameContains != "" {
		params.NameContains = aws.String(nameContains)
	}
	if status != "" {
		params.StatusEquals = types.TrainingJobStatus(status)
	}

	resp, err := c.api.ListTrainingJobs(ctx, params)
	if err != nil {
		return training.JobPage{}, fmt.Errorf("%w: %w", errors.ErrList, err)
	}

	jobs := make([]training.Job, 0, len(resp.TrainingJobSummaries))
	for _, s := range resp.TrainingJobSummaries {
		jobs = append(jobs, training.Job{
			Name:      aws.ToString(s.TrainingJobName),
			ARN:       aws.ToString(s.TrainingJobArn),
			Status:    training.Status(s.TrainingJobStatus),
			CreatedAt: aws.ToTime(s.CreationTime),
			EndedAt:   aws.ToTime(s.TrainingEndTime),
		})
	}

	return training.JobPage{Jobs: jobs}, nil
}

func (c *client) Logs(ctx context.Context, jobName string) (string, error) {
	streams, err := c.logs.DescribeLogStreams(ctx, &cloudwatchlogs.DescribeLogStreamsInput{
		LogGroupName:        aws.String(logGroupName),
		LogStreamNamePrefix: aws.String(jobName + "/"),
		Limit:               aws.Int32(1),
	})
	if err != nil {
		return "", fmt.Errorf("could not retrieve log streams for job %s: %w", jobName, err)
	}
	if len(streams.LogStreams) == 0 {
		return "", nil
	}

	events, err := c.logs.GetLogEvents(ctx, &cloudwatchlogs.GetLogEventsInput{
		LogGroupName:  aws.String(logGroupName),
		LogStreamName: streams.LogStreams[0].LogStreamName,
		Limit:         aws.Int32(logEventLimit),
	})
	if err != nil {
		return "", fmt.Errorf("could not retrieve logs for job %s: %w", jobName, err)
	}

	messages := make([]string, 0, len(events.Events))
	for _, event := range events.Events {
		messages = append(messages, aws.ToString(event.Message))
	}

	return strings.Join(messages, "\n"), nil
}

func jobFromDescribe(resp *sagemaker.DescribeTrainingJobOutput) training.Job {
	job := training.Job{
		Name:            aws.ToString(resp.TrainingJobName),
		ARN:             aws.ToString(resp.TrainingJobArn),
		Status:          training.Status(resp.TrainingJobStatus),
		SecondaryStatus: string(resp.SecondaryStatus),
		FailureReason:   aws.ToString(resp.FailureReason),
		CreatedAt:       aws.ToTime(resp.CreationTime),
		StartedAt:       aws.ToTime(resp.TrainingStartTime),
		EndedAt:         aws.ToTime(resp.TrainingEndTime),
	}
	if resp.AlgorithmSpecification != nil {
		job.TrainingImage = aws.ToString(resp.AlgorithmSpecification.TrainingImage)
	}
	if resp.ModelArtifacts != nil {
		job.ModelArtifacts = aws.ToString(resp.ModelArtifacts.S3ModelArtifacts)
	}

	return job
}

// sleepContext blocks for d or until ctx is cancelled, whichever comes first.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
