// Package runner sequences the training-job workflow: validate the inputs,
// build the request, submit it and optionally wait for completion.
package runner

import (
	"context"
	"time"

	"github.com/vertex-ml/sagemaker-training/training"
)

// Outputs receives the job identifiers and results as they become known.
// In CI this is the GITHUB_OUTPUT writer.
type Outputs interface {
	Set(name, value string) error
}

type RunOptions struct {
	// Wait blocks until the job reaches a terminal status.
	Wait bool
	// CheckInterval is the fixed delay between status polls.
	CheckInterval time.Duration
	// MaxWait bounds the total time spent polling.
	MaxWait time.Duration
}

type RunResult struct {
	JobName        string          `json:"job_name"`
	JobARN         string          `json:"job_arn"`
	TrainingImage  string          `json:"training_image"`
	Definition     string          `json:"definition"`
	Status         training.Status `json:"status"`
	ModelArtifacts string          `json:"model_artifacts,omitempty"`
	FailureReason  string          `json:"failure_reason,omitempty"`
	Elapsed        time.Duration   `json:"elapsed"`
}

type Service interface {
	// Run executes the full workflow for one invocation.
	Run(ctx context.Context, spec training.Spec, opts RunOptions) (RunResult, error)

	// Status fetches the current state of a job.
	Status(ctx context.Context, jobName string) (training.Job, error)

	// Stop requests that a job be stopped, without waiting for the
	// transition.
	Stop(ctx context.Context, jobName string) error

	// List returns recent jobs, newest first.
	List(ctx context.Context, nameContains string, status training.Status, maxResults int32) (training.JobPage, error)

	// Logs fetches recent training log output for a job.
	Logs(ctx context.Context, jobName string) (string, error)
}
