package middleware

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vertex-ml/sagemaker-training/runner"
	"github.com/vertex-ml/sagemaker-training/training"
)

var _ runner.Service = (*tracing)(nil)

type tracing struct {
	tracer trace.Tracer
	svc    runner.Service
}

func Tracing(tracer trace.Tracer, svc runner.Service) runner.Service {
	return &tracing{tracer, svc}
}

func (tm *tracing) Run(ctx context.Context, spec training.Spec, opts runner.RunOptions) (runner.RunResult, error) {
	ctx, span := tm.tracer.Start(ctx, "run", trace.WithAttributes(
		attribute.String("job_name", spec.JobName),
		attribute.Bool("wait", opts.Wait),
	))
	defer span.End()

	return tm.svc.Run(ctx, spec, opts)
}

func (tm *tracing) Status(ctx context.Context, jobName string) (training.Job, error) {
	ctx, span := tm.tracer.Start(ctx, "status", trace.WithAttributes(
		attribute.String("job_name", jobName),
	))
	defer span.End()

	return tm.svc.Status(ctx, jobName)
}

func (tm *tracing) Stop(ctx context.Context, jobName string) error {
	ctx, span := tm.tracer.Start(ctx, "stop", trace.WithAttributes(
		attribute.String("job_name", jobName),
	))
	defer span.End()

	return tm.svc.Stop(ctx, jobName)
}

func (tm *tracing) List(ctx context.Context, nameContains string, status training.Status, maxResults int32) (training.JobPage, error) {
	ctx, span := tm.tracer.Start(ctx, "list", trace.WithAttributes(
		attribute.String("name_contains", nameContains),
		attribute.String("status", status.String()),
		attribute.Int("max_results", int(maxResults)),
	))
	defer span.End()

	return tm.svc.List(ctx, nameContains, status, maxResults)
}

func (tm *tracing) Logs(ctx context.Context, jobName string) (string, error) {
	ctx, span := tm.tracer.Start(ctx, "logs", trace.WithAttributes(
		attribute.String("job_name", jobName),
	))
	defer span.End()

	return tm.svc.Logs(ctx, jobName)
}
