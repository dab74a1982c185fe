package middleware

import (
	"context"
	"time"

	"github.com/go-kit/kit/metrics"

	"github.com/vertex-ml/sagemaker-training/runner"
	"github.com/vertex-ml/sagemaker-training/training"
)

var _ runner.Service = (*metricsMiddleware)(nil)

type metricsMiddleware struct {
	counter metrics.Counter
	latency metrics.Histogram
	svc     runner.Service
}

func Metrics(counter metrics.Counter, latency metrics.Histogram, svc runner.Service) runner.Service {
	return &metricsMiddleware{
		counter: counter,
		latency: latency,
		svc:     svc,
	}
}

func (mm *metricsMiddleware) Run(ctx context.Context, spec training.Spec, opts runner.RunOptions) (runner.RunResult, error) {
	defer func(begin time.Time) {
		mm.counter.With("method", "run").Add(1)
		mm.latency.With("method", "run").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return mm.svc.Run(ctx, spec, opts)
}

func (mm *metricsMiddleware) Status(ctx context.Context, jobName string) (training.Job, error) {
	defer func(begin time.Time) {
		mm.counter.With("method", "status").Add(1)
		mm.latency.With("method", "status").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return mm.svc.Status(ctx, jobName)
}

func (mm *metricsMiddleware) Stop(ctx context.Context, jobName string) error {
	defer func(begin time.Time) {
		mm.counter.With("method", "stop").Add(1)
		mm.latency.With("method", "stop").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return mm.svc.Stop(ctx, jobName)
}

func (mm *metricsMiddleware) List(ctx context.Context, nameContains string, status training.Status, maxResults int32) (training.JobPage, error) {
	defer func(begin time.Time) {
		mm.counter.With("method", "list").Add(1)
		mm.latency.With("method", "list").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return mm.svc.List(ctx, nameContains, status, maxResults)
}

func (mm *metricsMiddleware) Logs(ctx context.Context, jobName string) (string, error) {
	defer func(begin time.Time) {
		mm.counter.With("method", "logs").Add(1)
		mm.latency.With("method", "logs").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return mm.svc.Logs(ctx, jobName)
}
