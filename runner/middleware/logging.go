package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/vertex-ml/sagemaker-training/runner"
	"github.com/vertex-ml/sagemaker-training/training"
)

var _ runner.Service = (*loggingMiddleware)(nil)

type loggingMiddleware struct {
	logger *slog.Logger
	svc    runner.Service
}

func Logging(logger *slog.Logger, svc runner.Service) runner.Service {
	return &loggingMiddleware{
		logger: logger,
		svc:    svc,
	}
}

func (lm *loggingMiddleware) Run(ctx context.Context, spec training.Spec, opts runner.RunOptions) (resp runner.RunResult, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.Group("job",
				slog.String("name", spec.JobName),
				slog.String("status", resp.Status.String()),
			),
			slog.Bool("wait", opts.Wait),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("Run training job failed", args...)

			return
		}
		lm.logger.Info("Run training job completed successfully", args...)
	}(time.Now())

	return lm.svc.Run(ctx, spec, opts)
}

func (lm *loggingMiddleware) Status(ctx context.Context, jobName string) (resp training.Job, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.Group("job",
				slog.String("name", jobName),
				slog.String("status", resp.Status.String()),
			),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("Get job status failed", args...)

			return
		}
		lm.logger.Info("Get job status completed successfully", args...)
	}(time.Now())

	return lm.svc.Status(ctx, jobName)
}

func (lm *loggingMiddleware) Stop(ctx context.Context, jobName string) (err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.Group("job",
				slog.String("name", jobName),
			),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("Stop job failed", args...)

			return
		}
		lm.logger.Info("Stop job completed successfully", args...)
	}(time.Now())

	return lm.svc.Stop(ctx, jobName)
}

func (lm *loggingMiddleware) List(ctx context.Context, nameContains string, status training.Status, maxResults int32) (resp training.JobPage, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.String("name_contains", nameContains),
			slog.String("status", status.String()),
			slog.Int("max_results", int(maxResults)),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("List jobs failed", args...)

			return
		}
		lm.logger.Info("List jobs completed successfully", args...)
	}(time.Now())

	return lm.svc.List(ctx, nameContains, status, maxResults)
}

func (lm *loggingMiddleware) Logs(ctx context.Context, jobName string) (resp string, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.Group("job",
				slog.String("name", jobName),
			),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("Get job logs failed", args...)

			return
		}
		lm.logger.Info("Get job logs completed successfully", args...)
	}(time.Now())

	return lm.svc.Logs(ctx, jobName)
}
