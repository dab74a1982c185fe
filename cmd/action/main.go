package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/sync/errgroup"

	"github.com/vertex-ml/sagemaker-training/github"
	"github.com/vertex-ml/sagemaker-training/pkg/awsauth"
	pkgerrors "github.com/vertex-ml/sagemaker-training/pkg/errors"
	"github.com/vertex-ml/sagemaker-training/pkg/prometheus"
	"github.com/vertex-ml/sagemaker-training/pkg/sagemaker"
	"github.com/vertex-ml/sagemaker-training/runner"
	"github.com/vertex-ml/sagemaker-training/runner/middleware"
	"github.com/vertex-ml/sagemaker-training/training"
)

const (
	svcName = "sagemaker-training-action"
	pathEnv = ".env"
)

type envConfig struct {
	LogLevel    string `env:"ACTION_LOG_LEVEL"     envDefault:"info"`
	InstanceID  string `env:"ACTION_INSTANCE_ID"`
	RunnerDebug bool   `env:"ACTIONS_RUNNER_DEBUG" envDefault:"false"`
}

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	if _, err := os.Stat(pathEnv); err == nil {
		_ = godotenv.Load(pathEnv)
	}

	cfg := envConfig{}
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("failed to load configuration : %s", err.Error())
	}

	if cfg.InstanceID == "" {
		cfg.InstanceID = uuid.NewString()
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		log.Fatalf("failed to parse log level: %s", err.Error())
	}
	if cfg.RunnerDebug {
		level = slog.LevelDebug
	}
	logHandler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})
	logger := slog.New(logHandler)
	slog.SetDefault(logger)

	logger.Info("Starting SageMaker Training Action", slog.String("instance_id", cfg.InstanceID))

	inputs, err := github.ReadInputs()
	if err != nil {
		logger.Error("failed to read action inputs", slog.String("error", err.Error()))

		return err
	}
	if inputs.AWSSecretAccessKey != "" {
		github.AddMask(inputs.AWSSecretAccessKey)
	}
	if inputs.AWSSessionToken != "" {
		github.AddMask(inputs.AWSSessionToken)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	if violations := training.ValidateInterval(inputs.CheckInterval); len(violations) > 0 {
		return fail(logger, &pkgerrors.ValidationError{Violations: violations})
	}

	awsCfg, err := awsauth.LoadConfig(ctx, inputs.Credentials(), logger)
	if err != nil {
		return fail(logger, err)
	}
	if err := awsauth.ValidateCredentials(ctx, awsCfg, logger); err != nil {
		return fail(logger, err)
	}

	tracer := noop.NewTracerProvider().Tracer(svcName)

	svc := runner.NewService(sagemaker.NewClient(awsCfg, logger), github.NewOutputs(), logger)
	svc = middleware.Logging(logger, svc)
	svc = middleware.Tracing(tracer, svc)
	counter, latency := prometheus.MakeMetrics("sagemaker_training", "action")
	svc = middleware.Metrics(counter, latency, svc)

	var result runner.RunResult
	g.Go(func() error {
		defer cancel()

		var err error
		result, err = svc.Run(ctx, inputs.Spec(), runner.RunOptions{
			Wait:          inputs.WaitForCompletion,
			CheckInterval: seconds(inputs.CheckInterval, 60),
			MaxWait:       seconds(inputs.MaxWaitTime, training.DefaultMaxRuntimeSec),
		})

		return err
	})

	g.Go(func() error {
		return stopSignalHandler(ctx, cancel, logger)
	})

	if err := g.Wait(); err != nil {
		writeSummary(result, logger)

		return fail(logger, err)
	}

	writeSummary(result, logger)
	github.Notice(fmt.Sprintf("SageMaker training job %s is %s", result.JobName, result.Status))
	logger.Info("SageMaker Training Action completed successfully")

	return nil
}

func fail(logger *slog.Logger, err error) error {
	var validationErr *pkgerrors.ValidationError
	if errors.As(err, &validationErr) {
		for _, violation := range validationErr.Violations {
			github.Error(violation)
		}
	} else {
		github.Error(err.Error())
	}
	logger.Error("Action failed", slog.String("error", err.Error()))

	return err
}

func writeSummary(result runner.RunResult, logger *slog.Logger) {
	if result.JobName == "" {
		return
	}

	content := fmt.Sprintf(
		"## SageMaker Training Job\n\n"+
			"| Field | Value |\n"+
			"| --- | --- |\n"+
			"| Job name | `%s` |\n"+
			"| Status | %s |\n"+
			"| Duration | %s |\n",
		result.JobName, result.Status, github.FormatDuration(int(result.Elapsed.Seconds())),
	)
	if result.ModelArtifacts != "" {
		content += fmt.Sprintf("| Model artifacts | `%s` |\n", result.ModelArtifacts)
	}
	if result.FailureReason != "" {
		content += fmt.Sprintf("| Failure reason | %s |\n", result.FailureReason)
	}

	if err := github.Summary(content); err != nil {
		logger.Warn("failed to write step summary", slog.String("error", err.Error()))
	}
}

func stopSignalHandler(ctx context.Context, cancel context.CancelFunc, logger *slog.Logger) error {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-c:
		defer cancel()
		logger.Info("Received signal, shutting down", slog.String("signal", sig.String()))

		return fmt.Errorf("received signal: %s", sig)
	case <-ctx.Done():
		return nil
	}
}

func seconds(value string, fallback int) time.Duration {
	n, err := strconv.Atoi(value)
	if err != nil {
		n = fallback
	}

	return time.Duration(n) * time.Second
}
