package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vertex-ml/sagemaker-training/cli"
	"github.com/vertex-ml/sagemaker-training/github"
	"github.com/vertex-ml/sagemaker-training/pkg/awsauth"
	"github.com/vertex-ml/sagemaker-training/pkg/sagemaker"
	"github.com/vertex-ml/sagemaker-training/runner"
)

func main() {
	var (
		region   string
		logLevel string
	)

	rootCmd := &cobra.Command{
		Use:   "sagemaker-training-cli",
		Short: "SageMaker Training CLI",
		Long:  `SageMaker Training CLI is a command line interface for submitting and managing SageMaker training jobs.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var level slog.Level
			if err := level.UnmarshalText([]byte(logLevel)); err != nil {
				return err
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			}))

			cfg, err := awsauth.LoadConfig(cmd.Context(), awsauth.Credentials{Region: region}, logger)
			if err != nil {
				return err
			}

			svc := runner.NewService(sagemaker.NewClient(cfg, logger), github.Discard{}, logger)
			cli.SetRunner(svc)

			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&region, "region", "r", "", "AWS region (defaults to the environment configuration)")
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "warn", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(cli.NewJobsCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
