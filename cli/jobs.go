package cli

import (
	"strconv"
	"time"

	"github.com/0x6flab/namegenerator"
	"github.com/spf13/cobra"

	sagemakertraining "github.com/vertex-ml/sagemaker-training"
	"github.com/vertex-ml/sagemaker-training/github"
	"github.com/vertex-ml/sagemaker-training/runner"
	"github.com/vertex-ml/sagemaker-training/training"
)

const (
	defCheckInterval = 60
	defMaxWait       = 86400
	defMaxResults    = 10
)

var (
	svc     runner.Service
	namegen = namegenerator.NewGenerator()
)

// SetRunner sets the runner service used by all job commands.
func SetRunner(s runner.Service) {
	svc = s
}

func NewJobsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs [submit|status|stop|list|logs]",
		Short: "Training jobs",
		Long:  `Submit, inspect, stop and list SageMaker training jobs.`,
	}

	var (
		configPath    string
		spec          training.Spec
		wait          bool
		checkInterval int
		maxWait       int
	)

	submitCmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit training job",
		Long: `Submit a training job and optionally wait for it to complete.

Examples:
  # Submit and wait
  sagemaker-training-cli jobs submit --name my-job \
    --image 123456789012.dkr.ecr.us-east-1.amazonaws.com/my-algorithm:latest \
    --role-arn arn:aws:iam::123456789012:role/SageMakerExecutionRole \
    --input-data-config '[{"ChannelName":"training","DataSource":{"S3DataSource":{"S3DataType":"S3Prefix","S3Uri":"s3://my-bucket/data/"}}}]' \
    --output-data-config '{"S3OutputPath":"s3://my-bucket/output/"}'

  # Submit without waiting, defaults from a config file
  sagemaker-training-cli jobs submit --config defaults.toml --wait=false`,
		Run: func(cmd *cobra.Command, _ []string) {
			if configPath != "" {
				cfg, err := sagemakertraining.LoadConfig(configPath)
				if err != nil {
					logErrorCmd(*cmd, err)

					return
				}
				applyConfig(&spec, cfg)
				if cfg.Job.CheckInterval != "" && !cmd.Flags().Changed("check-interval") {
					checkInterval = int(parseSeconds(cfg.Job.CheckInterval, defCheckInterval).Seconds())
				}
			}
			if spec.JobName == "" {
				spec.JobName = github.SanitizeJobName(namegen.Generate())
			}

			result, err := svc.Run(cmd.Context(), spec, runner.RunOptions{
				Wait:          wait,
				CheckInterval: time.Duration(checkInterval) * time.Second,
				MaxWait:       time.Duration(maxWait) * time.Second,
			})
			if err != nil {
				logErrorCmd(*cmd, err)

				return
			}
			logJSONCmd(*cmd, result)
		},
	}

	submitCmd.Flags().StringVar(&configPath, "config", "", "Path to a TOML file with submission defaults")
	submitCmd.Flags().StringVar(&spec.JobName, "name", "", "Training job name (generated when empty)")
	submitCmd.Flags().StringVar(&spec.TrainingImage, "image", "", "Algorithm container image URI")
	submitCmd.Flags().StringVar(&spec.RoleARN, "role-arn", "", "Execution role ARN")
	submitCmd.Flags().StringVar(&spec.InstanceType, "instance-type", "", "Training instance type")
	submitCmd.Flags().StringVar(&spec.InstanceCount, "instance-count", "", "Number of training instances")
	submitCmd.Flags().StringVar(&spec.VolumeSize, "volume-size", "", "EBS volume size in GB")
	submitCmd.Flags().StringVar(&spec.MaxRuntime, "max-runtime", "", "Maximum runtime in seconds")
	submitCmd.Flags().StringVar(&spec.InputDataConfig, "input-data-config", "", "Input channels as JSON")
	submitCmd.Flags().StringVar(&spec.OutputDataConfig, "output-data-config", "", "Output location as JSON")
	submitCmd.Flags().StringVar(&spec.HyperParameters, "hyperparameters", "", "Hyperparameters as JSON")
	submitCmd.Flags().StringVar(&spec.Environment, "environment", "", "Environment variables as JSON")
	submitCmd.Flags().StringVar(&spec.VPCConfig, "vpc-config", "", "VPC configuration as JSON")
	submitCmd.Flags().StringVar(&spec.Tags, "tags", "", "Tags as a JSON object")
	submitCmd.Flags().StringVar(&spec.Region, "region", "", "AWS region")
	submitCmd.Flags().BoolVar(&wait, "wait", true, "Wait for the job to reach a terminal status")
	submitCmd.Flags().IntVar(&checkInterval, "check-interval", defCheckInterval, "Seconds between status polls")
	submitCmd.Flags().IntVar(&maxWait, "max-wait", defMaxWait, "Maximum seconds to wait for completion")

	statusCmd := &cobra.Command{
		Use:   "status <job-name>",
		Short: "View job status",
		Long:  `View the current status of a training job.`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 1 {
				logUsageCmd(*cmd, cmd.Use)

				return
			}

			job, err := svc.Status(cmd.Context(), args[0])
			if err != nil {
				logErrorCmd(*cmd, err)

				return
			}
			logJSONCmd(*cmd, job)
		},
	}

	stopCmd := &cobra.Command{
		Use:   "stop <job-name>",
		Short: "Stop job",
		Long:  `Request that a running training job be stopped.`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 1 {
				logUsageCmd(*cmd, cmd.Use)

				return
			}

			if err := svc.Stop(cmd.Context(), args[0]); err != nil {
				logErrorCmd(*cmd, err)

				return
			}
			logSuccessCmd(*cmd, "Stop request sent for training job "+args[0])
		},
	}

	var (
		nameContains string
		statusEquals string
		maxResults   int
	)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List jobs",
		Long:  `List training jobs sorted by creation time, newest first.`,
		Run: func(cmd *cobra.Command, _ []string) {
			page, err := svc.List(cmd.Context(), nameContains, training.Status(statusEquals), int32(maxResults))
			if err != nil {
				logErrorCmd(*cmd, err)

				return
			}
			logJSONCmd(*cmd, page)
		},
	}

	listCmd.Flags().StringVar(&nameContains, "name-contains", "", "Filter jobs by name substring")
	listCmd.Flags().StringVar(&statusEquals, "status", "", "Filter jobs by status")
	listCmd.Flags().IntVar(&maxResults, "max-results", defMaxResults, "Maximum number of jobs to return")

	logsCmd := &cobra.Command{
		Use:   "logs <job-name>",
		Short: "View job logs",
		Long:  `Fetch recent CloudWatch log output for a training job.`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 1 {
				logUsageCmd(*cmd, cmd.Use)

				return
			}

			logs, err := svc.Logs(cmd.Context(), args[0])
			if err != nil {
				logErrorCmd(*cmd, err)

				return
			}
			if logs == "" {
				logSuccessCmd(*cmd, "No log events found for training job "+args[0])

				return
			}
			cmd.Println(logs)
		},
	}

	cmd.AddCommand(submitCmd)
	cmd.AddCommand(statusCmd)
	cmd.AddCommand(stopCmd)
	cmd.AddCommand(listCmd)
	cmd.AddCommand(logsCmd)

	return cmd
}

func applyConfig(spec *training.Spec, cfg *sagemakertraining.Config) {
	if spec.Region == "" {
		spec.Region = cfg.AWS.Region
	}
	if spec.RoleARN == "" {
		spec.RoleARN = cfg.AWS.RoleARN
	}
	if spec.InstanceType == "" {
		spec.InstanceType = cfg.Job.InstanceType
	}
	if spec.InstanceCount == "" {
		spec.InstanceCount = cfg.Job.InstanceCount
	}
	if spec.VolumeSize == "" {
		spec.VolumeSize = cfg.Job.VolumeSize
	}
	if spec.MaxRuntime == "" {
		spec.MaxRuntime = cfg.Job.MaxRuntime
	}
}

// parseSeconds converts a seconds string to a duration, falling back when
// empty or malformed.
func parseSeconds(value string, fallback int) time.Duration {
	if value == "" {
		return time.Duration(fallback) * time.Second
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return time.Duration(fallback) * time.Second
	}

	return time.Duration(n) * time.Second
}
