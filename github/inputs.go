// Package github handles the GitHub Actions side of the workflow: typed
// action inputs, the step output file, workflow commands and the step summary.
package github

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/vertex-ml/sagemaker-training/pkg/awsauth"
	"github.com/vertex-ml/sagemaker-training/training"
)

// Inputs is the fixed set of named action parameters, populated from the
// INPUT_* environment variables the runner sets.
type Inputs struct {
	AWSAccessKeyID     string `env:"INPUT_AWS_ACCESS_KEY_ID"`
	AWSSecretAccessKey string `env:"INPUT_AWS_SECRET_ACCESS_KEY"`
	AWSSessionToken    string `env:"INPUT_AWS_SESSION_TOKEN"`
	AWSRegion          string `env:"INPUT_AWS_REGION"`
	RoleToAssume       string `env:"INPUT_ROLE_TO_ASSUME"`

	JobName          string `env:"INPUT_JOB_NAME"`
	TrainingImage    string `env:"INPUT_ALGORITHM_SPECIFICATION"`
	RoleARN          string `env:"INPUT_ROLE_ARN"`
	InstanceType     string `env:"INPUT_INSTANCE_TYPE"`
	InstanceCount    string `env:"INPUT_INSTANCE_COUNT"`
	VolumeSize       string `env:"INPUT_VOLUME_SIZE"`
	MaxRuntime       string `env:"INPUT_MAX_RUNTIME"`
	InputDataConfig  string `env:"INPUT_INPUT_DATA_CONFIG"`
	OutputDataConfig string `env:"INPUT_OUTPUT_DATA_CONFIG"`
	HyperParameters  string `env:"INPUT_HYPERPARAMETERS"`
	Environment      string `env:"INPUT_ENVIRONMENT"`
	VPCConfig        string `env:"INPUT_VPC_CONFIG"`
	Tags             string `env:"INPUT_TAGS"`

	WaitForCompletion bool   `env:"INPUT_WAIT_FOR_COMPLETION" envDefault:"true"`
	CheckInterval     string `env:"INPUT_CHECK_INTERVAL"      envDefault:"60"`
	MaxWaitTime       string `env:"INPUT_MAX_WAIT_TIME"       envDefault:"86400"`
}

func ReadInputs() (Inputs, error) {
	var in Inputs
	if err := env.Parse(&in); err != nil {
		return Inputs{}, fmt.Errorf("failed to read action inputs: %w", err)
	}

	return in, nil
}

// Spec maps the action inputs onto the training job spec.
func (in Inputs) Spec() training.Spec {
	return training.Spec{
		JobName:          in.JobName,
		RoleARN:          in.RoleARN,
		TrainingImage:    in.TrainingImage,
		InstanceType:     in.InstanceType,
		InstanceCount:    in.InstanceCount,
		VolumeSize:       in.VolumeSize,
		MaxRuntime:       in.MaxRuntime,
		InputDataConfig:  in.InputDataConfig,
		OutputDataConfig: in.OutputDataConfig,
		HyperParameters:  in.HyperParameters,
		Environment:      in.Environment,
		VPCConfig:        in.VPCConfig,
		Tags:             in.Tags,
		Region:           in.AWSRegion,
	}
}

// Credentials maps the credential inputs for AWS config resolution.
func (in Inputs) Credentials() awsauth.Credentials {
	return awsauth.Credentials{
		AccessKeyID:     in.AWSAccessKeyID,
		SecretAccessKey: in.AWSSecretAccessKey,
		SessionToken:    in.AWSSessionToken,
		Region:          in.AWSRegion,
		RoleToAssume:    in.RoleToAssume,
	}
}

// GetInput reads a single action input by its hyphenated name.
func GetInput(name, fallback string) string {
	envName := "INPUT_" + strings.ReplaceAll(strings.ToUpper(name), "-", "_")
	if value, ok := os.LookupEnv(envName); ok {
		return value
	}

	return fallback
}
