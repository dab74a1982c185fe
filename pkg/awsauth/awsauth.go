// Package awsauth resolves the AWS configuration for the action: explicit
// static credentials first, then an assumed role (web identity token when the
// CI runner provides one), then the default credential chain.
package awsauth

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/vertex-ml/sagemaker-training/pkg/errors"
)

const defaultRegion = "us-east-1"

// Credentials are the credential-related action inputs. All fields are
// optional; empty fields fall through to the next resolution step.
type Credentials struct {
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	Region          string
	RoleToAssume    string
}

// LoadConfig builds an aws.Config following the resolution order of the
// action: static keys, assumed role, default chain.
func LoadConfig(ctx context.Context, creds Credentials, logger *slog.Logger) (aws.Config, error) {
	logger.Info("Initializing AWS session")

	region := creds.Region
	if region == "" {
		region = defaultRegion
	}

	if creds.AccessKeyID != "" && creds.SecretAccessKey != "" {
		logger.Info("Using explicit AWS credentials")

		cfg, err := config.LoadDefaultConfig(ctx,
			config.WithRegion(region),
			config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				creds.AccessKeyID, creds.SecretAccessKey, creds.SessionToken,
			)),
		)
		if err != nil {
			return aws.Config{}, fmt.Errorf("%w: %w", errors.ErrAuth, err)
		}

		return cfg, nil
	}

	if creds.RoleToAssume != "" {
		logger.Info("Assuming role", slog.String("role_arn", creds.RoleToAssume))

		return assumeRole(ctx, creds.RoleToAssume, region, logger)
	}

	logger.Info("Using default AWS credential chain")

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return aws.Config{}, fmt.Errorf("%w: %w", errors.ErrAuth, err)
	}

	return cfg, nil
}

func assumeRole(ctx context.Context, roleARN, region string, logger *slog.Logger) (aws.Config, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return aws.Config{}, fmt.Errorf("%w: %w", errors.ErrAuth, err)
	}
	stsClient := sts.NewFromConfig(cfg)

	tokenFile := os.Getenv("AWS_WEB_IDENTITY_TOKEN_FILE")
	if tokenFile != "" {
		if _, err := os.Stat(tokenFile); err == nil {
			logger.Info("Using OIDC web identity token for role assumption")

			provider := stscreds.NewWebIdentityRoleProvider(stsClient, roleARN,
				stscreds.IdentityTokenFile(tokenFile),
				func(o *stscreds.WebIdentityRoleOptions) {
					o.RoleSessionName = webIdentitySessionName()
				},
			)
			cfg.Credentials = aws.NewCredentialsCache(provider)

			return cfg, nil
		}
	}

	logger.Info("Using assume role with current credentials")

	provider := stscreds.NewAssumeRoleProvider(stsClient, roleARN, func(o *stscreds.AssumeRoleOptions) {
		o.RoleSessionName = assumeRoleSessionName()
	})
	cfg.Credentials = aws.NewCredentialsCache(provider)

	return cfg, nil
}

// ValidateCredentials confirms the resolved credentials with a caller
// identity lookup.
func ValidateCredentials(ctx context.Context, cfg aws.Config, logger *slog.Logger) error {
	resp, err := sts.NewFromConfig(cfg).GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return fmt.Errorf("%w: %w", errors.ErrAuth, err)
	}

	logger.Info("AWS credentials validated",
		slog.String("account_id", aws.ToString(resp.Account)),
		slog.String("user_arn", aws.ToString(resp.Arn)),
	)

	return nil
}

func webIdentitySessionName() string {
	if name := os.Getenv("AWS_ROLE_SESSION_NAME"); name != "" {
		return name
	}

	return "GitHubActions"
}

func assumeRoleSessionName() string {
	runID := os.Getenv("GITHUB_RUN_ID")
	if runID == "" {
		runID = "local"
	}

	return "SageMakerTrainingAction-" + runID
}
