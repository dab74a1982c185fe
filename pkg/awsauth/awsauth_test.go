package awsauth

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoadConfigStaticCredentials(t *testing.T) {
	cfg, err := LoadConfig(context.Background(), Credentials{
		AccessKeyID:     "AKIAEXAMPLE",
		SecretAccessKey: "secret",
		SessionToken:    "token",
		Region:          "eu-west-1",
	}, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, "eu-west-1", cfg.Region)

	creds, err := cfg.Credentials.Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "AKIAEXAMPLE", creds.AccessKeyID)
	assert.Equal(t, "secret", creds.SecretAccessKey)
	assert.Equal(t, "token", creds.SessionToken)
}

func TestLoadConfigDefaultRegion(t *testing.T) {
	t.Setenv("AWS_REGION", "")
	t.Setenv("AWS_DEFAULT_REGION", "")

	cfg, err := LoadConfig(context.Background(), Credentials{
		AccessKeyID:     "AKIAEXAMPLE",
		SecretAccessKey: "secret",
	}, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, "us-east-1", cfg.Region)
}

func TestSessionNames(t *testing.T) {
	t.Setenv("AWS_ROLE_SESSION_NAME", "")
	assert.Equal(t, "GitHubActions", webIdentitySessionName())

	t.Setenv("AWS_ROLE_SESSION_NAME", "custom-session")
	assert.Equal(t, "custom-session", webIdentitySessionName())

	t.Setenv("GITHUB_RUN_ID", "")
	assert.Equal(t, "SageMakerTrainingAction-local", assumeRoleSessionName())

	t.Setenv("GITHUB_RUN_ID", "4273")
	assert.Equal(t, "SageMakerTrainingAction-4273", assumeRoleSessionName())
}
