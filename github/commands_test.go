package github_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vertex-ml/sagemaker-training/github"
)

func TestSetEnvAppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env")
	t.Setenv("GITHUB_ENV", path)

	require.NoError(t, github.SetEnv("SAGEMAKER_JOB_NAME", "my-job"))
	require.NoError(t, github.SetEnv("SAGEMAKER_JOB_STATUS", "Completed"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "SAGEMAKER_JOB_NAME=my-job\nSAGEMAKER_JOB_STATUS=Completed\n", string(data))
}

func TestSetEnvFallsBackToProcessEnv(t *testing.T) {
	t.Setenv("GITHUB_ENV", "")
	t.Setenv("SAGEMAKER_JOB_NAME", "")

	require.NoError(t, github.SetEnv("SAGEMAKER_JOB_NAME", "my-job"))
	assert.Equal(t, "my-job", os.Getenv("SAGEMAKER_JOB_NAME"))
}
