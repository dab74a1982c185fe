package github_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vertex-ml/sagemaker-training/github"
)

func TestOutputsWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output")
	t.Setenv("GITHUB_OUTPUT", path)

	outputs := github.NewOutputs()
	require.NoError(t, outputs.Set("job-name", "test-job"))
	require.NoError(t, outputs.Set("job-status", "Completed"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "job-name=test-job\njob-status=Completed\n", string(data))
}

func TestOutputsEnvFallback(t *testing.T) {
	t.Setenv("GITHUB_OUTPUT", "")
	t.Setenv("OUTPUT_JOB_NAME", "")

	outputs := github.NewOutputs()
	require.NoError(t, outputs.Set("job-name", "local-job"))

	assert.Equal(t, "local-job", os.Getenv("OUTPUT_JOB_NAME"))
}

func TestReadInputs(t *testing.T) {
	t.Setenv("INPUT_JOB_NAME", "my-job")
	t.Setenv("INPUT_ALGORITHM_SPECIFICATION", "image:latest")
	t.Setenv("INPUT_WAIT_FOR_COMPLETION", "false")

	in, err := github.ReadInputs()
	require.NoError(t, err)

	assert.Equal(t, "my-job", in.JobName)
	assert.Equal(t, "image:latest", in.TrainingImage)
	assert.False(t, in.WaitForCompletion)
	assert.Equal(t, "60", in.CheckInterval)
	assert.Equal(t, "86400", in.MaxWaitTime)

	spec := in.Spec()
	assert.Equal(t, "my-job", spec.JobName)
	assert.Equal(t, "image:latest", spec.TrainingImage)
}

func TestGetInput(t *testing.T) {
	t.Setenv("INPUT_CHECK_INTERVAL", "120")

	assert.Equal(t, "120", github.GetInput("check-interval", "60"))
	assert.Equal(t, "60", github.GetInput("missing-input", "60"))
}
