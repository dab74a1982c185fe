package cli_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vertex-ml/sagemaker-training/cli"
	"github.com/vertex-ml/sagemaker-training/runner"
	"github.com/vertex-ml/sagemaker-training/runner/mocks"
	"github.com/vertex-ml/sagemaker-training/training"
)

func execute(t *testing.T, svc *mocks.Service, args ...string) (string, string) {
	t.Helper()

	cli.SetRunner(svc)
	cmd := cli.NewJobsCmd()

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())

	return out.String(), errOut.String()
}

func TestSubmitCmd(t *testing.T) {
	svc := new(mocks.Service)
	svc.On("Run", mock.Anything, mock.MatchedBy(func(s training.Spec) bool {
		return s.JobName == "my-job" && s.InstanceType == "ml.p3.2xlarge"
	}), runner.RunOptions{
		Wait:          false,
		CheckInterval: 30 * time.Second,
		MaxWait:       86400 * time.Second,
	}).Return(runner.RunResult{JobName: "my-job", Status: training.StatusInProgress}, nil)

	out, _ := execute(t, svc,
		"submit",
		"--name", "my-job",
		"--instance-type", "ml.p3.2xlarge",
		"--wait=false",
		"--check-interval", "30",
	)

	assert.Contains(t, out, "my-job")
	svc.AssertExpectations(t)
}

func TestSubmitCmdGeneratesJobName(t *testing.T) {
	svc := new(mocks.Service)
	svc.On("Run", mock.Anything, mock.MatchedBy(func(s training.Spec) bool {
		return s.JobName != ""
	}), mock.Anything).Return(runner.RunResult{Status: training.StatusInProgress}, nil)

	execute(t, svc, "submit")

	svc.AssertExpectations(t)
}

func TestSubmitCmdReportsErrors(t *testing.T) {
	svc := new(mocks.Service)
	svc.On("Run", mock.Anything, mock.Anything, mock.Anything).
		Return(runner.RunResult{}, assert.AnError)

	_, errOut := execute(t, svc, "submit", "--name", "my-job")

	assert.Contains(t, errOut, assert.AnError.Error())
	svc.AssertExpectations(t)
}

func TestStatusCmd(t *testing.T) {
	svc := new(mocks.Service)
	svc.On("Status", mock.Anything, "my-job").
		Return(training.Job{Name: "my-job", Status: training.StatusInProgress}, nil)

	out, _ := execute(t, svc, "status", "my-job")

	assert.Contains(t, out, "my-job")
	assert.Contains(t, out, "InProgress")
	svc.AssertExpectations(t)
}

func TestStopCmd(t *testing.T) {
	svc := new(mocks.Service)
	svc.On("Stop", mock.Anything, "my-job").Return(nil)

	out, _ := execute(t, svc, "stop", "my-job")

	assert.Contains(t, out, "Stop request sent for training job my-job")
	svc.AssertExpectations(t)
}

func TestListCmdPassesFilters(t *testing.T) {
	svc := new(mocks.Service)
	svc.On("List", mock.Anything, "nightly", training.Status("Completed"), int32(5)).
		Return(training.JobPage{Jobs: []training.Job{{Name: "nightly-1"}}}, nil)

	out, _ := execute(t, svc,
		"list",
		"--name-contains", "nightly",
		"--status", "Completed",
		"--max-results", "5",
	)

	assert.Contains(t, out, "nightly-1")
	svc.AssertExpectations(t)
}

func TestLogsCmd(t *testing.T) {
	svc := new(mocks.Service)
	svc.On("Logs", mock.Anything, "my-job").Return("epoch 1 loss 0.42\nepoch 2 loss 0.17", nil)

	out, _ := execute(t, svc, "logs", "my-job")

	assert.Contains(t, out, "epoch 1 loss 0.42")
	assert.Contains(t, out, "epoch 2 loss 0.17")
	svc.AssertExpectations(t)
}

func TestLogsCmdNoEvents(t *testing.T) {
	svc := new(mocks.Service)
	svc.On("Logs", mock.Anything, "my-job").Return("", nil)

	out, _ := execute(t, svc, "logs", "my-job")

	assert.Contains(t, out, "No log events found for training job my-job")
	svc.AssertExpectations(t)
}
