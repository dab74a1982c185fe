package training

import "time"

// Status is the job status reported by SageMaker. The platform owns all
// transitions; the local process only observes them.
type Status string

const (
	StatusInProgress Status = "InProgress"
	StatusCompleted  Status = "Completed"
	StatusFailed     Status = "Failed"
	StatusStopping   Status = "Stopping"
	StatusStopped    Status = "Stopped"
)

func (s Status) String() string {
	return string(s)
}

// Terminal reports whether no further transition can occur from s.
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusStopped:
		return true
	default:
		return false
	}
}

// Job holds the describe-time view of a training job.
type Job struct {
	Name            string    `json:"name"`
	ARN             string    `json:"arn"`
	Status          Status    `json:"status"`
	SecondaryStatus string    `json:"secondary_status,omitempty"`
	FailureReason   string    `json:"failure_reason,omitempty"`
	ModelArtifacts  string    `json:"model_artifacts,omitempty"`
	TrainingImage   string    `json:"training_image,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	StartedAt       time.Time `json:"started_at,omitzero"`
	EndedAt         time.Time `json:"ended_at,omitzero"`
}

type JobPage struct {
	Jobs []Job `json:"jobs"`
}
