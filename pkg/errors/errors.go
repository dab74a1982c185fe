package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrValidation = errors.New("input validation failed")
	ErrAuth       = errors.New("authentication failed")
	ErrSubmission = errors.New("job submission rejected")
	ErrDescribe   = errors.New("job describe failed")
	ErrStop       = errors.New("job stop failed")
	ErrList       = errors.New("job listing failed")
	ErrUnknown    = errors.New("unknown error")
)

// ValidationError carries the full batch of rule violations from a single
// validation pass. Violations are never reported partially.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(e.Violations, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// TimeoutError reports that a job did not reach a terminal status within the
// wait bound.
type TimeoutError struct {
	JobName string
	MaxWait time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("training job %s did not complete within %s", e.JobName, e.MaxWait)
}
