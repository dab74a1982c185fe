package github

import (
	"fmt"
	"os"
	"strings"
)

const filePermission = 0o644

// Outputs appends name=value pairs to the GITHUB_OUTPUT file. Outside a
// workflow run it falls back to OUTPUT_* environment variables so the action
// stays testable locally.
type Outputs struct {
	path string
}

func NewOutputs() *Outputs {
	return &Outputs{path: os.Getenv("GITHUB_OUTPUT")}
}

func (o *Outputs) Set(name, value string) error {
	if o.path == "" {
		envName := "OUTPUT_" + strings.ReplaceAll(strings.ToUpper(name), "-", "_")

		return os.Setenv(envName, value)
	}

	f, err := os.OpenFile(o.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, filePermission)
	if err != nil {
		return fmt.Errorf("failed to open output file: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%s=%s\n", name, value); err != nil {
		return fmt.Errorf("failed to write output %s: %w", name, err)
	}

	return nil
}

// Discard ignores every output. Used by the CLI, which prints results itself.
type Discard struct{}

func (Discard) Set(_, _ string) error {
	return nil
}
