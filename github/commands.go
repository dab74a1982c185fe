package github

import (
	"fmt"
	"os"
)

// Workflow commands, printed to stdout for the runner to interpret.

func Error(message string) {
	fmt.Printf("::error::%s\n", message)
}

func Warning(message string) {
	fmt.Printf("::warning::%s\n", message)
}

func Notice(message string) {
	fmt.Printf("::notice::%s\n", message)
}

// AddMask registers a sensitive value so the runner redacts it from logs.
func AddMask(value string) {
	fmt.Printf("::add-mask::%s\n", value)
}

// SetEnv exports a variable to subsequent workflow steps via GITHUB_ENV.
func SetEnv(name, value string) error {
	path := os.Getenv("GITHUB_ENV")
	if path == "" {
		return os.Setenv(name, value)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, filePermission)
	if err != nil {
		return fmt.Errorf("failed to open env file: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%s=%s\n", name, value); err != nil {
		return fmt.Errorf("failed to write env var %s: %w", name, err)
	}

	return nil
}

// Summary appends markdown to the job's step summary.
func Summary(content string) error {
	path := os.Getenv("GITHUB_STEP_SUMMARY")
	if path == "" {
		fmt.Println(content)

		return nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, filePermission)
	if err != nil {
		return fmt.Errorf("failed to open step summary: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(content); err != nil {
		return fmt.Errorf("failed to write step summary: %w", err)
	}

	return nil
}
