package github

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	invalidNameChars = regexp.MustCompile(`[^a-zA-Z0-9-]`)
	hyphenRuns       = regexp.MustCompile(`-+`)
)

// SanitizeJobName turns an arbitrary string into a valid SageMaker job name:
// 1-63 characters, alphanumeric and hyphens, no leading or trailing hyphen.
func SanitizeJobName(name string) string {
	sanitized := invalidNameChars.ReplaceAllString(name, "-")
	sanitized = hyphenRuns.ReplaceAllString(sanitized, "-")
	sanitized = strings.Trim(sanitized, "-")

	if len(sanitized) > 63 {
		sanitized = strings.TrimRight(sanitized[:63], "-")
	}
	if sanitized == "" {
		sanitized = "sagemaker-job"
	}

	return sanitized
}

// FormatDuration renders seconds as "2h 5m 1s", dropping leading zero units.
func FormatDuration(seconds int) string {
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	seconds %= 60

	switch {
	case hours > 0:
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}

// FormatS3URI joins a bucket and key into a scheme-prefixed S3 URI.
func FormatS3URI(bucket, key string) string {
	if !strings.HasPrefix(bucket, "s3://") {
		bucket = "s3://" + bucket
	}
	key = strings.TrimPrefix(key, "/")

	return strings.TrimSuffix(bucket, "/") + "/" + key
}

// ParseS3URI splits an S3 URI into bucket and key.
func ParseS3URI(uri string) (string, string, error) {
	if !strings.HasPrefix(uri, "s3://") {
		return "", "", fmt.Errorf("invalid S3 URI: %s", uri)
	}

	path := strings.TrimPrefix(uri, "s3://")
	bucket, key, _ := strings.Cut(path, "/")

	return bucket, key, nil
}
