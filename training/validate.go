package training

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Result aggregates every rule violation found in one validation pass.
// Warnings never affect validity.
type Result struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

var (
	jobNameRegexp      = regexp.MustCompile(`^[a-zA-Z0-9-]{1,63}$`)
	roleARNRegexp      = regexp.MustCompile(`^arn:aws(-[^:]*)?:iam::[0-9]{12}:role/.+$`)
	instanceTypeRegexp = regexp.MustCompile(`^ml\.[a-z0-9]+\.(nano|micro|small|medium|large|xlarge|[0-9]+xlarge)$`)
)

// Regions SageMaker is known to run in. Not exhaustive; an unknown region
// only warns, it never blocks the submission.
var knownRegions = []string{
	"us-east-1", "us-east-2", "us-west-1", "us-west-2",
	"eu-west-1", "eu-west-2", "eu-west-3", "eu-central-1",
	"ap-south-1", "ap-southeast-1", "ap-southeast-2", "ap-northeast-1",
	"ap-northeast-2", "sa-east-1", "ca-central-1",
}

type numericRule struct {
	field string
	value string
	min   int
	max   int
}

// Validate checks every rule against a Spec and accumulates violations.
// It never short-circuits: all errors and warnings from a single pass are
// reported together.
func Validate(s Spec) Result {
	var errs, warnings []string

	required := []struct {
		field string
		value string
	}{
		{"job-name", s.JobName},
		{"algorithm-specification", s.TrainingImage},
		{"role-arn", s.RoleARN},
		{"input-data-config", s.InputDataConfig},
		{"output-data-config", s.OutputDataConfig},
	}
	for _, r := range required {
		if r.value == "" {
			errs = append(errs, fmt.Sprintf("Required field '%s' is missing or empty", r.field))
		}
	}

	if s.JobName != "" {
		errs = append(errs, validateJobName(s.JobName)...)
	}
	if s.RoleARN != "" {
		errs = append(errs, validateRoleARN(s.RoleARN)...)
	}
	if s.InstanceType != "" {
		errs = append(errs, validateInstanceType(s.InstanceType)...)
	}

	numeric := []numericRule{
		{"instance-count", s.InstanceCount, 1, 100},
		{"volume-size", s.VolumeSize, 1, 16384},
		{"max-runtime", s.MaxRuntime, 1, 432000},
	}
	for _, r := range numeric {
		if r.value != "" {
			errs = append(errs, validateNumericField(r)...)
		}
	}

	jsonFields := []struct {
		field string
		value string
	}{
		{"input-data-config", s.InputDataConfig},
		{"output-data-config", s.OutputDataConfig},
		{"hyperparameters", s.HyperParameters},
		{"environment", s.Environment},
		{"vpc-config", s.VPCConfig},
		{"tags", s.Tags},
	}
	for _, f := range jsonFields {
		if f.value != "" {
			errs = append(errs, validateJSONField(f.field, f.value)...)
		}
	}

	if s.InputDataConfig != "" {
		errs = append(errs, validateInputDataConfig(s.InputDataConfig)...)
	}
	if s.OutputDataConfig != "" {
		errs = append(errs, validateOutputDataConfig(s.OutputDataConfig)...)
	}
	if s.VPCConfig != "" {
		errs = append(errs, validateVPCConfig(s.VPCConfig)...)
	}

	if s.Region != "" {
		warnings = append(warnings, validateRegion(s.Region)...)
	}

	return Result{
		Valid:    len(errs) == 0,
		Errors:   errs,
		Warnings: warnings,
	}
}

// ValidateInterval bounds the completion-poll interval to [10s, 1h].
// Kept separate from Validate because the interval is a waiter parameter,
// not part of the job request.
func ValidateInterval(value string) []string {
	return validateNumericField(numericRule{"check-interval", value, 10, 3600})
}

func validateJobName(name string) []string {
	var errs []string
	if !jobNameRegexp.MatchString(name) {
		errs = append(errs, "Job name must be 1-63 characters long and contain only alphanumeric characters and hyphens")
	}
	if strings.HasPrefix(name, "-") || strings.HasSuffix(name, "-") {
		errs = append(errs, "Job name cannot start or end with a hyphen")
	}

	return errs
}

func validateRoleARN(arn string) []string {
	if !roleARNRegexp.MatchString(arn) {
		return []string{"Role ARN format is invalid. Expected format: arn:aws:iam::account:role/role-name"}
	}

	return nil
}

func validateInstanceType(instanceType string) []string {
	if !instanceTypeRegexp.MatchString(instanceType) {
		return []string{fmt.Sprintf("Instance type '%s' does not match expected SageMaker format", instanceType)}
	}

	return nil
}

func validateNumericField(r numericRule) []string {
	n, err := strconv.Atoi(r.value)
	if err != nil {
		return []string{fmt.Sprintf("%s must be a valid integer", r.field)}
	}
	if n < r.min || n > r.max {
		return []string{fmt.Sprintf("%s must be between %d and %d", r.field, r.min, r.max)}
	}

	return nil
}

func validateJSONField(field, value string) []string {
	if !json.Valid([]byte(value)) {
		var raw any
		err := json.Unmarshal([]byte(value), &raw)

		return []string{fmt.Sprintf("%s contains invalid JSON: %s", field, err)}
	}

	return nil
}

func validateInputDataConfig(value string) []string {
	var channels []json.RawMessage
	if err := json.Unmarshal([]byte(value), &channels); err != nil {
		if json.Valid([]byte(value)) {
			return []string{"input-data-config must be a JSON array"}
		}

		return nil // malformed JSON already reported
	}

	var errs []string
	for i, raw := range channels {
		var channel map[string]json.RawMessage
		if err := json.Unmarshal(raw, &channel); err != nil {
			errs = append(errs, fmt.Sprintf("input-data-config[%d] must be an object", i))

			continue
		}

		for _, field := range []string{"ChannelName", "DataSource"} {
			if _, ok := channel[field]; !ok {
				errs = append(errs, fmt.Sprintf("input-data-config[%d] missing required field: %s", i, field))
			}
		}

		var source struct {
			S3DataSource map[string]json.RawMessage
		}
		if err := json.Unmarshal(channel["DataSource"], &source); err == nil && source.S3DataSource != nil {
			if _, ok := source.S3DataSource["S3Uri"]; !ok {
				errs = append(errs, fmt.Sprintf("input-data-config[%d] S3DataSource missing S3Uri", i))
			}
		}
	}

	return errs
}

func validateOutputDataConfig(value string) []string {
	var config map[string]json.RawMessage
	if err := json.Unmarshal([]byte(value), &config); err != nil {
		if json.Valid([]byte(value)) {
			return []string{"output-data-config must be a JSON object"}
		}

		return nil
	}

	raw, ok := config["S3OutputPath"]
	if !ok {
		return []string{"output-data-config missing required field: S3OutputPath"}
	}

	var path string
	if err := json.Unmarshal(raw, &path); err != nil || !strings.HasPrefix(path, "s3://") {
		return []string{"S3OutputPath must be a valid S3 URI starting with s3://"}
	}

	return nil
}

func validateVPCConfig(value string) []string {
	var config map[string]json.RawMessage
	if err := json.Unmarshal([]byte(value), &config); err != nil {
		if json.Valid([]byte(value)) {
			return []string{"vpc-config must be a JSON object"}
		}

		return nil
	}

	var errs []string
	for _, field := range []string{"SecurityGroupIds", "Subnets"} {
		raw, ok := config[field]
		if !ok {
			errs = append(errs, fmt.Sprintf("vpc-config missing required field: %s", field))

			continue
		}
		var list []json.RawMessage
		if err := json.Unmarshal(raw, &list); err != nil {
			errs = append(errs, fmt.Sprintf("vpc-config.%s must be an array", field))
		}
	}

	return errs
}

func validateRegion(region string) []string {
	for _, known := range knownRegions {
		if region == known {
			return nil
		}
	}

	return []string{fmt.Sprintf("Region '%s' is not in the list of common regions. Please verify it supports SageMaker.", region)}
}
