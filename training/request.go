package training

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sagemaker"
	"github.com/aws/aws-sdk-go-v2/service/sagemaker/types"
)

// BuildRequest transforms a validated spec into the CreateTrainingJob request.
// It is a pure transform: it assumes Validate has already passed and applies
// the documented defaults for the optional resource fields.
func BuildRequest(s Spec) (*sagemaker.CreateTrainingJobInput, error) {
	var channels []types.Channel
	if err := json.Unmarshal([]byte(s.InputDataConfig), &channels); err != nil {
		return nil, fmt.Errorf("parsing input-data-config: %w", err)
	}

	var output types.OutputDataConfig
	if err := json.Unmarshal([]byte(s.OutputDataConfig), &output); err != nil {
		return nil, fmt.Errorf("parsing output-data-config: %w", err)
	}

	req := &sagemaker.CreateTrainingJobInput{
		TrainingJobName: aws.String(s.JobName),
		RoleArn:         aws.String(s.RoleARN),
		AlgorithmSpecification: &types.AlgorithmSpecification{
			TrainingImage:     aws.String(s.TrainingImage),
			TrainingInputMode: types.TrainingInputModeFile,
		},
		InputDataConfig:  channels,
		OutputDataConfig: &output,
		ResourceConfig: &types.ResourceConfig{
			InstanceType:   types.TrainingInstanceType(defaultString(s.InstanceType, DefaultInstanceType)),
			InstanceCount:  aws.Int32(defaultInt32(s.InstanceCount, DefaultInstanceCount)),
			VolumeSizeInGB: aws.Int32(defaultInt32(s.VolumeSize, DefaultVolumeSizeGB)),
		},
		StoppingCondition: &types.StoppingCondition{
			MaxRuntimeInSeconds: aws.Int32(defaultInt32(s.MaxRuntime, DefaultMaxRuntimeSec)),
		},
	}

	if s.HyperParameters != "" {
		m, err := stringMap("hyperparameters", s.HyperParameters)
		if err != nil {
			return nil, err
		}
		if len(m) > 0 {
			req.HyperParameters = m
		}
	}

	if s.Environment != "" {
		m, err := stringMap("environment", s.Environment)
		if err != nil {
			return nil, err
		}
		if len(m) > 0 {
			req.Environment = m
		}
	}

	if s.VPCConfig != "" {
		var vpc types.VpcConfig
		if err := json.Unmarshal([]byte(s.VPCConfig), &vpc); err != nil {
			return nil, fmt.Errorf("parsing vpc-config: %w", err)
		}
		if len(vpc.SecurityGroupIds) > 0 || len(vpc.Subnets) > 0 {
			req.VpcConfig = &vpc
		}
	}

	if s.Tags != "" {
		tags, err := buildTags(s.Tags)
		if err != nil {
			return nil, err
		}
		if len(tags) > 0 {
			req.Tags = tags
		}
	}

	return req, nil
}

func defaultString(value, def string) string {
	if value == "" {
		return def
	}

	return value
}

func defaultInt32(value string, def int32) int32 {
	if value == "" {
		return def
	}
	n, err := strconv.ParseInt(value, 10, 32)
	if err != nil {
		return def
	}

	return int32(n)
}

// stringMap parses a JSON object and coerces every value to a string, since
// the SageMaker schema requires string-valued hyperparameter and environment
// maps. Numbers keep their literal form.
func stringMap(field, value string) (map[string]string, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(value)))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", field, err)
	}

	m := make(map[string]string, len(raw))
	for k, v := range raw {
		m[k] = stringify(v)
	}

	return m, nil
}

func buildTags(value string) ([]types.Tag, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(value)))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parsing tags: %w", err)
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tags := make([]types.Tag, 0, len(keys))
	for _, k := range keys {
		tags = append(tags, types.Tag{
			Key:   aws.String(k),
			Value: aws.String(stringify(raw[k])),
		})
	}

	return tags, nil
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return ""
	default:
		b, _ := json.Marshal(t)

		return string(b)
	}
}
