package training

// Defaults applied by BuildRequest when the optional resource inputs are
// absent.
const (
	DefaultInstanceType  = "ml.m5.large"
	DefaultInstanceCount = 1
	DefaultVolumeSizeGB  = 30
	DefaultMaxRuntimeSec = 86400
)

// Spec is the full set of recognized training-job parameters, collected once
// per invocation and immutable afterwards. Values are kept in their raw string
// form: validation runs against exactly what the user supplied, and the JSON
// shaped fields stay opaque until the request is built.
type Spec struct {
	// Required.
	JobName          string `json:"job_name"`
	RoleARN          string `json:"role_arn"`
	TrainingImage    string `json:"training_image"`
	InputDataConfig  string `json:"input_data_config"`
	OutputDataConfig string `json:"output_data_config"`

	// Optional resource shape. Empty means default.
	InstanceType  string `json:"instance_type,omitempty"`
	InstanceCount string `json:"instance_count,omitempty"`
	VolumeSize    string `json:"volume_size,omitempty"`
	MaxRuntime    string `json:"max_runtime,omitempty"`

	// Optional JSON-shaped maps.
	HyperParameters string `json:"hyperparameters,omitempty"`
	Environment     string `json:"environment,omitempty"`
	VPCConfig       string `json:"vpc_config,omitempty"`
	Tags            string `json:"tags,omitempty"`

	Region string `json:"region,omitempty"`
}
