package sagemakertraining

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml"
)

// Config holds defaults for the CLI, loaded from an optional TOML file so
// repeated submissions do not need the full flag set every time.
type Config struct {
	AWS AWSConfig `toml:"aws"`
	Job JobConfig `toml:"job"`
}

type AWSConfig struct {
	Region       string `toml:"region"`
	RoleARN      string `toml:"role_arn"`
	RoleToAssume string `toml:"role_to_assume"`
}

type JobConfig struct {
	InstanceType  string `toml:"instance_type"`
	InstanceCount string `toml:"instance_count"`
	VolumeSize    string `toml:"volume_size"`
	MaxRuntime    string `toml:"max_runtime"`
	CheckInterval string `toml:"check_interval"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	tree, err := toml.Load(string(data))
	if err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	var cfg Config
	if err := tree.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &cfg, nil
}
