package core

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kamil5b/go-metafs-client/internal/metacache"
	"github.com/kamil5b/go-metafs-client/internal/rpcclient"
	"github.com/kamil5b/go-metafs-client/internal/shared/validator"
)

type ClientConfig struct {
	// MetricPrefix overrides the generated metric prefix. Leave empty for a
	// per-process unique one.
	MetricPrefix string `yaml:"metric_prefix"`

	Executor rpcclient.ExecutorOption `yaml:"executor"`
	Cache    metacache.Config         `yaml:"cache"`
}

type Config struct {
	Environment string       `yaml:"environment" validate:"oneof=development production"`
	Client      ClientConfig `yaml:"client"`
}

// DefaultConfig returns a config with production executor and cache settings.
func DefaultConfig() *Config {
	return &Config{
		Environment: "production",
		Client: ClientConfig{
			Executor: rpcclient.DefaultExecutorOption(),
			Cache:    metacache.DefaultConfig(),
		},
	}
}

// LoadConfig loads application config from a YAML file on top of the
// defaults, then validates it.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the config tree against its field constraints. Nested
// structs are validated recursively.
func (c *Config) Validate() error {
	return validator.ValidateStruct(c)
}
