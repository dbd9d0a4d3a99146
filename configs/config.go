package configs

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/RyanBlaney/mfcc-extract/pkg/mfcc"
)

// Config represents the application configuration
type Config struct {
	// Application settings
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose"`
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`

	// Feature extraction parameters
	Feature mfcc.Config `mapstructure:"feature" yaml:"feature"`

	// Batch processing behavior
	Batch BatchConfig `mapstructure:"batch" yaml:"batch"`

	// Output configuration
	Output OutputConfig `mapstructure:"output" yaml:"output"`
}

// BatchConfig contains batch execution settings
type BatchConfig struct {
	MinDuration time.Duration `mapstructure:"min_duration" yaml:"min_duration"`
	Permissive  bool          `mapstructure:"permissive" yaml:"permissive"`
	Workers     int           `mapstructure:"workers" yaml:"workers"`
	Standardize bool          `mapstructure:"standardize" yaml:"standardize"`
}

// OutputConfig contains feature sink settings
type OutputConfig struct {
	Path   string `mapstructure:"path" yaml:"path"`
	Format string `mapstructure:"format" yaml:"format"`
}

// LoadConfig loads configuration from viper
func LoadConfig() (*Config, error) {
	config := &Config{}

	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unable to decode configuration: %w", err)
	}

	return config, nil
}

// ValidateConfig validates the configuration
func ValidateConfig(config *Config) error {
	if err := config.Feature.Validate(); err != nil {
		return err
	}

	if config.Batch.Workers < 0 {
		return fmt.Errorf("batch workers cannot be negative")
	}

	if config.Batch.MinDuration < 0 {
		return fmt.Errorf("minimum duration cannot be negative")
	}

	switch config.Output.Format {
	case "msgpack", "json":
	default:
		return fmt.Errorf("unknown output format %q (expected msgpack or json)", config.Output.Format)
	}

	return nil
}
