package configs

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	// Application settings
	Verbose      bool   `mapstructure:"verbose"`
	LogLevel     string `mapstructure:"log_level"`
	OutputFormat string `mapstructure:"output_format"`

	// Structural captioning parameters
	Caption CaptionConfig `mapstructure:"caption"`

	// Analysis parameters
	Analysis AnalysisConfig `mapstructure:"analysis"`

	// Output formatting
	Output OutputConfig `mapstructure:"output"`
}

// CaptionConfig contains sliding-window captioning settings
type CaptionConfig struct {
	WindowSeconds float64 `mapstructure:"window_seconds"`
	HopSeconds    float64 `mapstructure:"hop_seconds"`
}

// AnalysisConfig contains feature extraction settings
type AnalysisConfig struct {
	MinRows        int `mapstructure:"min_rows"`
	MaxConcurrency int `mapstructure:"max_concurrency"`
}

// OutputConfig contains output formatting settings
type OutputConfig struct {
	Precision       int  `mapstructure:"precision"`
	IncludeMetadata bool `mapstructure:"include_metadata"`
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
	if config.Caption.WindowSeconds <= 0 {
		return fmt.Errorf("caption window must be positive")
	}

	if config.Caption.HopSeconds <= 0 {
		return fmt.Errorf("caption hop must be positive")
	}

	if config.Analysis.MinRows <= 0 {
		return fmt.Errorf("minimum row count must be positive")
	}

	if config.Analysis.MaxConcurrency < 1 {
		return fmt.Errorf("max concurrency must be at least 1")
	}

	switch config.OutputFormat {
	case "json", "yaml", "table":
	default:
		return fmt.Errorf("unsupported output format: %s", config.OutputFormat)
	}

	return nil
}
