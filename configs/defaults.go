package configs

import (
	"github.com/spf13/viper"
)

// Default analysis parameters.
const (
	DefaultWindowSeconds  = 1.0
	DefaultHopSeconds     = 0.5
	DefaultMinRows        = 8
	DefaultMaxConcurrency = 4
)

// setDefaults sets default configuration values for all components
func setDefaults(v *viper.Viper) {
	// Captioning defaults
	if !v.IsSet("caption.window_seconds") {
		v.Set("caption.window_seconds", DefaultWindowSeconds)
	}
	if !v.IsSet("caption.hop_seconds") {
		v.Set("caption.hop_seconds", DefaultHopSeconds)
	}

	// Analysis defaults
	if !v.IsSet("analysis.min_rows") {
		v.Set("analysis.min_rows", DefaultMinRows)
	}
	if !v.IsSet("analysis.max_concurrency") {
		v.Set("analysis.max_concurrency", DefaultMaxConcurrency)
	}

	// Output defaults
	if !v.IsSet("output.precision") {
		v.Set("output.precision", 4)
	}
	if !v.IsSet("output.include_metadata") {
		v.Set("output.include_metadata", true)
	}

	// Application defaults
	if !v.IsSet("verbose") {
		v.Set("verbose", false)
	}
	if !v.IsSet("log_level") {
		v.Set("log_level", "info")
	}
	if !v.IsSet("output_format") {
		v.Set("output_format", "table")
	}
}

// SetDefaults applies defaults on the global viper instance.
func SetDefaults() {
	setDefaults(viper.GetViper())
}
