// =============================================================================
// Compute Sales - Configuration Module
// =============================================================================
//
// This module loads the optional runtime configuration. The core behavior of
// the tool is fixed by its command line; the configuration file only covers
// the ambient settings:
//
//   report_file: SalesResults.txt   # where the report is persisted
//   archive_dir: ""                 # copy each report here (empty = disabled)
//   log_level:   info               # diagnostic verbosity on stderr
//
// The file is YAML. When the default config path does not exist, the
// defaults apply silently; a path set explicitly with --config must exist.
//
// =============================================================================

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = "config.yaml"

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the runtime configuration.
type Config struct {
	// ReportFile is the file the formatted report is persisted to, relative
	// to the working directory unless absolute.
	// Default: "SalesResults.txt"
	ReportFile string `yaml:"report_file"`

	// ArchiveDir, when set, receives a timestamped copy of every persisted
	// report. Empty disables archival.
	ArchiveDir string `yaml:"archive_dir"`

	// LogLevel controls the verbosity of the diagnostic stream.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the configuration file at path.
//
// PARAMETERS:
//   - path:     The config file path.
//   - explicit: Whether the path was set by the user. An explicit path must
//     exist; the default path may be absent, in which case the defaults
//     apply.
//
// RETURNS:
//   - The configuration with defaults applied and validated.
//   - An error if the file cannot be read or parsed, or a value is invalid.
func Load(path string, explicit bool) (*Config, error) {
	var config Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// No config file at the default location; run on defaults.
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	applyDefaults(&config)

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(config *Config) {
	if config.ReportFile == "" {
		config.ReportFile = "SalesResults.txt"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
}

// validate checks the configuration values.
func validate(config *Config) error {
	switch config.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", config.LogLevel)
	}
	return nil
}
