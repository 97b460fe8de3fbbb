package config

import (
	"time"

	"github.com/glueful/memwatch/internal/errors"
)

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Config represents the complete .memwatch.yaml configuration file.
// All fields are optional; missing values fall back to defaults.
type Config struct {
	Version int           `yaml:"version" mapstructure:"version"`
	Monitor MonitorConfig `yaml:"monitor" mapstructure:"monitor"`
	Output  OutputConfig  `yaml:"output" mapstructure:"output"`
}

// MonitorConfig holds the default monitoring parameters.
// Command-line flags override these values.
type MonitorConfig struct {
	// Interval between samples, in seconds.
	Interval float64 `yaml:"interval" mapstructure:"interval"`

	// ThresholdMB is the alert threshold in megabytes.
	ThresholdMB uint64 `yaml:"threshold_mb" mapstructure:"threshold_mb"`

	// Duration is the maximum session length in seconds. 0 means unlimited.
	Duration uint64 `yaml:"duration" mapstructure:"duration"`

	// Log enables CSV logging by default.
	Log bool `yaml:"log" mapstructure:"log"`

	// CSV is the metrics log path.
	CSV string `yaml:"csv" mapstructure:"csv"`
}

// OutputConfig controls terminal output formatting.
type OutputConfig struct {
	// Color mode: "auto", "always", or "never".
	// "auto" disables color when output is piped.
	Color string `yaml:"color" mapstructure:"color"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		Monitor: MonitorConfig{
			Interval:    1,
			ThresholdMB: 20,
			Duration:    0,
			Log:         false,
			CSV:         "memory-usage.csv",
		},
		Output: OutputConfig{
			Color: "auto",
		},
	}
}

// Session is the immutable parameter set for one monitoring session,
// resolved from defaults, config file, and flags.
type Session struct {
	// Interval between samples. Must be positive.
	Interval time.Duration

	// Threshold in bytes above which an alert fires.
	Threshold uint64

	// MaxDuration caps the session wall time. 0 means unlimited.
	MaxDuration time.Duration

	// CSVEnabled turns on the metrics log.
	CSVEnabled bool

	// CSVPath is where samples are appended.
	CSVPath string

	// Command is the child command to supervise. Empty means self-monitoring.
	Command []string
}

// Validate checks that the session parameters are usable.
func (s *Session) Validate() error {
	if s.Interval <= 0 {
		return errors.New(errors.ErrConfig,
			"Interval must be positive",
			"Use --interval with a value greater than 0, like 0.5 or 2.")
	}
	if s.CSVEnabled && s.CSVPath == "" {
		return errors.New(errors.ErrConfig,
			"CSV logging enabled but no path given",
			"Pass --csv with a file path, or drop --log.")
	}
	return nil
}

// SelfTarget reports whether the session monitors the current process
// rather than a spawned child command.
func (s *Session) SelfTarget() bool {
	return len(s.Command) == 0
}
