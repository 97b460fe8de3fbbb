package doctor

import (
	"github.com/glueful/memwatch/internal/config"
)

// ConfigCheck verifies that the config file, if any, parses and validates.
// A missing file is fine; monitoring falls back to built-in defaults.
type ConfigCheck struct {
	// Explicit is the --config path, empty to use the normal search order.
	Explicit string
}

func (c *ConfigCheck) Name() string     { return "config-file" }
func (c *ConfigCheck) Category() string { return "CONFIG" }

func (c *ConfigCheck) Run() CheckResult {
	path, err := config.Find(c.Explicit)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    "Config file is not accessible",
			Suggestion: err.Error(),
		}
	}
	if path == "" {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusPass,
			Message: "No config file found, using built-in defaults",
		}
	}

	if _, err := config.Load(path); err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    "Config file is invalid: " + path,
			Suggestion: err.Error(),
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: "Config file is valid: " + path,
	}
}
