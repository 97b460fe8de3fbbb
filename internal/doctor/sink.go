package doctor

import (
	"os"
	"path/filepath"
)

// SinkCheck verifies that the metrics log path is writable without leaving
// a file behind. A broken path does not abort monitoring, but every sample
// would be silently dropped after the first warning.
type SinkCheck struct {
	// Path is the CSV log destination to probe.
	Path string
}

func (c *SinkCheck) Name() string     { return "csv-sink" }
func (c *SinkCheck) Category() string { return "SINK" }

func (c *SinkCheck) Run() CheckResult {
	if c.Path == "" {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusWarn,
			Message: "No CSV path configured",
		}
	}

	// An existing log must be appendable; a fresh one must be creatable.
	if info, err := os.Stat(c.Path); err == nil {
		if info.IsDir() {
			return CheckResult{
				Name:       c.Name(),
				Status:     StatusFail,
				Message:    "CSV path is a directory: " + c.Path,
				Suggestion: "Point --csv at a file, not a directory.",
			}
		}
		file, err := os.OpenFile(c.Path, os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return CheckResult{
				Name:       c.Name(),
				Status:     StatusFail,
				Message:    "CSV log exists but is not appendable: " + c.Path,
				Suggestion: "Check file permissions.",
			}
		}
		file.Close()
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusPass,
			Message: "CSV log is appendable: " + c.Path,
		}
	}

	dir := filepath.Dir(c.Path)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		// Monitoring creates missing directories at sink open time.
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusWarn,
			Message: "Log directory does not exist yet: " + dir,
			Suggestion: "It will be created when monitoring starts; " +
				"check the parent is writable.",
		}
	}

	probe, err := os.CreateTemp(dir, ".memwatch-probe-*")
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    "Cannot create files in " + dir,
			Suggestion: "Check the directory exists and is writable, or pass a different --csv path.",
		}
	}
	probe.Close()
	os.Remove(probe.Name())

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: "CSV log can be created: " + c.Path,
	}
}
