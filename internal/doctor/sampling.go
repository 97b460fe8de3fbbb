package doctor

import (
	"fmt"

	"github.com/glueful/memwatch/internal/sampler"
	"github.com/glueful/memwatch/internal/ui"
)

// SamplingCheck verifies that memory readings can be taken for the current
// process. A failure here means every monitoring session would fail on its
// first tick.
type SamplingCheck struct{}

func (c *SamplingCheck) Name() string     { return "memory-sampling" }
func (c *SamplingCheck) Category() string { return "SAMPLING" }

func (c *SamplingCheck) Run() CheckResult {
	smp, err := sampler.New(0)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    "Cannot attach to the current process",
			Suggestion: err.Error(),
		}
	}

	sample, err := smp.Sample()
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    "Cannot read memory usage",
			Suggestion: err.Error(),
		}
	}

	return CheckResult{
		Name:   c.Name(),
		Status: StatusPass,
		Message: fmt.Sprintf("Memory sampling works (current usage %s)",
			ui.FormatBytes(sample.Current)),
	}
}

// LimitCheck reports where the usage ceiling comes from: an address-space
// rlimit when one is set, total system memory otherwise.
type LimitCheck struct{}

func (c *LimitCheck) Name() string     { return "memory-limit" }
func (c *LimitCheck) Category() string { return "SAMPLING" }

func (c *LimitCheck) Run() CheckResult {
	smp, err := sampler.New(0)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    "Cannot attach to the current process",
			Suggestion: err.Error(),
		}
	}

	sample, err := smp.Sample()
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    "Cannot determine the memory ceiling",
			Suggestion: err.Error(),
		}
	}
	if sample.Limit == 0 {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    "No memory ceiling detected; percentages will be meaningless",
			Suggestion: "Check that total system memory is readable on this platform.",
		}
	}

	return CheckResult{
		Name:   c.Name(),
		Status: StatusPass,
		Message: fmt.Sprintf("Memory ceiling detected: %s",
			ui.FormatBytes(sample.Limit)),
	}
}
