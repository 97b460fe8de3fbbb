// Package sampler reads point-in-time memory usage for a process.
//
// Readings come from gopsutil: current resident size and high-water mark
// from the process, and the address-space rlimit as the ceiling. When the
// rlimit is unlimited the total physical memory is used as the ceiling so
// the usage percentage stays meaningful.
package sampler

import (
	"math"
	"os"
	"time"

	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/glueful/memwatch/internal/errors"
)

// Sample is one point-in-time reading of memory usage.
type Sample struct {
	Timestamp time.Time
	Current   uint64  // resident set size, bytes
	Peak      uint64  // high-water mark, bytes
	Limit     uint64  // ceiling, bytes
	Percent   float64 // Current as a percentage of Limit
}

// ProcessSampler reads memory usage for a single process.
type ProcessSampler struct {
	proc *process.Process

	// fallbackLimit is total physical memory, used when the address-space
	// rlimit is unlimited. Resolved once at construction.
	fallbackLimit uint64
}

// New creates a sampler bound to the given PID. A pid of 0 or below binds
// to the current process.
func New(pid int) (*ProcessSampler, error) {
	if pid <= 0 {
		pid = os.Getpid()
	}

	proc, err := process.NewProcess(int32(pid))
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrSample,
			"Cannot attach to process for memory sampling",
			"Check the process is running and you have permission to inspect it.")
	}

	var fallback uint64
	if vm, err := mem.VirtualMemory(); err == nil {
		fallback = vm.Total
	}

	return &ProcessSampler{proc: proc, fallbackLimit: fallback}, nil
}

// Sample reads current usage, peak usage, and the memory ceiling.
// A platform query failure is fatal to the caller's session: monitoring
// cannot continue without readings.
func (s *ProcessSampler) Sample() (Sample, error) {
	info, err := s.proc.MemoryInfo()
	if err != nil {
		return Sample{}, errors.WrapWithCode(err, errors.ErrSample,
			"Memory query failed",
			"The process may have exited, or /proc may be unreadable.")
	}

	sample := Sample{
		Timestamp: time.Now(),
		Current:   info.RSS,
		Peak:      info.HWM,
		Limit:     s.limit(),
	}

	// HWM is absent on some platforms; the peak can never sit below the
	// current reading.
	if sample.Peak < sample.Current {
		sample.Peak = sample.Current
	}

	if sample.Limit > 0 {
		sample.Percent = float64(sample.Current) / float64(sample.Limit) * 100
	}

	return sample, nil
}

// limit resolves the memory ceiling: the soft address-space rlimit when one
// is set, total physical memory otherwise.
func (s *ProcessSampler) limit() uint64 {
	rlimits, err := s.proc.RlimitUsage(false)
	if err == nil {
		for _, rl := range rlimits {
			if rl.Resource != process.RLIMIT_AS {
				continue
			}
			if rl.Soft > 0 && rl.Soft < math.MaxUint64 {
				return rl.Soft
			}
			break
		}
	}
	return s.fallbackLimit
}
