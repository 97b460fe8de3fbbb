// Package alert evaluates memory samples against a threshold and, when
// self-monitoring, dispatches a forced garbage collection as a corrective
// action.
package alert

import (
	"runtime"
	"runtime/debug"

	"github.com/glueful/memwatch/internal/sampler"
)

// Result classifies a single sample against the threshold.
type Result int

const (
	// Normal means the sample is at or below the threshold.
	Normal Result = iota
	// ThresholdExceeded means current usage is strictly above the threshold.
	ThresholdExceeded
)

// Evaluate is a pure function of the sample and threshold. No hysteresis,
// no cooldown: a sample strictly above the threshold always yields
// ThresholdExceeded, even on consecutive ticks.
func Evaluate(s sampler.Sample, threshold uint64) Result {
	if s.Current > threshold {
		return ThresholdExceeded
	}
	return Normal
}

// Engine evaluates samples and optionally drives the corrective action.
type Engine struct {
	// Threshold in bytes above which a sample alerts.
	Threshold uint64

	// SelfTarget is true when the monitored process is this process, in
	// which case a breach triggers a forced GC.
	SelfTarget bool

	// forceGC is the corrective action. Replaceable in tests.
	forceGC func()
}

// NewEngine creates an alert engine for the given threshold. When
// selfTarget is set, each breach dispatches a forced garbage collection.
func NewEngine(threshold uint64, selfTarget bool) *Engine {
	return &Engine{
		Threshold:  threshold,
		SelfTarget: selfTarget,
		forceGC:    forceGC,
	}
}

// Check evaluates one sample. When the threshold is breached and the engine
// targets the current process, the corrective action is dispatched once per
// qualifying sample.
func (e *Engine) Check(s sampler.Sample) Result {
	result := Evaluate(s, e.Threshold)
	if result == ThresholdExceeded && e.SelfTarget {
		e.forceGC()
	}
	return result
}

// SetGCHook replaces the corrective action; nil restores the default.
// Tests use this to count dispatches without thrashing the runtime.
func (e *Engine) SetGCHook(fn func()) {
	if fn == nil {
		fn = forceGC
	}
	e.forceGC = fn
}

// forceGC requests an immediate collection and returns freed pages to the OS.
func forceGC() {
	runtime.GC()
	debug.FreeOSMemory()
}
