package monitor

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/glueful/memwatch/internal/config"
	"github.com/glueful/memwatch/internal/sampler"
	"github.com/glueful/memwatch/internal/ui"
	"github.com/glueful/memwatch/internal/util"
)

// Reporter formats samples, alerts, and lifecycle messages for the console.
type Reporter struct {
	out io.Writer
}

// NewReporter creates a reporter writing to out.
func NewReporter(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

// Sample prints one fixed-width sample line:
//
//	Memory: 1.5 MB / 128 MB (1.17%) | Peak: 2 MB
func (r *Reporter) Sample(s sampler.Sample) {
	fmt.Fprintf(r.out, "Memory: %s / %s (%s) | Peak: %s\n",
		ui.FormatBytes(s.Current),
		ui.FormatBytes(s.Limit),
		ui.FormatPercent(s.Percent),
		ui.FormatBytes(s.Peak))
}

// ThresholdWarning prints an alert line for a sample above the threshold.
func (r *Reporter) ThresholdWarning(s sampler.Sample, threshold uint64) {
	fmt.Fprintln(r.out, ui.Warning(fmt.Sprintf("%s Memory usage %s exceeds threshold %s",
		ui.SymbolWarning,
		ui.FormatBytes(s.Current),
		ui.FormatBytes(threshold))))
}

// CorrectiveAction notes that a forced garbage collection was dispatched.
func (r *Reporter) CorrectiveAction() {
	fmt.Fprintln(r.out, ui.Muted("  forcing garbage collection"))
}

// Start prints the session banner.
func (r *Reporter) Start(cfg *config.Session, pid int) {
	if cfg.SelfTarget() {
		fmt.Fprintf(r.out, "Monitoring current process (threshold %s, interval %s)\n",
			ui.FormatBytes(cfg.Threshold), formatInterval(cfg.Interval))
		return
	}
	fmt.Fprintf(r.out, "Monitoring: %s (pid %d, threshold %s, interval %s)\n",
		strings.Join(cfg.Command, " "), pid,
		ui.FormatBytes(cfg.Threshold), formatInterval(cfg.Interval))
}

// ChildOutput forwards one captured stdout line from the child.
func (r *Reporter) ChildOutput(line string) {
	fmt.Fprintln(r.out, line)
}

// ChildError forwards one captured stderr line from the child.
func (r *Reporter) ChildError(line string) {
	fmt.Fprintln(r.out, ui.Error(line))
}

// ExitCode reports the child's exit status.
func (r *Reporter) ExitCode(code int) {
	if code == 0 {
		fmt.Fprintf(r.out, "%s Command completed (exit code 0)\n", ui.Success(ui.SymbolSuccess))
		return
	}
	fmt.Fprintf(r.out, "%s Command exited with code %d\n", ui.Error(ui.SymbolFail), code)
}

// Summary prints the end-of-session peak usage and stop reason.
func (r *Reporter) Summary(peak uint64, iterations int, reason string) {
	fmt.Fprintf(r.out, "Stopped: %s\n", reason)
	fmt.Fprintf(r.out, "Peak usage: %s over %d %s\n", ui.FormatBytes(peak), iterations,
		util.Pluralize(iterations, "sample", "samples"))
}

// SinkError warns that metrics persistence degraded.
func (r *Reporter) SinkError(path string) {
	fmt.Fprintln(r.out, ui.Warning(fmt.Sprintf("%s CSV logging to %s unavailable, continuing without it",
		ui.SymbolWarning, path)))
}

// formatInterval renders a sampling interval compactly (1s, 0.5s).
func formatInterval(d time.Duration) string {
	return fmt.Sprintf("%gs", d.Seconds())
}
