package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/glueful/memwatch/internal/config"
	"github.com/glueful/memwatch/internal/errors"
	"github.com/glueful/memwatch/internal/monitor"
	"github.com/glueful/memwatch/internal/ui"
)

// bytesPerMB converts the --threshold flag (megabytes) to bytes.
const bytesPerMB = 1048576

// Monitor command flags
var (
	monitorIntervalFlag  float64
	monitorThresholdFlag uint64
	monitorDurationFlag  uint64
	monitorLogFlag       bool
	monitorCSVFlag       string
)

// monitorCmd samples memory usage on a fixed interval.
var monitorCmd = &cobra.Command{
	Use:   "monitor [command...]",
	Short: "Monitor memory usage of this process or a command",
	Long: `Sample memory usage on a fixed interval and report each reading.

Without arguments, memwatch monitors its own process and forces a
garbage collection whenever usage crosses the threshold. With a command,
memwatch spawns and supervises it: output is forwarded, liveness is
checked each tick, and monitoring stops when the command exits.

Samples can be appended to a CSV log with --log; the file keeps growing
across invocations.

Examples:
  memwatch monitor
  memwatch monitor --interval 0.5 --threshold 100
  memwatch monitor --duration 60 --log --csv metrics.csv
  memwatch monitor -- make build`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return monitorCommand(cmd, args)
	},
}

func init() {
	monitorCmd.Flags().Float64Var(&monitorIntervalFlag, "interval", 1, "seconds between samples")
	monitorCmd.Flags().Uint64Var(&monitorThresholdFlag, "threshold", 20, "alert threshold in MB")
	monitorCmd.Flags().Uint64Var(&monitorDurationFlag, "duration", 0, "max seconds to run (0 = unlimited)")
	monitorCmd.Flags().BoolVar(&monitorLogFlag, "log", false, "append samples to a CSV log")
	monitorCmd.Flags().StringVar(&monitorCSVFlag, "csv", "memory-usage.csv", "CSV log path")

	rootCmd.AddCommand(monitorCmd)
}

// monitorCommand resolves the session config and runs the polling loop.
// Exit code 0 covers every normal stop (child exit of any status, duration
// expiry, interrupt); spawn and sampling failures surface as errors and
// exit 1.
func monitorCommand(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadOrDefault(configFlag)
	if err != nil {
		return err
	}
	if cfg.Output.Color == "never" {
		ui.SetColorEnabled(false)
	} else if cfg.Output.Color == "always" && !noColorFlag {
		ui.SetColorEnabled(true)
	}

	session, err := resolveSession(cmd, cfg, args)
	if err != nil {
		return err
	}

	// Interrupts route through finalization: the context cancels, the loop
	// observes it between ticks, and cleanup runs as on normal completion.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return monitor.NewSession(session, monitor.Options{
		Reporter: monitor.NewReporter(os.Stdout),
	}).Run(ctx)
}

// resolveSession merges defaults, config file values, and flags.
// Flags win when explicitly set.
func resolveSession(cmd *cobra.Command, cfg *config.Config, args []string) (*config.Session, error) {
	interval := cfg.Monitor.Interval
	thresholdMB := cfg.Monitor.ThresholdMB
	duration := cfg.Monitor.Duration
	csvEnabled := cfg.Monitor.Log
	csvPath := cfg.Monitor.CSV

	if cmd.Flags().Changed("interval") {
		interval = monitorIntervalFlag
	}
	if cmd.Flags().Changed("threshold") {
		thresholdMB = monitorThresholdFlag
	}
	if cmd.Flags().Changed("duration") {
		duration = monitorDurationFlag
	}
	if cmd.Flags().Changed("log") {
		csvEnabled = monitorLogFlag
	}
	if cmd.Flags().Changed("csv") {
		csvPath = monitorCSVFlag
	}

	if interval <= 0 {
		return nil, errors.New(errors.ErrConfig,
			fmt.Sprintf("Invalid interval: %g", interval),
			"Use --interval with a value greater than 0, like 0.5 or 2.")
	}

	session := &config.Session{
		Interval:    time.Duration(interval * float64(time.Second)),
		Threshold:   thresholdMB * bytesPerMB,
		MaxDuration: time.Duration(duration) * time.Second,
		CSVEnabled:  csvEnabled,
		CSVPath:     csvPath,
		Command:     args,
	}
	if err := session.Validate(); err != nil {
		return nil, err
	}
	return session, nil
}
