// Package cli implements the memwatch command-line interface.
//
// The package is organized around Cobra commands, with each command
// delegating to the internal packages for the actual work:
//
//	memwatch monitor [command...]  - Run a monitoring session
//	memwatch doctor                - Diagnose the monitoring environment
//	memwatch init                  - Create a starter config file
//	memwatch version               - Print version information
//	memwatch completion <shell>    - Generate shell completion
//
// # Flag Handling
//
// Global flags (--config, --no-color) are defined on the root command and
// available to all subcommands. Monitor flags (--interval, --threshold,
// --duration, --log, --csv) default from the optional .memwatch.yaml config
// file; explicitly set flags win over file values.
//
// # Exit Codes
//
// 0 for every normal stop: child exit (of any status), duration expiry, or
// interrupt. 1 when the child cannot be spawned, memory cannot be sampled,
// or the configuration is invalid.
package cli
