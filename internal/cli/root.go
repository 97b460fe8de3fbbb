package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/glueful/memwatch/internal/ui"
)

// Global flags available to all subcommands.
var (
	configFlag  string
	noColorFlag bool
)

// rootCmd is the base command for memwatch.
var rootCmd = &cobra.Command{
	Use:   "memwatch",
	Short: "Process memory monitor",
	Long: `memwatch samples memory usage of a process on a fixed interval,
reports each sample, raises threshold alerts, and can persist samples
to a CSV log.

It monitors either its own process or a child command it spawns and
supervises until the command exits.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColorFlag {
			ui.SetColorEnabled(false)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "config file path (default: .memwatch.yaml)")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "disable colored output")
}

// Execute runs the root command. Any error prints to stderr and exits 1.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
