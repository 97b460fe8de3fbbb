package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/glueful/memwatch/internal/config"
	"github.com/glueful/memwatch/internal/errors"
	"github.com/glueful/memwatch/internal/ui"
)

var initForceFlag bool

// initCmd creates a starter .memwatch.yaml in the current directory.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a .memwatch.yaml config file",
	Long: `Write a starter .memwatch.yaml with the default monitoring
parameters to the current directory. Edit it to change the defaults for
this project; command-line flags still override file values.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return initCommand()
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForceFlag, "force", false, "overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}

func initCommand() error {
	configPath := filepath.Join(".", config.ConfigFileName)

	if _, err := os.Stat(configPath); err == nil && !initForceFlag {
		return errors.New(errors.ErrConfig,
			"Config file already exists: "+configPath,
			"Use --force to overwrite.")
	}

	if err := config.Write(configPath, config.DefaultConfig()); err != nil {
		return err
	}

	fmt.Printf("%s Created %s\n", ui.Success(ui.SymbolSuccess), configPath)
	return nil
}
