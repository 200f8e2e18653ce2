package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-runner/internal/config"
)

var flagConfigCheck bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default configuration",
	Long: `Print the embedded default runner.yaml. Redirect it to
~/.runner/configs/runner.yaml or ./configs/runner.yaml to customise it.

With --check, load the configuration the game would use (honouring
--config) and report whether it is valid.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigCheck, "check", false, "Validate the active configuration instead of printing defaults")
}

func runConfig(cmd *cobra.Command, args []string) error {
	if !flagConfigCheck {
		_, err := os.Stdout.Write(config.DefaultYAML())
		return err
	}

	cfg, err := config.LoadRunner(flagConfig)
	if err != nil {
		return err
	}
	fmt.Printf("Config OK: hold window %s, journal enabled %t\n",
		cfg.Input.HoldWindow(), cfg.Journal.Enabled)
	return nil
}
