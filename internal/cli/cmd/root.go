// Package cmd provides Cobra CLI commands for keymapper.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/keymapper/internal/cli"
	"github.com/bnema/keymapper/internal/domain/build"
)

var (
	app        *cli.App
	buildInfo  build.Info
	configFile string
	rootCmd    = &cobra.Command{
		Use:   "keymapper",
		Short: "Trigger detection and action dispatch for input devices",
		Long: `Keymapper - turn key presses into actions.

Keymapper reads Linux input devices and matches key maps against the
incoming events: short, long and double presses, chords pressed in
parallel, and sequences. Matching key maps run their actions through a
virtual keyboard or the shell.

Features:
  - Short, long and double presses, chords and sequences
  - Constraints on the foreground app, screen state and custom flags
  - Hold-down and repeat actions with per key map ordering
  - Control of the running daemon over D-Bus
  - Dry-run replay of scripted input for testing key maps
  - Dispatch journal with an interactive history browser

Use 'keymapper run' to start the daemon, or explore the subcommands to
validate key maps, replay scripts and control a running instance.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for commands that don't need app context
			switch cmd.Name() {
			case "help", "completion", "gen-docs":
				return nil
			}

			var err error
			app, err = cli.NewApp(configFile)
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			app.BuildInfo = buildInfo
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default $XDG_CONFIG_HOME/keymapper/config.toml)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
}
