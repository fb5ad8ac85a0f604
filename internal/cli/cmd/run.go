package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bnema/keymapper/internal/bootstrap"
	"github.com/bnema/keymapper/internal/logging"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the keymapper daemon",
	Long: `Start the daemon: open the configured input devices, load the key maps
and dispatch actions until interrupted.

The config file is watched; key map and world state changes apply
without a restart. Reading input devices usually requires membership of
the 'input' group, and the virtual keyboard needs write access to
/dev/uinput.

Examples:
  keymapper run                      # Use the default config
  keymapper run -c ./config.toml     # Use a specific config file`,
	RunE: runDaemon,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runDaemon(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	ctx, stop := signal.NotifyContext(app.Ctx(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	app.WithContext(ctx)

	log := logging.FromContext(ctx)
	log.Info().
		Str("version", app.BuildInfo.Version).
		Str("config", app.Manager.GetConfigFile()).
		Msg("starting keymapper")

	daemon, err := bootstrap.NewDaemon(ctx, app.Manager)
	if err != nil {
		return fmt.Errorf("start daemon: %w", err)
	}
	defer func() {
		if closeErr := daemon.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("failed to close daemon")
		}
	}()

	if err := daemon.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info().Msg("keymapper stopped")
	return nil
}
