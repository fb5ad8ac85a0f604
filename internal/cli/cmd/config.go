package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/keymapper/internal/cli/styles"
	"github.com/bnema/keymapper/internal/infrastructure/config"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
	Long:  `Show, initialize and describe the keymapper configuration file.`,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the path of the active config file",
	RunE:  runConfigPath,
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Write the JSON schema of the config file",
	Long: `Write config.schema.json next to the config file.

TOML language servers such as taplo and tombi use it for completion and
validation of key maps.`,
	RunE: runConfigSchema,
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a config file with the default settings",
	Long: `Write the default configuration to path, or to the active config file
when no path is given. Existing files are kept unless --force is set.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigInit,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd, configSchemaCmd, configInitCmd)

	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "overwrite an existing file")
}

func runConfigPath(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	fmt.Print(styles.NewConfigRenderer(app.Theme).RenderPath(app.Manager.GetConfigFile()))
	return nil
}

func runConfigSchema(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	renderer := styles.NewConfigRenderer(app.Theme)
	path, err := config.GenerateSchemaFile()
	if err != nil {
		fmt.Print(renderer.RenderError(err))
		return err
	}
	fmt.Print(renderer.RenderSchemaWritten(path))
	return nil
}

func runConfigInit(_ *cobra.Command, args []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	path := app.Manager.GetConfigFile()
	if len(args) == 1 {
		path = args[0]
	}

	if _, err := os.Stat(path); err == nil && !configForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	if err := config.WriteConfigOrdered(config.DefaultConfig(), path); err != nil {
		return err
	}
	fmt.Print(styles.NewConfigRenderer(app.Theme).RenderPath(path))
	return nil
}
