package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/keymapper/internal/bootstrap"
	"github.com/bnema/keymapper/internal/cli/styles"
	"github.com/bnema/keymapper/internal/infrastructure/config"
	"github.com/bnema/keymapper/internal/infrastructure/inputdev"
	"github.com/bnema/keymapper/internal/replay"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the configured key maps",
	Long: `Load every key map from the config file and keymaps_files the way the
daemon does, and report the ones it would reject. Exits non-zero when a
key map is rejected.`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	ctx := app.Ctx()

	keyMaps, err := config.NewKeyMapSource(app.Manager, inputdev.ResolveKey).LoadKeyMaps(ctx)
	rejected := unjoin(err)

	// An empty script loads the key maps into a dry-run engine.
	report, err := replay.Run(ctx, keyMaps, &replay.Script{}, bootstrap.EngineOptions(app.Config.Engine)...)
	if err != nil {
		return err
	}
	rejected = append(rejected, report.Rejected...)

	renderer := styles.NewConfigRenderer(app.Theme)
	fmt.Print(renderer.RenderValidation(app.Manager.GetConfigFile(), len(report.Final), rejected))
	if len(rejected) > 0 {
		return fmt.Errorf("%d key maps rejected", len(rejected))
	}
	return nil
}

// unjoin splits an errors.Join result into its parts.
func unjoin(err error) []error {
	if err == nil {
		return nil
	}
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return []error{err}
	}
	var out []error
	for _, e := range joined.Unwrap() {
		out = append(out, unjoin(e)...)
	}
	return out
}
