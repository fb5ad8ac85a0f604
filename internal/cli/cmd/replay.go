package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/spf13/cobra"

	"github.com/bnema/keymapper/internal/bootstrap"
	"github.com/bnema/keymapper/internal/cli/styles"
	"github.com/bnema/keymapper/internal/domain/entity"
	"github.com/bnema/keymapper/internal/infrastructure/config"
	"github.com/bnema/keymapper/internal/infrastructure/inputdev"
	"github.com/bnema/keymapper/internal/replay"
)

var replayCmd = &cobra.Command{
	Use:   "replay <script.yaml>",
	Short: "Dry-run the key maps against scripted input",
	Long: `Feed a YAML script of timed key events and world state changes to the
configured key maps and print the actions that would be dispatched. No
device is opened and nothing is executed; time is simulated.

Example script:
  device: keyboard
  world:
    foreground_app: org.mozilla.firefox
  steps:
    - at: 0
      down: KEY_VOLUMEDOWN
    - at: 600
      up: KEY_VOLUMEDOWN
  until: 1000`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)
}

func runReplay(_ *cobra.Command, args []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	ctx := app.Ctx()

	script, err := replay.LoadScript(args[0], inputdev.ResolveKey)
	if err != nil {
		return err
	}

	keyMaps, loadErr := config.NewKeyMapSource(app.Manager, inputdev.ResolveKey).LoadKeyMaps(ctx)
	report, err := replay.Run(ctx, keyMaps, script, bootstrap.EngineOptions(app.Config.Engine)...)
	if err != nil {
		return err
	}

	t := app.Theme
	for _, e := range append(unjoin(loadErr), report.Rejected...) {
		fmt.Println(t.WarningStyle.Render(styles.IconWarning + " " + e.Error()))
	}
	for _, e := range report.Errors {
		fmt.Println(t.ErrorStyle.Render(styles.IconX + " " + e.Error()))
	}

	fmt.Println(t.Title.Render(fmt.Sprintf("%s %d dispatches", styles.IconClock, len(report.Dispatches))))
	if len(report.Dispatches) > 0 {
		rows := make([]table.Row, 0, len(report.Dispatches))
		for _, d := range report.Dispatches {
			rows = append(rows, table.Row{
				fmt.Sprint(d.AtMs),
				d.KeyMapID,
				d.ActionID,
				describePayload(d.Payload),
				string(d.EventType),
			})
		}
		fmt.Println(styles.RenderTable(t, styles.ReplayTableColumns(), rows))
	}

	if len(report.Final) > 0 {
		rows := make([]table.Row, 0, len(report.Final))
		for _, s := range report.Final {
			rows = append(rows, statusRow(s.ID, s.Name, s.Enabled, string(s.Trigger), s.Cursor, string(s.Chain), s.ActionIndex))
		}
		fmt.Println(styles.RenderTable(t, styles.StatusTableColumns(), rows))
	}
	return nil
}

func describePayload(p entity.ActionPayload) string {
	switch p.Kind {
	case entity.ActionKindKey:
		return inputdev.KeyName(p.KeyCode)
	case entity.ActionKindText:
		return fmt.Sprintf("%q", p.Text)
	case entity.ActionKindCommand:
		return strings.Join(append([]string{p.Command}, p.Args...), " ")
	case entity.ActionKindSystem:
		return p.SystemID
	default:
		return string(p.Kind)
	}
}
