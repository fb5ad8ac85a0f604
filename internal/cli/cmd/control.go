package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/spf13/cobra"

	"github.com/bnema/keymapper/internal/cli/styles"
	"github.com/bnema/keymapper/internal/infrastructure/control"
)

var enableCmd = &cobra.Command{
	Use:   "enable <keymap>",
	Short: "Enable a key map in the running daemon",
	Args:  cobra.ExactArgs(1),
	RunE:  runEnable,
}

var disableCmd = &cobra.Command{
	Use:   "disable <keymap>",
	Short: "Disable a key map in the running daemon",
	Long: `Disable a key map. Pending triggers are dropped and running actions
are stopped without dispatching.`,
	Args: cobra.ExactArgs(1),
	RunE: runDisable,
}

var triggerCmd = &cobra.Command{
	Use:   "trigger <keymap>",
	Short: "Run the actions of a key map as if it matched",
	Long: `Run the actions of a key map without input. Constraints still apply:
nothing happens when they are not satisfied.`,
	Args: cobra.ExactArgs(1),
	RunE: runTrigger,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the key maps of the running daemon",
	RunE:  runStatus,
}

var reloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Reload the config file in the running daemon",
	RunE:  runReload,
}

func init() {
	rootCmd.AddCommand(enableCmd, disableCmd, triggerCmd, statusCmd, reloadCmd)
}

func controlClient() (*control.Client, error) {
	app := GetApp()
	if app == nil {
		return nil, fmt.Errorf("app not initialized")
	}
	return app.Control()
}

func runEnable(_ *cobra.Command, args []string) error {
	client, err := controlClient()
	if err != nil {
		return err
	}
	if err := client.Enable(app.Ctx(), args[0]); err != nil {
		return err
	}
	fmt.Printf("%s %s enabled\n", styles.IconPlay, args[0])
	return nil
}

func runDisable(_ *cobra.Command, args []string) error {
	client, err := controlClient()
	if err != nil {
		return err
	}
	if err := client.Disable(app.Ctx(), args[0]); err != nil {
		return err
	}
	fmt.Printf("%s %s disabled\n", styles.IconPause, args[0])
	return nil
}

func runTrigger(_ *cobra.Command, args []string) error {
	client, err := controlClient()
	if err != nil {
		return err
	}
	return client.Trigger(app.Ctx(), args[0])
}

func runStatus(_ *cobra.Command, _ []string) error {
	client, err := controlClient()
	if err != nil {
		return err
	}
	states, err := client.Status(app.Ctx())
	if err != nil {
		return err
	}

	if len(states) == 0 {
		fmt.Println(app.Theme.Subtle.Render("No key maps loaded"))
		return nil
	}
	rows := make([]table.Row, 0, len(states))
	for _, s := range states {
		rows = append(rows, statusRow(s.ID, s.Name, s.Enabled, s.Trigger, int(s.Cursor), s.Chain, int(s.ActionIndex)))
	}
	fmt.Println(styles.RenderTable(app.Theme, styles.StatusTableColumns(), rows))
	return nil
}

func runReload(_ *cobra.Command, _ []string) error {
	client, err := controlClient()
	if err != nil {
		return err
	}
	result, err := client.Reload(app.Ctx())
	if err != nil {
		return err
	}

	rejected := make([]error, 0, len(result.Rejected))
	for _, r := range result.Rejected {
		rejected = append(rejected, errors.New(r))
	}
	fmt.Print(styles.NewConfigRenderer(app.Theme).RenderValidation(app.Manager.GetConfigFile(), int(result.Loaded), rejected))
	return nil
}

// statusRow formats one key map for the status table.
func statusRow(id, name string, enabled bool, trigger string, cursor int, chain string, actionIndex int) table.Row {
	state := "enabled"
	if !enabled {
		state = "disabled"
	}
	if cursor > 0 {
		trigger += " @" + strconv.Itoa(cursor)
	}
	actions := "-"
	if chain != "" {
		actions = chain + " #" + strconv.Itoa(actionIndex)
	}
	return table.Row{id, name, state, trigger, actions}
}
